// Package importedmodule defines the mutable per-module placement record the
// packer fills in, and the Info variant interface so each engine can supply
// its own get_data/get_song_map_entry behavior.
//
// spec.md §9 calls for "a closed set of variants over open dispatch" for
// this type; the base struct embedded below carries every field shared by
// every variant (grounded on the teacher's own variant base in
// mapper/bank.go's bank/mappedBank split), and each engine package supplies
// a concrete type embedding base and implementing Info.
package importedmodule

import (
	"github.com/retroenv/nesmusicimport/internal/identity"
	"github.com/retroenv/nesmusicimport/internal/musicdata"
)

// Unplaced is the sentinel bank value before the packer assigns a module a
// home. The address of an unplaced module is zero.
const Unplaced = -1

// Info is the per-engine placement-record variant. The packer only depends
// on this interface; Module/Bank/Address/AddSong are shared bookkeeping,
// GetData and GetSongMapEntry are the one operation per engine that differs.
type Info interface {
	Module() *musicdata.Module
	Bank() int
	Address() uint16
	SetPlacement(bankIndex int, address uint16)
	AddSong(slot int, song *musicdata.Song)
	Songs() []*musicdata.Song

	// GetData produces the final byte image for the module as it should be
	// written to the ROM once placed at address, rebased and channel-swapped
	// for every owned song whose primary square channel differs from
	// primarySquareChannel.
	GetData(address uint16, primarySquareChannel int) ([]byte, error)

	// GetSongMapEntry returns the (bank_byte, song_byte) pair the primary
	// song map stores for the song assigned to the given primary slot.
	GetSongMapEntry(slot int) (bankByte, songByte byte)
}

// Base carries the bookkeeping every Info variant shares: the module it
// places, the songs that live in it, its assigned bank/address, and the
// primary-slot -> module-internal-song-number mapping.
type Base struct {
	module *musicdata.Module

	bank    int
	address uint16

	songs       map[identity.ID]*musicdata.Song
	songIndices map[int]int // primary slot -> module-internal song number
}

// NewBase creates a Base for module, unplaced.
func NewBase(module *musicdata.Module) Base {
	return Base{
		module:      module,
		bank:        Unplaced,
		songs:       map[identity.ID]*musicdata.Song{},
		songIndices: map[int]int{},
	}
}

// Module returns the module this record places.
func (b *Base) Module() *musicdata.Module {
	return b.module
}

// Bank returns the assigned bank index, or Unplaced before placement.
func (b *Base) Bank() int {
	return b.bank
}

// Address returns the assigned load address. Only meaningful after
// SetPlacement has been called.
func (b *Base) Address() uint16 {
	return b.address
}

// SetPlacement records the packer's decision for where this module lands.
func (b *Base) SetPlacement(bankIndex int, address uint16) {
	b.bank = bankIndex
	b.address = address
}

// AddSong records that song resides in this module at the given primary
// slot, keyed by song identity so two structurally-equal songs remain
// distinct entries.
func (b *Base) AddSong(slot int, song *musicdata.Song) {
	b.songs[song.ID()] = song
	b.songIndices[slot] = song.Number
}

// Songs returns every song recorded via AddSong, in no particular order.
func (b *Base) Songs() []*musicdata.Song {
	songs := make([]*musicdata.Song, 0, len(b.songs))
	for _, s := range b.songs {
		songs = append(songs, s)
	}
	return songs
}

// SongIndices returns the primary-slot -> module-internal-song-number map.
func (b *Base) SongIndices() map[int]int {
	return b.songIndices
}
