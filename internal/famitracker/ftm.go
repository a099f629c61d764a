// Package famitracker implements the binary mutator for imported FamiTracker
// modules: FtmBinary.Rebase and FtmBinary.SwapSquareChannels. The core
// importer treats this transform as an external collaborator (spec calls it
// FtmBinary, specified only by these two operations); this package supplies
// a concrete tracker binary layout so the importer is runnable end to end.
//
// The per-song pointer table and the fixed-offset swap columns are grounded
// on the pointer-table layout in musclesoft-nin64k's tools/forge/serialize
// package (fixed byte offsets for instrument/pattern/order tables) and the
// per-row/per-channel byte rewriting in tools/forge/transform
// (row_remap.go, inst_remap.go), adapted from forge's dictionary-compression
// transform to a rebase-by-delta and channel-swap transform.
package famitracker

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Magic identifies a module as belonging to this engine's binary format.
var Magic = [4]byte{'F', 'T', 'M', 0x1A}

const (
	headerSize     = 8
	songEntrySize  = 12
	magicOffset    = 0
	versionOffset  = 4
	channelsOffset = 5
	numSongsOffset = 6

	ordersPtrOffset = 0
	squareAOffset   = 2
	squareBOffset   = 4
	instrumentsOffset = 6
	dutyAOffset     = 8
	dutyBOffset     = 9
)

// ErrMalformed is returned when a byte slice does not look like a module in
// this engine's binary format.
var ErrMalformed = errors.New("malformed famitracker module")

// ErrSongNumber is returned when a song number is outside the module's song
// table.
var ErrSongNumber = errors.New("song number out of range")

// FtmBinary wraps a copy of a module's raw bytes and mutates it in place for
// relocation and channel remapping. The source bytes passed to New are never
// modified: FtmBinary always works on a private copy.
type FtmBinary struct {
	data        []byte
	channels    byte
	numSongs    int
}

// New wraps rawBytes (copied) as a FamiTracker binary with the given
// declared channel count.
func New(rawBytes []byte, channels byte) (*FtmBinary, error) {
	if len(rawBytes) < headerSize {
		return nil, fmt.Errorf("module is %d bytes, shorter than header: %w", len(rawBytes), ErrMalformed)
	}

	data := make([]byte, len(rawBytes))
	copy(data, rawBytes)

	if data[magicOffset] != Magic[0] || data[magicOffset+1] != Magic[1] ||
		data[magicOffset+2] != Magic[2] || data[magicOffset+3] != Magic[3] {
		return nil, fmt.Errorf("unexpected magic bytes: %w", ErrMalformed)
	}

	numSongs := int(data[numSongsOffset])
	if headerSize+numSongs*songEntrySize > len(data) {
		return nil, fmt.Errorf("song table for %d songs overruns module: %w", numSongs, ErrMalformed)
	}

	return &FtmBinary{
		data:     data,
		channels: channels,
		numSongs: numSongs,
	}, nil
}

// Bytes returns the mutated byte image. Its length always equals the length
// of the bytes passed to New.
func (f *FtmBinary) Bytes() []byte {
	return f.data
}

// NumSongs returns the number of songs described by the module's header.
func (f *FtmBinary) NumSongs() int {
	return f.numSongs
}

// Rebase rewrites every internal pointer in the module by the delta between
// oldBase and newAddress, so the module is correct when loaded at newAddress.
// Zero-valued pointers (unused slots) are left untouched.
func (f *FtmBinary) Rebase(oldBase, newAddress uint16) {
	delta := int32(newAddress) - int32(oldBase)
	if delta == 0 {
		return
	}

	for song := 0; song < f.numSongs; song++ {
		base := f.songEntryOffset(song)
		for _, fieldOffset := range []int{ordersPtrOffset, squareAOffset, squareBOffset, instrumentsOffset} {
			f.rebasePointer(base+fieldOffset, delta)
		}
	}
}

// SwapSquareChannels exchanges the two square-wave channel pointers, and
// their associated duty/volume columns, for one song's table entry. Every
// other song's entry is left untouched.
func (f *FtmBinary) SwapSquareChannels(songNumber int) error {
	if songNumber < 0 || songNumber >= f.numSongs {
		return fmt.Errorf("song %d: %w", songNumber, ErrSongNumber)
	}

	base := f.songEntryOffset(songNumber)

	aPtr := f.readU16(base + squareAOffset)
	bPtr := f.readU16(base + squareBOffset)
	f.writeU16(base+squareAOffset, bPtr)
	f.writeU16(base+squareBOffset, aPtr)

	aDuty := f.data[base+dutyAOffset]
	bDuty := f.data[base+dutyBOffset]
	f.data[base+dutyAOffset] = bDuty
	f.data[base+dutyBOffset] = aDuty

	return nil
}

func (f *FtmBinary) songEntryOffset(song int) int {
	return headerSize + song*songEntrySize
}

func (f *FtmBinary) rebasePointer(offset int, delta int32) {
	ptr := f.readU16(offset)
	if ptr == 0 {
		return
	}
	f.writeU16(offset, uint16(int32(ptr)+delta))
}

func (f *FtmBinary) readU16(offset int) uint16 {
	return binary.LittleEndian.Uint16(f.data[offset : offset+2])
}

func (f *FtmBinary) writeU16(offset int, v uint16) {
	binary.LittleEndian.PutUint16(f.data[offset:offset+2], v)
}
