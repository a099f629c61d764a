package musicdata

import (
	"github.com/retroenv/nesmusicimport/internal/ci"
	"github.com/retroenv/nesmusicimport/internal/identity"
)

var songIDs identity.Counter

// Song is an immutable-per-import-run value carrying the metadata the game
// needs to list and play a track. A nil Module means the song is builtin:
// the ROM already contains it and the importer must preserve its existing
// table entry rather than place a module for it.
type Song struct {
	id identity.ID

	Number int // index within Module, or the song's original primary slot if builtin
	Module *Module

	Title  string
	Author string

	Enabled              bool
	StreamingSafe        bool
	PrimarySquareChannel int
	Uses                 ci.Set
}

// NewSong creates a new Song, assigning it a fresh identity.
func NewSong(number int, module *Module, title, author string, enabled, streamingSafe bool,
	primarySquareChannel int, uses ci.Set) *Song {

	return &Song{
		id:                   songIDs.Next(),
		Number:               number,
		Module:               module,
		Title:                title,
		Author:               author,
		Enabled:              enabled,
		StreamingSafe:        streamingSafe,
		PrimarySquareChannel: primarySquareChannel,
		Uses:                 uses,
	}
}

// ID returns the song's identity, stable for the lifetime of the process.
func (s *Song) ID() identity.ID {
	return s.id
}

// IsBuiltin reports whether the song already exists in the ROM and has no
// Module of its own to place.
func (s *Song) IsBuiltin() bool {
	return s.Module == nil
}
