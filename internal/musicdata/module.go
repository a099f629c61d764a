// Package musicdata holds the immutable value objects that glue songs,
// modules and per-game engine layouts together: Module and Song.
package musicdata

import (
	"github.com/retroenv/nesmusicimport/internal/ci"
	"github.com/retroenv/nesmusicimport/internal/identity"
)

var moduleIDs identity.Counter

// Module is an immutable block of music data for one engine, built once from
// a library entry and shared by every Song that lives in it. Modules own
// nothing; Songs hold a non-owning reference to their Module.
type Module struct {
	id identity.ID

	Engine      ci.Label
	Title       string
	BaseAddress uint16 // address the raw bytes expect to be loaded at
	RawBytes    []byte
}

// NewModule creates a new Module, assigning it a fresh identity so that two
// modules with byte-identical content remain distinct for identity-keyed
// collections.
func NewModule(engine, title string, baseAddress uint16, rawBytes []byte) *Module {
	return &Module{
		id:          moduleIDs.Next(),
		Engine:      ci.Label(engine),
		Title:       title,
		BaseAddress: baseAddress,
		RawBytes:    rawBytes,
	}
}

// ID returns the module's identity, stable for the lifetime of the process.
func (m *Module) ID() identity.ID {
	return m.id
}

// Size returns the number of raw bytes the module occupies.
func (m *Module) Size() int {
	return len(m.RawBytes)
}
