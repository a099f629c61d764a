// Package engine defines the closed set of supported music engines. Each
// engine supplies its own importedmodule.Info variant; the packer and table
// writer in internal/importer depend only on this interface, never on a
// concrete engine package.
//
// Grounded on the teacher's own Architecture interface
// (internal/arch/arch.go in the original disassembler), which plays the same
// role for 6502/CHIP-8 instruction decoding: one small interface, one
// concrete implementation per supported system.
package engine

import (
	"github.com/retroenv/nesmusicimport/internal/importedmodule"
	"github.com/retroenv/nesmusicimport/internal/musicdata"
)

// Engine is one supported music driver. Adding a new engine means adding a
// new concrete implementation of this interface, not extending existing
// engines with runtime flags.
type Engine interface {
	// Label identifies the engine, matching musicdata.Module.Engine
	// case-insensitively.
	Label() string

	// ChannelCount returns the number of audio channels this engine's
	// modules declare.
	ChannelCount() byte

	// NewModuleInfo creates the placement record variant for module.
	NewModuleInfo(module *musicdata.Module) importedmodule.Info
}
