package importer

import "errors"

// ErrRomFull is returned when the packer cannot place every module into the
// available banks and free ranges.
var ErrRomFull = errors.New("rom full: could not place every module")

// ErrOutOfSlots is returned when a secondary map references a module-backed
// song but the free primary-slot pool is exhausted.
var ErrOutOfSlots = errors.New("out of free primary slots")

// ErrUnknownEngine is returned when a module declares an engine label with
// no registered Engine/EngineLayout.
var ErrUnknownEngine = errors.New("unknown engine")

// ErrBuiltinSlotMismatch is returned when a builtin song (no Module) is
// assigned to a primary slot other than the one it originally occupied.
// spec.md §9's Open Question resolves this as a caller precondition that is
// checked defensively instead of silently preserving the wrong bytes.
var ErrBuiltinSlotMismatch = errors.New("builtin song assigned to a slot other than its original one")
