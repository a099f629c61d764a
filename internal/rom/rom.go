// Package rom defines the ROM Access contract the importer writes through,
// and a concrete file-backed implementation of it.
//
// The contract mirrors the shape the teacher already depends on for reading
// cartridge data (retrogolib/arch/system/nes/cartridge's LoadFile/LoadBuffer),
// narrowed to the three operations spec.md §6 allows the core to call.
package rom

import "errors"

// ErrUnsupported is returned by Access when the ROM cannot be snapshotted.
// The core importer must check for it and fail fast instead of using
// builtin songs or source-bank-backed bank layouts in that mode.
var ErrUnsupported = errors.New("rom snapshot unsupported")

// Access is the read/write contract the importer writes through. rom()
// returning ErrUnsupported means the underlying medium cannot be read back,
// so builtin songs and source_bank-backed bank layouts are unusable.
type Access interface {
	// ROM returns a snapshot of the full ROM image reflecting every prior
	// write, or ErrUnsupported if the medium cannot be read back.
	ROM() ([]byte, error)

	// WriteByte writes a single byte at offset. comment is an advisory
	// debug annotation; implementations may ignore it.
	WriteByte(offset int, b byte, comment string) error

	// WriteBlock writes data starting at offset. offset+len(data) must not
	// exceed the ROM size. comment is an advisory debug annotation.
	WriteBlock(offset int, data []byte, comment string) error
}
