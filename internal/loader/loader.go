// Package loader handles opening the three files one import run needs: the
// target ROM, the library describing available songs, and the caller's
// slot selection.
//
// Grounded on the teacher's internal/loader/loader.go, which opens a
// cartridge file and an optional Code/Data Log file and hands both back for
// the caller to consume and close.
package loader

import (
	"fmt"
	"os"

	"github.com/retroenv/nesmusicimport/internal/library"
	"github.com/retroenv/nesmusicimport/internal/options"
	"github.com/retroenv/nesmusicimport/internal/rom"

	"github.com/retroenv/retrogolib/log"
)

// Loader opens the files one import run needs from disk.
type Loader struct{}

// New creates a new Loader.
func New() *Loader {
	return &Loader{}
}

// Load opens the ROM file, decodes the library JSON file, and opens the
// selection JSON file. The caller owns the returned selection file and must
// close it once it has been decoded.
func (l *Loader) Load(opts options.Program, logger *log.Logger) (*rom.File, *library.Library, *os.File, error) {
	romFile, err := rom.Open(opts.ROM, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening ROM file %s: %w", opts.ROM, err)
	}

	lib, err := l.loadLibrary(opts.Library)
	if err != nil {
		return nil, nil, nil, err
	}

	selectionFile, err := os.Open(opts.Selection)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening selection file %s: %w", opts.Selection, err)
	}

	return romFile, lib, selectionFile, nil
}

func (l *Loader) loadLibrary(path string) (*library.Library, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening library file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	lib, err := library.Decode(file, false)
	if err != nil {
		return nil, fmt.Errorf("decoding library file %s: %w", path, err)
	}
	return lib, nil
}
