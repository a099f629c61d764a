package rom

import (
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// File is a ROM Access implementation backed by an in-memory copy of a ROM
// file on disk. Writes land in the in-memory copy; Flush persists it.
type File struct {
	path   string
	data   []byte
	logger *log.Logger
}

// Open reads path into memory and returns a File ready to serve reads and
// writes against it.
func Open(path string, logger *log.Logger) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rom file %s: %w", path, err)
	}

	return &File{
		path:   path,
		data:   data,
		logger: logger,
	}, nil
}

// Size returns the size of the ROM image in bytes.
func (f *File) Size() int {
	return len(f.data)
}

// ROM returns a snapshot of the ROM image reflecting every prior write.
func (f *File) ROM() ([]byte, error) {
	snapshot := make([]byte, len(f.data))
	copy(snapshot, f.data)
	return snapshot, nil
}

// WriteByte writes a single byte at offset.
func (f *File) WriteByte(offset int, b byte, comment string) error {
	if offset < 0 || offset >= len(f.data) {
		return fmt.Errorf("writing byte at offset %d: out of range [0, %d)", offset, len(f.data))
	}
	f.data[offset] = b
	f.logWrite(offset, 1, comment)
	return nil
}

// WriteBlock writes data starting at offset.
func (f *File) WriteBlock(offset int, data []byte, comment string) error {
	if offset < 0 || offset+len(data) > len(f.data) {
		return fmt.Errorf("writing block at offset %d (%d bytes): out of range [0, %d)",
			offset, len(data), len(f.data))
	}
	copy(f.data[offset:offset+len(data)], data)
	f.logWrite(offset, len(data), comment)
	return nil
}

// Flush persists the in-memory ROM image to outputPath. When outputPath is
// empty, it overwrites the file File was opened from.
func (f *File) Flush(outputPath string) error {
	path := outputPath
	if path == "" {
		path = f.path
	}
	if err := os.WriteFile(path, f.data, 0o644); err != nil {
		return fmt.Errorf("writing rom file %s: %w", path, err)
	}
	return nil
}

func (f *File) logWrite(offset, length int, comment string) {
	if f.logger == nil {
		return
	}
	f.logger.Debug("Writing ROM bytes",
		log.String("offset", fmt.Sprintf("0x%x", offset)),
		log.Int("length", length),
		log.String("comment", comment),
	)
}
