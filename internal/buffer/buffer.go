// Package buffer implements a position-carrying view over a byte slice,
// used by the song-map table writer to build little-endian 16-bit tables.
package buffer

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrEndOfStream is returned when a read would extend past the end of the
// buffer.
var ErrEndOfStream = errors.New("end of stream")

// ErrOverflow is returned when a write would extend past the end of the
// buffer.
var ErrOverflow = errors.New("buffer overflow")

// ErrRange is returned for a negative or out-of-range index or count.
var ErrRange = errors.New("index or count out of range")

// Origin selects the reference point for Seek.
type Origin int

// Origin values for Seek, mirroring io.Seeker's semantics.
const (
	Begin Origin = iota
	Current
	End
)

// Buffer is a cursor-carrying view over a mutable byte slice.
type Buffer struct {
	data []byte
	pos  int
}

// New creates a Buffer over the given slice. The slice is not copied: writes
// through the Buffer mutate it in place.
func New(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Len returns the length of the underlying buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the underlying byte slice.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Position returns the current cursor position.
func (b *Buffer) Position() int {
	return b.pos
}

// Seek moves the cursor relative to origin and returns the resulting
// position. A resulting negative position is an error.
func (b *Buffer) Seek(offset int, origin Origin) (int, error) {
	var base int
	switch origin {
	case Begin:
		base = 0
	case Current:
		base = b.pos
	case End:
		base = len(b.data)
	default:
		return 0, fmt.Errorf("seeking: %w: unknown origin %d", ErrRange, origin)
	}

	pos := base + offset
	if pos < 0 {
		return 0, fmt.Errorf("seeking to %d: %w", pos, ErrRange)
	}
	b.pos = pos
	return pos, nil
}

// At returns the byte at absolute index i without moving the cursor.
func (b *Buffer) At(i int) (byte, error) {
	if i < 0 || i >= len(b.data) {
		return 0, fmt.Errorf("indexing byte %d: %w", i, ErrRange)
	}
	return b.data[i], nil
}

// SetAt writes the byte at absolute index i without moving the cursor.
func (b *Buffer) SetAt(i int, v byte) error {
	if i < 0 || i >= len(b.data) {
		return fmt.Errorf("indexing byte %d: %w", i, ErrRange)
	}
	b.data[i] = v
	return nil
}

// ReadU8 reads one byte at the cursor and advances it.
func (b *Buffer) ReadU8() (byte, error) {
	if b.pos >= len(b.data) {
		return 0, fmt.Errorf("reading u8 at %d: %w", b.pos, ErrEndOfStream)
	}
	v := b.data[b.pos]
	b.pos++
	return v, nil
}

// ReadI8 reads one signed byte at the cursor and advances it.
func (b *Buffer) ReadI8() (int8, error) {
	v, err := b.ReadU8()
	return int8(v), err
}

// WriteU8 writes one byte at the cursor and advances it.
func (b *Buffer) WriteU8(v byte) error {
	if b.pos >= len(b.data) {
		return fmt.Errorf("writing u8 at %d: %w", b.pos, ErrOverflow)
	}
	b.data[b.pos] = v
	b.pos++
	return nil
}

// WriteI8 writes one signed byte at the cursor and advances it.
func (b *Buffer) WriteI8(v int8) error {
	return b.WriteU8(byte(v))
}

// ReadU16LE reads a little-endian 16-bit value at the cursor and advances it
// by two.
func (b *Buffer) ReadU16LE() (uint16, error) {
	return b.readU16(binary.LittleEndian)
}

// ReadU16BE reads a big-endian 16-bit value at the cursor and advances it by
// two.
func (b *Buffer) ReadU16BE() (uint16, error) {
	return b.readU16(binary.BigEndian)
}

// ReadI16LE reads a little-endian signed 16-bit value and advances the
// cursor by two.
func (b *Buffer) ReadI16LE() (int16, error) {
	v, err := b.ReadU16LE()
	return int16(v), err
}

// ReadI16BE reads a big-endian signed 16-bit value and advances the cursor
// by two.
func (b *Buffer) ReadI16BE() (int16, error) {
	v, err := b.ReadU16BE()
	return int16(v), err
}

// WriteU16LE writes a little-endian 16-bit value at the cursor and advances
// it by two.
func (b *Buffer) WriteU16LE(v uint16) error {
	return b.writeU16(binary.LittleEndian, v)
}

// WriteU16BE writes a big-endian 16-bit value at the cursor and advances it
// by two.
func (b *Buffer) WriteU16BE(v uint16) error {
	return b.writeU16(binary.BigEndian, v)
}

// WriteI16LE writes a little-endian signed 16-bit value and advances the
// cursor by two.
func (b *Buffer) WriteI16LE(v int16) error {
	return b.WriteU16LE(uint16(v))
}

// WriteI16BE writes a big-endian signed 16-bit value and advances the cursor
// by two.
func (b *Buffer) WriteI16BE(v int16) error {
	return b.WriteU16BE(uint16(v))
}

// PeekU16LE reads a little-endian 16-bit value at absolute offset i without
// moving the persistent cursor, for read-only sequential scans.
func (b *Buffer) PeekU16LE(i int) (uint16, error) {
	if i < 0 {
		return 0, fmt.Errorf("peeking u16 at %d: %w", i, ErrRange)
	}
	if i+2 > len(b.data) {
		return 0, fmt.Errorf("peeking u16 at %d: %w", i, ErrEndOfStream)
	}
	return binary.LittleEndian.Uint16(b.data[i : i+2]), nil
}

// PokeU16LE writes a little-endian 16-bit value at absolute offset i without
// moving the persistent cursor.
func (b *Buffer) PokeU16LE(i int, v uint16) error {
	if i < 0 {
		return fmt.Errorf("poking u16 at %d: %w", i, ErrRange)
	}
	if i+2 > len(b.data) {
		return fmt.Errorf("poking u16 at %d: %w", i, ErrOverflow)
	}
	binary.LittleEndian.PutUint16(b.data[i:i+2], v)
	return nil
}

func (b *Buffer) readU16(order binary.ByteOrder) (uint16, error) {
	if b.pos+2 > len(b.data) {
		return 0, fmt.Errorf("reading u16 at %d: %w", b.pos, ErrEndOfStream)
	}
	v := order.Uint16(b.data[b.pos : b.pos+2])
	b.pos += 2
	return v, nil
}

func (b *Buffer) writeU16(order binary.ByteOrder, v uint16) error {
	if b.pos+2 > len(b.data) {
		return fmt.Errorf("writing u16 at %d: %w", b.pos, ErrOverflow)
	}
	order.PutUint16(b.data[b.pos:b.pos+2], v)
	b.pos += 2
	return nil
}
