package famitracker

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func newTestModule(baseAddr uint16) []byte {
	data := make([]byte, headerSize+songEntrySize*2)
	data[magicOffset] = Magic[0]
	data[magicOffset+1] = Magic[1]
	data[magicOffset+2] = Magic[2]
	data[magicOffset+3] = Magic[3]
	data[numSongsOffset] = 2

	for song := 0; song < 2; song++ {
		base := headerSize + song*songEntrySize
		put16(data, base+ordersPtrOffset, baseAddr+0x10)
		put16(data, base+squareAOffset, baseAddr+0x20)
		put16(data, base+squareBOffset, baseAddr+0x30)
		put16(data, base+instrumentsOffset, baseAddr+0x40)
		data[base+dutyAOffset] = 0x01
		data[base+dutyBOffset] = 0x02
	}
	return data
}

func put16(data []byte, offset int, v uint16) {
	data[offset] = byte(v)
	data[offset+1] = byte(v >> 8)
}

func get16(data []byte, offset int) uint16 {
	return uint16(data[offset]) | uint16(data[offset+1])<<8
}

func TestNewRejectsBadMagic(t *testing.T) {
	data := newTestModule(0x8000)
	data[0] = 0x00

	_, err := New(data, 2)
	assert.True(t, err != nil)
}

func TestRebasePreservesLength(t *testing.T) {
	raw := newTestModule(0x8000)
	ftm, err := New(raw, 2)
	assert.NoError(t, err)

	ftm.Rebase(0x8000, 0x8000)
	assert.Equal(t, len(raw), len(ftm.Bytes()))
}

func TestRebaseDoesNotMutateSource(t *testing.T) {
	raw := newTestModule(0x8000)
	rawCopy := make([]byte, len(raw))
	copy(rawCopy, raw)

	ftm, err := New(raw, 2)
	assert.NoError(t, err)
	ftm.Rebase(0x8000, 0x9F00)

	assert.Equal(t, rawCopy, raw)
}

func TestRebaseShiftsPointers(t *testing.T) {
	raw := newTestModule(0x8000)
	ftm, err := New(raw, 2)
	assert.NoError(t, err)

	ftm.Rebase(0x8000, 0x9F00)

	out := ftm.Bytes()
	base := headerSize // song 0
	assert.Equal(t, uint16(0x9F10), get16(out, base+ordersPtrOffset))
	assert.Equal(t, uint16(0x9F20), get16(out, base+squareAOffset))
	assert.Equal(t, uint16(0x9F30), get16(out, base+squareBOffset))
	assert.Equal(t, uint16(0x9F40), get16(out, base+instrumentsOffset))
}

func TestSwapSquareChannels(t *testing.T) {
	raw := newTestModule(0x8000)
	ftm, err := New(raw, 2)
	assert.NoError(t, err)

	err = ftm.SwapSquareChannels(0)
	assert.NoError(t, err)

	out := ftm.Bytes()
	base := headerSize
	assert.Equal(t, uint16(0x8030), get16(out, base+squareAOffset))
	assert.Equal(t, uint16(0x8020), get16(out, base+squareBOffset))
	assert.Equal(t, byte(0x02), out[base+dutyAOffset])
	assert.Equal(t, byte(0x01), out[base+dutyBOffset])

	// song 1 is untouched
	base1 := headerSize + songEntrySize
	assert.Equal(t, uint16(0x8020), get16(out, base1+squareAOffset))
	assert.Equal(t, uint16(0x8030), get16(out, base1+squareBOffset))
}

func TestSwapSquareChannelsOutOfRange(t *testing.T) {
	raw := newTestModule(0x8000)
	ftm, err := New(raw, 2)
	assert.NoError(t, err)

	err = ftm.SwapSquareChannels(5)
	assert.True(t, err != nil)
}
