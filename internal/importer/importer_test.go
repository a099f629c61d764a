package importer

import (
	"testing"

	"github.com/retroenv/nesmusicimport/internal/bank"
	"github.com/retroenv/nesmusicimport/internal/ci"
	"github.com/retroenv/nesmusicimport/internal/engine"
	"github.com/retroenv/nesmusicimport/internal/engine/ft"
	"github.com/retroenv/nesmusicimport/internal/musicdata"
	"github.com/retroenv/nesmusicimport/internal/rom"

	"github.com/retroenv/retrogolib/assert"
)

// fakeRom is a minimal in-memory rom.Access double for exercising the
// importer against deterministic ROM bytes, grounded on the teacher's own
// mocks package pattern of a hand-rolled fake implementing a narrow
// interface instead of a generated mock.
type fakeRom struct {
	data        []byte
	unsupported bool
}

func newFakeRom(size int) *fakeRom {
	return &fakeRom{data: make([]byte, size)}
}

func (f *fakeRom) ROM() ([]byte, error) {
	if f.unsupported {
		return nil, rom.ErrUnsupported
	}
	out := make([]byte, len(f.data))
	copy(out, f.data)
	return out, nil
}

func (f *fakeRom) WriteByte(offset int, b byte, _ string) error {
	f.data[offset] = b
	return nil
}

func (f *fakeRom) WriteBlock(offset int, data []byte, _ string) error {
	copy(f.data[offset:offset+len(data)], data)
	return nil
}

// ftmBytes builds a minimal valid FamiTracker binary of exactly size bytes
// with an empty song table, so GetData's rebase/swap passes are no-ops on
// its contents and the only observable effect is placement.
func ftmBytes(size int) []byte {
	data := make([]byte, size)
	data[0], data[1], data[2], data[3] = 'F', 'T', 'M', 0x1A
	data[6] = 0 // numSongs
	return data
}

func get16(data []byte, offset int) uint16 {
	return uint16(data[offset]) | uint16(data[offset+1])<<8
}

func newFtEngines() map[string]engine.Engine {
	return map[string]engine.Engine{"ft": ft.New(2)}
}

// Scenario 1: empty pool.
func TestImportEmptyPool(t *testing.T) {
	cfg := Config{HeaderOffset: 0x10, SongMapOffset: 0x5000, SongModAddrTblOffset: 0x6000, NumSongs: 1}
	r := newFakeRom(0x10000)
	imp := New(r, nil, newFtEngines(), nil, cfg)

	_, err := imp.Import(map[int]*musicdata.Song{0: nil}, nil)
	assert.NoError(t, err)

	assert.Equal(t, byte(0x00), r.data[0x5000])
	assert.Equal(t, byte(0xFF), r.data[0x5001])
	assert.Equal(t, byte(0x00), r.data[0x6000])
	assert.Equal(t, byte(0x00), r.data[0x6001])
}

// Scenario 2: single module, single song.
func TestImportSingleModule(t *testing.T) {
	cfg := Config{HeaderOffset: 0x10, SongMapOffset: 0x5000, SongModAddrTblOffset: 0x6000, NumSongs: 8, FreeBankIndices: []int{0}}
	layouts := map[string]EngineLayout{
		"ft": {BankSize: 0x2000, BankBaseAddr: 0x8000, FreeRanges: []bank.Range{{Start: 0, End: 0x2000}}},
	}
	r := newFakeRom(0x10000)
	imp := New(r, nil, newFtEngines(), layouts, cfg)

	module := musicdata.NewModule("ft", "Song A", 0x8001, ftmBytes(0x100))
	song := musicdata.NewSong(0, module, "Song A", "", true, false, 0, ci.NewSet())

	_, err := imp.Import(map[int]*musicdata.Song{7: song}, nil)
	assert.NoError(t, err)

	assert.Equal(t, byte(0xFF), r.data[0x5000+2*7])   // bank_byte = 0 XOR 0xFF
	assert.Equal(t, byte(0x00), r.data[0x5000+2*7+1]) // song_byte = module-internal song 0

	addr := get16(r.data, 0x6000+2*7)
	assert.Equal(t, uint16(0x9F00), addr)

	// bank 0 written at bankIndex*bankSize+headerOffset; module lands at the
	// high end of the bank, relative offset 0x2000-0x100 = 0x1F00.
	bankStart := 0x10
	moduleBytes := r.data[bankStart+0x1F00 : bankStart+0x1F00+0x100]
	assert.Equal(t, ftmBytes(0x100), moduleBytes)
}

// Scenario 3: best-fit by size across three modules in one bank.
func TestImportBestFitBySize(t *testing.T) {
	cfg := Config{HeaderOffset: 0x10, SongMapOffset: 0x5000, SongModAddrTblOffset: 0x6000, NumSongs: 3, FreeBankIndices: []int{0}}
	layouts := map[string]EngineLayout{
		"ft": {BankSize: 0x2000, BankBaseAddr: 0x8000, FreeRanges: []bank.Range{{Start: 0, End: 0x2000}}},
	}
	r := newFakeRom(0x10000)
	imp := New(r, nil, newFtEngines(), layouts, cfg)

	big := musicdata.NewModule("ft", "big", 0x8000, ftmBytes(0x1800))
	mid := musicdata.NewModule("ft", "mid", 0x8000, ftmBytes(0x400))
	small := musicdata.NewModule("ft", "small", 0x8000, ftmBytes(0x300))

	songBig := musicdata.NewSong(0, big, "big", "", true, false, 0, ci.NewSet())
	songMid := musicdata.NewSong(0, mid, "mid", "", true, false, 0, ci.NewSet())
	songSmall := musicdata.NewSong(0, small, "small", "", true, false, 0, ci.NewSet())

	_, err := imp.Import(map[int]*musicdata.Song{0: songBig, 1: songMid, 2: songSmall}, nil)
	assert.NoError(t, err)

	assert.Equal(t, uint16(0x8800), get16(r.data, 0x6000+2*0))
	assert.Equal(t, uint16(0x8400), get16(r.data, 0x6000+2*1))
	assert.Equal(t, uint16(0x8100), get16(r.data, 0x6000+2*2))
}

// Scenario 5: secondary map writes primary slots.
func TestImportSecondaryMap(t *testing.T) {
	cfg := Config{
		HeaderOffset: 0x10, SongMapOffset: 0x4000, SongModAddrTblOffset: 0x4100, NumSongs: 8,
		FreeBankIndices: []int{0},
		SecondaryMaps:   []SongMapInfo{NewSongMapInfo("boss", 0x5000, 4)},
	}
	layouts := map[string]EngineLayout{
		"ft": {BankSize: 0x2000, BankBaseAddr: 0x8000, FreeRanges: []bank.Range{{Start: 0, End: 0x2000}}},
	}
	r := newFakeRom(0x10000)
	imp := New(r, nil, newFtEngines(), layouts, cfg)

	moduleA := musicdata.NewModule("ft", "A", 0x8000, ftmBytes(0x10))
	moduleB := musicdata.NewModule("ft", "B", 0x8000, ftmBytes(0x10))
	songA := musicdata.NewSong(0, moduleA, "A", "", true, false, 0, ci.NewSet())
	songB := musicdata.NewSong(0, moduleB, "B", "", true, false, 0, ci.NewSet())

	primary := map[int]*musicdata.Song{3: songA, 5: songB}
	secondary := map[string]map[int]*musicdata.Song{
		"boss": {0: songA, 1: nil, 2: songB, 3: songA},
	}

	_, err := imp.Import(primary, secondary)
	assert.NoError(t, err)

	assert.Equal(t, byte(0x03), r.data[0x5000])
	assert.Equal(t, byte(0xFF), r.data[0x5001])
	assert.Equal(t, byte(0x05), r.data[0x5002])
	assert.Equal(t, byte(0x03), r.data[0x5003])
}

// Scenario 6: preserve non-free bytes.
func TestImportPreservesCopyRanges(t *testing.T) {
	cfg := Config{HeaderOffset: 0x10, SongMapOffset: 0x5000, SongModAddrTblOffset: 0x6000, NumSongs: 1, FreeBankIndices: []int{0}}
	layouts := map[string]EngineLayout{
		"ft": {
			BankSize: 0x2000, BankBaseAddr: 0x8000,
			FreeRanges:       []bank.Range{{Start: 0x100, End: 0x1000}},
			PreserveOriginal: true,
		},
	}
	r := newFakeRom(0x10000)
	for i := range r.data {
		r.data[i] = byte(i)
	}
	imp := New(r, nil, newFtEngines(), layouts, cfg)

	module := musicdata.NewModule("ft", "M", 0x8100, ftmBytes(0x200))
	song := musicdata.NewSong(0, module, "M", "", true, false, 0, ci.NewSet())

	original := make([]byte, len(r.data))
	copy(original, r.data)

	_, err := imp.Import(map[int]*musicdata.Song{0: song}, nil)
	assert.NoError(t, err)

	bankStart := 0x10
	assert.Equal(t, original[bankStart:bankStart+0x100], r.data[bankStart:bankStart+0x100])
	assert.Equal(t, original[bankStart+0x1000:bankStart+0x2000], r.data[bankStart+0x1000:bankStart+0x2000])
}

func TestImportRomFull(t *testing.T) {
	cfg := Config{HeaderOffset: 0x10, SongMapOffset: 0x5000, SongModAddrTblOffset: 0x6000, NumSongs: 1, FreeBankIndices: []int{0}}
	layouts := map[string]EngineLayout{
		"ft": {BankSize: 0x100, BankBaseAddr: 0x8000, FreeRanges: []bank.Range{{Start: 0, End: 0x100}}},
	}
	r := newFakeRom(0x10000)
	imp := New(r, nil, newFtEngines(), layouts, cfg)

	module := musicdata.NewModule("ft", "too big", 0x8000, ftmBytes(0x200))
	song := musicdata.NewSong(0, module, "too big", "", true, false, 0, ci.NewSet())

	_, err := imp.Import(map[int]*musicdata.Song{0: song}, nil)
	assert.True(t, err != nil)
}

func TestImportBuiltinSlotMismatchRejected(t *testing.T) {
	cfg := Config{HeaderOffset: 0x10, SongMapOffset: 0x5000, SongModAddrTblOffset: 0x6000, NumSongs: 4}
	r := newFakeRom(0x10000)
	imp := New(r, nil, newFtEngines(), nil, cfg)

	builtin := musicdata.NewSong(2, nil, "Builtin", "", true, false, 0, ci.NewSet())
	_, err := imp.Import(map[int]*musicdata.Song{0: builtin}, nil)
	assert.True(t, err != nil)
}

func TestImportBuiltinRequiresReadback(t *testing.T) {
	cfg := Config{HeaderOffset: 0x10, SongMapOffset: 0x5000, SongModAddrTblOffset: 0x6000, NumSongs: 4}
	r := newFakeRom(0x10000)
	r.unsupported = true
	imp := New(r, nil, newFtEngines(), nil, cfg)

	builtin := musicdata.NewSong(0, nil, "Builtin", "", true, false, 0, ci.NewSet())
	_, err := imp.Import(map[int]*musicdata.Song{0: builtin}, nil)
	assert.True(t, err != nil)
}
