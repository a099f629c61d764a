package importer

import (
	"github.com/retroenv/nesmusicimport/internal/bank"
)

// defaultMinKeepableRemainder matches the teacher's own constant-threshold
// style (internal/mapper/processor.go rounds bank remainders against a fixed
// cutoff rather than accepting a caller-supplied one in every call site).
const defaultMinKeepableRemainder = 64

// SongMapInfo describes one secondary song map's table geometry: a name,
// table offset and length in one-byte entries, plus the byte value written
// for a slot that maps to no song.
type SongMapInfo struct {
	Name       string
	Offset     int
	Length     int
	EmptyIndex byte
}

// NewSongMapInfo creates a SongMapInfo with the conventional 0xFF empty
// marker.
func NewSongMapInfo(name string, offset, length int) SongMapInfo {
	return SongMapInfo{Name: name, Offset: offset, Length: length, EmptyIndex: 0xFF}
}

// EngineLayout describes one engine's bank geometry: how big its banks are,
// where they're mapped in CPU address space, which byte ranges within a bank
// are free for packing, and whether placed banks must preserve the bytes of
// an existing source bank outside those free ranges.
type EngineLayout struct {
	BankSize     int
	BankBaseAddr uint16
	FreeRanges   []bank.Range

	// PreserveOriginal, when true, means every bank this engine draws from
	// the free-bank pool must keep the source ROM's bytes outside its free
	// ranges (spec.md §4.8's copy-range fidelity requirement).
	PreserveOriginal bool

	// TargetPrimarySquareChannel is the channel every imported song's
	// primary square channel is normalized to (spec.md §4.5).
	TargetPrimarySquareChannel int
}

// bankLayout builds the bank.Layout for a freshly drawn bank index under
// this engine's geometry.
func (e EngineLayout) bankLayout(bankIndex int) (bank.Layout, error) {
	var source *int
	if e.PreserveOriginal {
		idx := bankIndex
		source = &idx
	}
	return bank.NewLayout(e.BankBaseAddr, e.BankSize, e.FreeRanges, source)
}

// Config holds the ROM-wide tables the importer fills in, shared by every
// engine: the primary song map, the source-address table backing it, and
// any number of secondary maps.
type Config struct {
	HeaderOffset         int
	SongMapOffset        int
	SongModAddrTblOffset int
	NumSongs             int
	SecondaryMaps        []SongMapInfo

	// FreeBankIndices is the shared pool of ROM bank indices not yet
	// claimed by any engine (spec.md §4.4's "shared queue free_banks").
	FreeBankIndices []int

	// MinKeepableRemainder is the smallest leftover range worth re-queuing
	// for a later placement; smaller remainders are abandoned as padding.
	// Zero means defaultMinKeepableRemainder.
	MinKeepableRemainder int

	// SongNumberSize records the byte width of one song-map entry's
	// song-number field. The primary song map writer does not read it: it
	// always writes a one-byte bank field and a one-byte song field.
	SongNumberSize int
}

func (c Config) minKeepableRemainder() int {
	if c.MinKeepableRemainder > 0 {
		return c.MinKeepableRemainder
	}
	return defaultMinKeepableRemainder
}
