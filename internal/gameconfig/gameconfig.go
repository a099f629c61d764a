// Package gameconfig holds the per-game EngineLayout/Config descriptors a
// real import run is parameterized by: ROM table offsets, bank geometry, and
// which engines a game's library targets. One profile covers one game; the
// importer itself knows nothing about any specific game's ROM layout.
//
// Grounded on the teacher's internal/config package, which plays the same
// "fixed, named, built-in configuration" role for the disassembler's target
// architecture.
package gameconfig

import (
	"fmt"

	"github.com/retroenv/nesmusicimport/internal/bank"
	"github.com/retroenv/nesmusicimport/internal/engine"
	"github.com/retroenv/nesmusicimport/internal/engine/ft"
	"github.com/retroenv/nesmusicimport/internal/importer"
)

// DefaultLabel is the engine flag value selecting Default.
const DefaultLabel = "famitracker-default"

// Profile bundles everything one import run needs beyond the caller's
// library/selection: the registered engines, their bank layouts, and the
// ROM-wide table configuration.
type Profile struct {
	Engines map[string]engine.Engine
	Layouts map[string]importer.EngineLayout
	Config  importer.Config

	// ModuleEngineLabel is the label library.BuildCatalog tags every
	// constructed Module with, since one library file targets one engine.
	ModuleEngineLabel string
}

// Lookup resolves a -engine flag value to a registered Profile.
func Lookup(label string) (Profile, error) {
	switch label {
	case DefaultLabel, "":
		return defaultProfile(), nil
	default:
		return Profile{}, fmt.Errorf("unknown game profile %q", label)
	}
}

// defaultProfile is a four-bank FamiTracker layout: banks 4-7 are reserved
// for imported music, each a full free 0x2000 bank mapped at $8000, with one
// secondary "boss" map alongside the 64-entry primary song map.
func defaultProfile() Profile {
	const (
		bankSize     = 0x2000
		bankBaseAddr = 0x8000
		numSongs     = 64
		headerOffset = 16
	)

	ftEngine := ft.New(2)

	layout := importer.EngineLayout{
		BankSize:                   bankSize,
		BankBaseAddr:               bankBaseAddr,
		FreeRanges:                 []bank.Range{{Start: 0, End: bankSize}},
		PreserveOriginal:           false,
		TargetPrimarySquareChannel: 0,
	}

	cfg := importer.Config{
		HeaderOffset:         headerOffset,
		SongMapOffset:        0x3E00,
		SongModAddrTblOffset: 0x3D00,
		NumSongs:             numSongs,
		SecondaryMaps: []importer.SongMapInfo{
			importer.NewSongMapInfo("boss", 0x3F00, 8),
		},
		FreeBankIndices: []int{4, 5, 6, 7},
		SongNumberSize:  1,
	}

	return Profile{
		Engines:           map[string]engine.Engine{ft.Label: ftEngine},
		Layouts:           map[string]importer.EngineLayout{ft.Label: layout},
		Config:            cfg,
		ModuleEngineLabel: ft.Label,
	}
}
