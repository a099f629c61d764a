// Package importer implements the core of this repository: the bank/
// free-range placement algorithm, the song-map table writers, and the data
// model glue that ties songs, modules, and per-engine bank layouts
// together.
//
// Grounded on the teacher's internal/mapper package, which plays the
// analogous role of turning a flat instruction stream into bank-relative
// offsets and writing the result out through a single access contract.
package importer

import (
	"fmt"
	"sort"

	"github.com/retroenv/nesmusicimport/internal/bank"
	"github.com/retroenv/nesmusicimport/internal/engine"
	"github.com/retroenv/nesmusicimport/internal/identity"
	"github.com/retroenv/nesmusicimport/internal/importedmodule"
	"github.com/retroenv/nesmusicimport/internal/musicdata"
	"github.com/retroenv/nesmusicimport/internal/rom"

	"github.com/retroenv/retrogolib/log"
)

// Importer is the placement engine and table writer. One Importer handles
// one import run; it is not reused or shared across concurrent runs (the
// ROM Access contract it wraps owns no synchronization of its own).
type Importer struct {
	rom    rom.Access
	logger *log.Logger

	engines map[string]engine.Engine
	layouts map[string]EngineLayout
	config  Config
}

// New creates an Importer. engines and layouts are keyed by the same
// case-insensitive engine label musicdata.Module.Engine carries.
func New(romAccess rom.Access, logger *log.Logger, engines map[string]engine.Engine, layouts map[string]EngineLayout, cfg Config) *Importer {
	return &Importer{
		rom:     romAccess,
		logger:  logger,
		engines: engines,
		layouts: layouts,
		config:  cfg,
	}
}

// Report summarizes one completed Import run, for the optional verification
// pass to re-check without having to re-derive placement from scratch.
type Report struct {
	Infos map[identity.ID]importedmodule.Info
	Banks map[int]*bank.Data
}

// Import runs the full pipeline: resolve slots, group modules by engine,
// pack each engine's modules into its banks, write the primary and
// secondary song maps, and flush every staged bank.
func (imp *Importer) Import(
	primary map[int]*musicdata.Song,
	secondary map[string]map[int]*musicdata.Song,
) (Report, error) {
	songIndices, songMap, err := createSongIndexMap(imp.config.NumSongs, primary, secondary)
	if err != nil {
		return Report{}, err
	}

	if err := checkBuiltinSlots(songMap); err != nil {
		return Report{}, err
	}

	infos, err := createImportedModuleInfos(songMap, imp.engines)
	if err != nil {
		return Report{}, err
	}

	grouped := groupInfosByEngine(infos)
	banksData := make(map[int]*bank.Data)
	freeBanks := newIntQueue(imp.config.FreeBankIndices)

	for _, label := range sortedGroupKeys(grouped) {
		layout, ok := imp.layouts[label]
		if !ok {
			return Report{}, fmt.Errorf("%w: no bank layout registered for %q", ErrUnknownEngine, label)
		}

		freeRngs := newRangeQueue()
		if err := importEngineModules(layout, grouped[label], freeBanks, freeRngs, banksData, imp.config.minKeepableRemainder()); err != nil {
			if imp.logger != nil {
				imp.logger.Error("Failed to pack engine modules", err, log.String("engine", label))
			}
			return Report{}, err
		}
	}

	original, err := imp.readbackIfNeeded(songMap, secondary, banksData)
	if err != nil {
		return Report{}, err
	}

	if err := imp.writePrimarySongMap(songMap, infos, original); err != nil {
		return Report{}, err
	}

	for _, name := range sortedSecondaryNames(secondary) {
		info, ok := imp.secondaryMapInfo(name)
		if !ok {
			return Report{}, fmt.Errorf("no secondary map layout registered for %q", name)
		}
		if err := imp.writeSecondaryMap(info, secondary[name], songIndices); err != nil {
			return Report{}, err
		}
	}

	if err := imp.finalizeBanks(banksData, original); err != nil {
		return Report{}, err
	}

	if imp.logger != nil {
		imp.logger.Info("Import completed", log.Int("banks", len(banksData)), log.Int("modules", len(infos)))
	}
	return Report{Infos: infos, Banks: banksData}, nil
}

// checkBuiltinSlots enforces spec.md §9's Open Question resolution: a
// builtin song may only be assigned to the primary slot it originally
// occupied, since that is the only slot write_primary_song_map preserves
// correctly.
func checkBuiltinSlots(songMap map[int]*musicdata.Song) error {
	for slot, song := range songMap {
		if song == nil || song.Module != nil {
			continue
		}
		if song.Number != slot {
			return fmt.Errorf("%w: builtin song originally at slot %d assigned to slot %d",
				ErrBuiltinSlotMismatch, song.Number, slot)
		}
	}
	return nil
}

// readbackIfNeeded fetches the pristine ROM snapshot only when something in
// this run actually needs it: a builtin song occupying a primary or
// secondary slot, or a staged bank whose layout preserves a source bank.
func (imp *Importer) readbackIfNeeded(
	songMap map[int]*musicdata.Song,
	secondary map[string]map[int]*musicdata.Song,
	banks map[int]*bank.Data,
) ([]byte, error) {
	needed := hasBuiltin(songMap)
	for _, assignments := range secondary {
		if hasBuiltin(assignments) {
			needed = true
		}
	}
	for _, data := range banks {
		if data.Layout.SourceBank != nil {
			needed = true
		}
	}
	if !needed {
		return nil, nil
	}

	original, err := imp.rom.ROM()
	if err != nil {
		return nil, fmt.Errorf("reading back ROM for builtin/preserved-bank support: %w", err)
	}
	return original, nil
}

func hasBuiltin(songs map[int]*musicdata.Song) bool {
	for _, song := range songs {
		if song != nil && song.Module == nil {
			return true
		}
	}
	return false
}

func (imp *Importer) secondaryMapInfo(name string) (SongMapInfo, bool) {
	for _, info := range imp.config.SecondaryMaps {
		if info.Name == name {
			return info, true
		}
	}
	return SongMapInfo{}, false
}

func sortedGroupKeys(m map[string][]importedmodule.Info) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSecondaryNames(m map[string]map[int]*musicdata.Song) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
