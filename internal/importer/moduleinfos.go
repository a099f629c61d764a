package importer

import (
	"fmt"
	"sort"

	"github.com/retroenv/nesmusicimport/internal/engine"
	"github.com/retroenv/nesmusicimport/internal/identity"
	"github.com/retroenv/nesmusicimport/internal/importedmodule"
	"github.com/retroenv/nesmusicimport/internal/musicdata"
)

// createImportedModuleInfos groups every module-backed entry of songMap by
// its owning Module, creating one engine-specific importedmodule.Info per
// distinct module and recording every slot it will answer for.
//
// Grounded on the teacher's bank-grouping pass in internal/mapper/mapper.go,
// which folds per-offset entries up into their owning bank before emitting.
func createImportedModuleInfos(
	songMap map[int]*musicdata.Song,
	engines map[string]engine.Engine,
) (map[identity.ID]importedmodule.Info, error) {
	infos := make(map[identity.ID]importedmodule.Info)

	for _, slot := range sortedIntKeys(songMap) {
		song := songMap[slot]
		if song == nil || song.Module == nil {
			continue
		}

		module := song.Module
		info, ok := infos[module.ID()]
		if !ok {
			eng, ok := engines[module.Engine.Normalized()]
			if !ok {
				return nil, fmt.Errorf("%w: %q (module %q)", ErrUnknownEngine, module.Engine, module.Title)
			}
			info = eng.NewModuleInfo(module)
			infos[module.ID()] = info
		}
		info.AddSong(slot, song)
	}

	return infos, nil
}

// groupInfosByEngine partitions infos by the case-insensitive engine label
// their module declares, so the packer can run once per engine against its
// own EngineLayout.
func groupInfosByEngine(infos map[identity.ID]importedmodule.Info) map[string][]importedmodule.Info {
	grouped := make(map[string][]importedmodule.Info)
	for _, info := range infos {
		label := info.Module().Engine.Normalized()
		grouped[label] = append(grouped[label], info)
	}
	for label := range grouped {
		sort.Slice(grouped[label], func(i, j int) bool {
			return grouped[label][i].Module().Title < grouped[label][j].Module().Title
		})
	}
	return grouped
}
