package importer

import (
	"fmt"
	"sort"

	"github.com/retroenv/nesmusicimport/internal/identity"
	"github.com/retroenv/nesmusicimport/internal/musicdata"
)

// createSongIndexMap resolves every song the caller selected, primary and
// secondary, down to the primary-slot number it will occupy once imported.
//
// Every non-null song in primary receives its explicit slot, which is
// removed from the free-slot pool. Every module-backed song reachable only
// through a secondary map then draws a slot from that pool, largest free
// slot first, so secondary-only songs land at the high end of the table and
// leave low slot numbers open for future primary assignments. A builtin
// song (no Module) reachable only through a secondary map keeps its
// original slot number and is never added to the primary table, since no
// bytes exist for the packer to place.
//
// Grounded on the teacher's two-pass offset resolution in
// internal/mapper/processor.go, which first honors explicit placements
// before falling back to its own free-space allocator for the rest.
func createSongIndexMap(
	numSongs int,
	primary map[int]*musicdata.Song,
	secondary map[string]map[int]*musicdata.Song,
) (songIndices map[identity.ID]int, songMap map[int]*musicdata.Song, err error) {
	songIndices = make(map[identity.ID]int)
	songMap = make(map[int]*musicdata.Song)

	freePool := make(map[int]struct{}, numSongs)
	for i := 0; i < numSongs; i++ {
		freePool[i] = struct{}{}
	}

	for slot, song := range primary {
		songMap[slot] = song
		if song == nil {
			continue
		}
		songIndices[song.ID()] = slot
		delete(freePool, slot)
	}

	for _, name := range sortedStringKeys(secondary) {
		for _, slot := range sortedIntKeys(secondary[name]) {
			song := secondary[name][slot]
			if song == nil {
				continue
			}
			if _, ok := songIndices[song.ID()]; ok {
				continue
			}

			if song.Module == nil {
				songIndices[song.ID()] = song.Number
				continue
			}

			slotAlloc, ok := popLargest(freePool)
			if !ok {
				return nil, nil, fmt.Errorf("%w: no free primary slot for song %q in map %q",
					ErrOutOfSlots, song.Title, name)
			}
			songIndices[song.ID()] = slotAlloc
			songMap[slotAlloc] = song
		}
	}

	return songIndices, songMap, nil
}

func popLargest(pool map[int]struct{}) (int, bool) {
	if len(pool) == 0 {
		return 0, false
	}
	max := -1
	for k := range pool {
		if k > max {
			max = k
		}
	}
	delete(pool, max)
	return max, true
}

func sortedStringKeys(m map[string]map[int]*musicdata.Song) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedIntKeys(m map[int]*musicdata.Song) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
