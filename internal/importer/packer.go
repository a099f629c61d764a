package importer

import (
	"fmt"
	"sort"

	"github.com/retroenv/nesmusicimport/internal/bank"
	"github.com/retroenv/nesmusicimport/internal/importedmodule"
)

// importEngineModules places every info into layout's banks, descending-size
// first-fit within each free range, binary-searching the remaining list for
// the largest module that still fits the bytes left in the working range.
//
// Grounded on the teacher's internal/mapper/processor.go bank-packing pass,
// which walks free ranges largest-first and re-queues leftover space for a
// later offset; generalized here to a shared cross-engine bank pool per
// spec.md §4.4.
func importEngineModules(
	layout EngineLayout,
	infos []importedmodule.Info,
	freeBanks *intQueue,
	freeRngs *rangeQueue,
	banks map[int]*bank.Data,
	minKeepableRemainder int,
) error {
	remaining := make([]importedmodule.Info, len(infos))
	copy(remaining, infos)
	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].Module().Size() > remaining[j].Module().Size()
	})

	var newFreeRngs []bank.AddressRange

	for len(remaining) > 0 {
		rng, ok, err := nextWorkingRange(layout, freeBanks, freeRngs, banks)
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		data, err := bankData(layout, rng.BankIndex, banks)
		if err != nil {
			return err
		}

		bytesLeft := rng.Len()

		for bytesLeft > 0 && len(remaining) > 0 {
			idx := sort.Search(len(remaining), func(i int) bool {
				return remaining[i].Module().Size() <= bytesLeft
			})
			if idx == len(remaining) {
				break
			}

			info := remaining[idx]
			size := info.Module().Size()
			rngOffs := bytesLeft - size

			baseAddr := int(layout.BankBaseAddr) + rng.Start
			address := uint16(baseAddr + rngOffs) //nolint:gosec // bank geometry keeps this within uint16 range

			moduleData, err := info.GetData(address, layout.TargetPrimarySquareChannel)
			if err != nil {
				return fmt.Errorf("rendering module %q: %w", info.Module().Title, err)
			}
			copy(data.Bytes[rng.Start+rngOffs:rng.Start+rngOffs+size], moduleData)

			info.SetPlacement(rng.BankIndex, address)

			remaining = append(remaining[:idx], remaining[idx+1:]...)
			bytesLeft = rngOffs
		}

		if bytesLeft >= minKeepableRemainder {
			newFreeRngs = append(newFreeRngs, bank.AddressRange{
				BankIndex: rng.BankIndex,
				Start:     rng.Start,
				End:       rng.Start + bytesLeft,
			})
		}
	}

	for _, r := range newFreeRngs {
		freeRngs.push(r)
	}

	if len(remaining) > 0 {
		return fmt.Errorf("%w: %d module(s) left unplaced", ErrRomFull, len(remaining))
	}
	return nil
}

// nextWorkingRange returns the next free range to pack into, drawing a
// fresh bank from the shared pool and enqueuing its free ranges when the
// per-engine range queue runs dry.
func nextWorkingRange(
	layout EngineLayout,
	freeBanks *intQueue,
	freeRngs *rangeQueue,
	banks map[int]*bank.Data,
) (bank.AddressRange, bool, error) {
	if rng, ok := freeRngs.pop(); ok {
		return rng, true, nil
	}

	bankIdx, ok := freeBanks.pop()
	if !ok {
		return bank.AddressRange{}, false, nil
	}

	bl, err := layout.bankLayout(bankIdx)
	if err != nil {
		return bank.AddressRange{}, false, fmt.Errorf("building layout for bank %d: %w", bankIdx, err)
	}
	banks[bankIdx] = bank.NewData(bl)

	for _, r := range bl.FreeRanges {
		freeRngs.push(bank.AddressRange{BankIndex: bankIdx, Start: r.Start, End: r.End})
	}

	rng, ok := freeRngs.pop()
	return rng, ok, nil
}

func bankData(layout EngineLayout, bankIndex int, banks map[int]*bank.Data) (*bank.Data, error) {
	if d, ok := banks[bankIndex]; ok {
		return d, nil
	}
	bl, err := layout.bankLayout(bankIndex)
	if err != nil {
		return nil, fmt.Errorf("building layout for bank %d: %w", bankIndex, err)
	}
	d := bank.NewData(bl)
	banks[bankIndex] = d
	return d, nil
}
