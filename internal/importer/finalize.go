package importer

import (
	"fmt"
	"sort"

	"github.com/retroenv/nesmusicimport/internal/bank"
	"github.com/retroenv/nesmusicimport/internal/rom"
)

// finalizeBanks restores every copy_range of every staged bank whose layout
// has a source bank, then flushes each bank to the ROM in bank-index order.
//
// Grounded on spec.md §4.8.
func (imp *Importer) finalizeBanks(banks map[int]*bank.Data, original []byte) error {
	indices := make([]int, 0, len(banks))
	for idx := range banks {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	for _, idx := range indices {
		data := banks[idx]
		if data.Layout.SourceBank != nil {
			if original == nil {
				return fmt.Errorf("%w: bank %d preserves source bytes and requires ROM readback", rom.ErrUnsupported, idx)
			}
			if err := restoreCopyRanges(data, original, idx, imp.config.HeaderOffset); err != nil {
				return err
			}
		}

		offset := idx*data.Layout.BankSize + imp.config.HeaderOffset
		comment := fmt.Sprintf("bank %d data", idx)
		if err := imp.rom.WriteBlock(offset, data.Bytes, comment); err != nil {
			return fmt.Errorf("writing bank %d: %w", idx, err)
		}
	}
	return nil
}

func restoreCopyRanges(data *bank.Data, original []byte, bankIndex, headerOffset int) error {
	sourceBank := *data.Layout.SourceBank
	sourceBase := sourceBank*data.Layout.BankSize + headerOffset

	for _, r := range data.Layout.CopyRanges {
		start := sourceBase + r.Start
		end := sourceBase + r.End
		if start < 0 || end > len(original) {
			return fmt.Errorf("bank %d: copy range [%d,%d) out of bounds of original ROM", bankIndex, r.Start, r.End)
		}
		copy(data.Bytes[r.Start:r.End], original[start:end])
	}
	return nil
}
