// Package verification re-reads the written ROM after an import and checks
// it against the placement decisions the importer made, catching any
// divergence between what get_data produced and what actually landed in the
// ROM Access contract's backing store.
//
// Grounded on the teacher's internal/verification/verification.go, which
// reassembles its output and byte-diffs it against the source cartridge;
// this package skips the reassembly step (there is no external assembler in
// this domain) and diffs directly against freshly recomputed module images.
package verification

import (
	"fmt"

	"github.com/retroenv/nesmusicimport/internal/bank"
	"github.com/retroenv/nesmusicimport/internal/identity"
	"github.com/retroenv/nesmusicimport/internal/importedmodule"
	"github.com/retroenv/nesmusicimport/internal/rom"

	"github.com/retroenv/retrogolib/log"
)

// Config mirrors the bank geometry the importer used, keyed the same way.
type Config struct {
	Layouts                    map[string]bankGeometry
	HeaderOffset               int
	TargetPrimarySquareChannel map[string]int
}

type bankGeometry struct {
	BankSize     int
	BankBaseAddr uint16
}

// NewConfig builds a verification Config from the same per-engine geometry
// the importer was given.
func NewConfig(headerOffset int, bankSize map[string]int, bankBaseAddr map[string]uint16, targetChannel map[string]int) Config {
	layouts := make(map[string]bankGeometry, len(bankSize))
	for label, size := range bankSize {
		layouts[label] = bankGeometry{BankSize: size, BankBaseAddr: bankBaseAddr[label]}
	}
	return Config{Layouts: layouts, HeaderOffset: headerOffset, TargetPrimarySquareChannel: targetChannel}
}

// VerifyPlacements re-derives every placed module's byte image and diffs it
// against the live ROM contents at its assigned bank/address, logging up to
// a handful of mismatching offsets per module before failing.
func VerifyPlacements(logger *log.Logger, romAccess rom.Access, cfg Config, infos map[identity.ID]importedmodule.Info) error {
	snapshot, err := romAccess.ROM()
	if err != nil {
		return fmt.Errorf("reading back ROM for verification: %w", err)
	}

	var mismatches int
	for _, info := range infos {
		label := info.Module().Engine.Normalized()
		geom, ok := cfg.Layouts[label]
		if !ok {
			return fmt.Errorf("no bank geometry registered for engine %q", label)
		}

		expected, err := info.GetData(info.Address(), cfg.TargetPrimarySquareChannel[label])
		if err != nil {
			return fmt.Errorf("recomputing module %q for verification: %w", info.Module().Title, err)
		}

		offset := info.Bank()*geom.BankSize + cfg.HeaderOffset + (int(info.Address()) - int(geom.BankBaseAddr))
		if offset < 0 || offset+len(expected) > len(snapshot) {
			return fmt.Errorf("module %q placement offset %d out of range", info.Module().Title, offset)
		}

		actual := snapshot[offset : offset+len(expected)]
		if diffs := countMismatches(logger, info.Module().Title, expected, actual); diffs > 0 {
			mismatches += diffs
		}
	}

	if mismatches > 0 {
		return fmt.Errorf("%d byte mismatch(es) across placed modules", mismatches)
	}
	return nil
}

// VerifyCopyRanges checks that every preserved bank's copy_ranges still hold
// the original ROM's bytes, re-deriving the same offsets restoreCopyRanges
// wrote from.
func VerifyCopyRanges(logger *log.Logger, original []byte, banks map[int]*bank.Data, headerOffset int) error {
	var mismatches int
	for idx, data := range banks {
		if data.Layout.SourceBank == nil {
			continue
		}
		sourceBase := *data.Layout.SourceBank*data.Layout.BankSize + headerOffset

		for _, r := range data.Layout.CopyRanges {
			expected := original[sourceBase+r.Start : sourceBase+r.End]
			actual := data.Bytes[r.Start:r.End]
			if diffs := countMismatches(logger, fmt.Sprintf("bank %d copy range", idx), expected, actual); diffs > 0 {
				mismatches += diffs
			}
		}
	}
	if mismatches > 0 {
		return fmt.Errorf("%d copy-range byte mismatch(es)", mismatches)
	}
	return nil
}

func countMismatches(logger *log.Logger, label string, expected, actual []byte) int {
	if len(expected) != len(actual) {
		if logger != nil {
			logger.Error("Verification length mismatch", nil,
				log.String("label", label), log.Int("expected", len(expected)), log.Int("got", len(actual)))
		}
		return len(expected)
	}

	var diffs int
	for i := range expected {
		if expected[i] == actual[i] {
			continue
		}
		diffs++
		if diffs < 10 && logger != nil {
			logger.Error("Offset mismatch", nil,
				log.String("label", label),
				log.String("offset", fmt.Sprintf("0x%x", i)),
				log.String("expected", fmt.Sprintf("0x%x", expected[i])),
				log.String("got", fmt.Sprintf("0x%x", actual[i])))
		}
	}
	return diffs
}
