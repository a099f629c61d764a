// Package fileprocessor orchestrates one complete import run: load the ROM,
// the library, and the caller's selection, run the importer, optionally
// verify the result, and flush the ROM back to disk.
//
// Grounded on the teacher's internal/fileprocessor/processor.go, which
// strings together cartridge loading, disassembler setup, and the optional
// assemble-and-verify pass the same way this package strings together
// loading, importing, and the optional verification pass.
package fileprocessor

import (
	"fmt"

	"github.com/retroenv/nesmusicimport/internal/gameconfig"
	"github.com/retroenv/nesmusicimport/internal/importer"
	"github.com/retroenv/nesmusicimport/internal/library"
	"github.com/retroenv/nesmusicimport/internal/loader"
	"github.com/retroenv/nesmusicimport/internal/options"
	"github.com/retroenv/nesmusicimport/internal/rom"
	"github.com/retroenv/nesmusicimport/internal/selection"
	"github.com/retroenv/nesmusicimport/internal/verification"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile runs one import end to end against the files named in opts.
func ProcessFile(logger *log.Logger, opts options.Program) error {
	profile, err := gameconfig.Lookup(opts.Engine)
	if err != nil {
		return fmt.Errorf("resolving game profile: %w", err)
	}

	romFile, lib, selectionFile, err := loader.New().Load(opts, logger)
	if err != nil {
		return err
	}
	defer func() { _ = selectionFile.Close() }()

	cat, err := library.BuildCatalog(lib, profile.ModuleEngineLabel)
	if err != nil {
		return fmt.Errorf("building library catalog: %w", err)
	}

	sel, err := selection.Decode(selectionFile, cat)
	if err != nil {
		return fmt.Errorf("decoding selection: %w", err)
	}

	var preImport []byte
	if opts.Verify {
		preImport, err = romFile.ROM()
		if err != nil {
			return fmt.Errorf("snapshotting ROM before import for verification: %w", err)
		}
	}

	imp := importer.New(romFile, logger, profile.Engines, profile.Layouts, profile.Config)
	report, err := imp.Import(sel.Primary, sel.Secondary)
	if err != nil {
		return fmt.Errorf("importing: %w", err)
	}

	if opts.Verify {
		if err := runVerification(logger, romFile, profile, report, preImport); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		logger.Info("Verification successful")
	}

	if err := romFile.Flush(opts.Output); err != nil {
		return fmt.Errorf("flushing ROM: %w", err)
	}

	logger.Info("Import completed",
		log.Int("modules", len(report.Infos)),
		log.Int("banks", len(report.Banks)),
	)
	return nil
}

// PrintBanner prints a version banner, mirroring the teacher's own
// PrintBanner, unless the caller asked for quiet operation.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("nesmusicimport", log.String("version", buildinfo.Version(version, commit, date)))
}

func runVerification(logger *log.Logger, romFile rom.Access, profile gameconfig.Profile, report importer.Report, preImport []byte) error {
	bankSizes := make(map[string]int, len(profile.Layouts))
	bankBases := make(map[string]uint16, len(profile.Layouts))
	targetChannels := make(map[string]int, len(profile.Layouts))
	for label, l := range profile.Layouts {
		bankSizes[label] = l.BankSize
		bankBases[label] = l.BankBaseAddr
		targetChannels[label] = l.TargetPrimarySquareChannel
	}

	cfg := verification.NewConfig(profile.Config.HeaderOffset, bankSizes, bankBases, targetChannels)
	if err := verification.VerifyPlacements(logger, romFile, cfg, report.Infos); err != nil {
		return err
	}
	if preImport != nil {
		if err := verification.VerifyCopyRanges(logger, preImport, report.Banks, profile.Config.HeaderOffset); err != nil {
			return err
		}
	}
	return nil
}
