// Package main implements the nesmusicimport command line tool.
package main

import (
	"errors"
	"os"

	"github.com/retroenv/nesmusicimport/internal/cli"
	"github.com/retroenv/nesmusicimport/internal/config"
	"github.com/retroenv/nesmusicimport/internal/fileprocessor"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	if err := fileprocessor.ProcessFile(logger, opts); err != nil {
		logger.Error("Import failed", err)
		os.Exit(1)
	}
}
