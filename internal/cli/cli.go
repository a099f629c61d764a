// Package cli handles command line interface logic.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/nesmusicimport/internal/gameconfig"
	"github.com/retroenv/nesmusicimport/internal/options"
)

// UsageError represents an error that should show usage information.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage line to stdout and the flag defaults to the
// flag set's output (stderr unless changed).
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: nesmusicimport -rom <file> -library <file> -selection <file> [options]\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// ParseFlags parses command line flags and returns program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	if err := flags.Parse(os.Args[1:]); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	if err := validateRequired(opts); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	return opts, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.ROM, "rom", "", "ROM file to import music modules into")
	flags.StringVar(&opts.Library, "library", "", "library JSON file describing the modules to import")
	flags.StringVar(&opts.Selection, "selection", "", "selection JSON file assigning songs to slots")
	flags.StringVar(&opts.Output, "o", "", "output ROM file (default: overwrite the input ROM)")
	flags.StringVar(&opts.Engine, "engine", gameconfig.DefaultLabel, "target engine layout")
	flags.BoolVar(&opts.Verify, "verify", false, "re-read the written ROM and verify import invariants")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func validateRequired(opts options.Program) error {
	switch {
	case opts.ROM == "":
		return fmt.Errorf("missing required flag -rom")
	case opts.Library == "":
		return fmt.Errorf("missing required flag -library")
	case opts.Selection == "":
		return fmt.Errorf("missing required flag -selection")
	}
	return nil
}
