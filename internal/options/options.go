// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	ROM       string `flag:"rom" usage:"ROM file to import music modules into"`
	Library   string `flag:"library" usage:"library JSON file describing the modules to import"`
	Selection string `flag:"selection" usage:"selection JSON file assigning songs to slots"`
	Output    string `flag:"o" usage:"output ROM file (default: overwrite the input ROM)"`
}

// Flags contains behavior options.
type Flags struct {
	Engine string `flag:"engine" usage:"target engine layout" default:"famitracker-default"`
	Verify bool   `flag:"verify" usage:"re-read the written ROM and verify import invariants"`
	Debug  bool   `flag:"debug" usage:"enable debug logging"`
	Quiet  bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the importer.
type Program struct {
	Parameters
	Flags
}
