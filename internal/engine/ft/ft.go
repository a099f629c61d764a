// Package ft implements the FamiTracker engine variant: the only concrete
// engine this spec requires (spec.md's Non-goals explicitly exclude
// supporting arbitrary engines beyond a derived type).
package ft

import (
	"github.com/retroenv/nesmusicimport/internal/importedmodule"
	"github.com/retroenv/nesmusicimport/internal/musicdata"
)

// Label is the case-insensitive engine name stored on musicdata.Module.
const Label = "ft"

// Engine is the FamiTracker music driver.
type Engine struct {
	channels byte
}

// New creates a FamiTracker engine declaring the given channel count.
func New(channels byte) Engine {
	return Engine{channels: channels}
}

// Label returns "ft".
func (Engine) Label() string {
	return Label
}

// ChannelCount returns the engine's declared channel count.
func (e Engine) ChannelCount() byte {
	return e.channels
}

// NewModuleInfo creates a FamiTracker placement record for module.
func (e Engine) NewModuleInfo(module *musicdata.Module) importedmodule.Info {
	return &Info{
		Base:     importedmodule.NewBase(module),
		channels: e.channels,
	}
}
