package ft

import (
	"fmt"

	"github.com/retroenv/nesmusicimport/internal/famitracker"
	"github.com/retroenv/nesmusicimport/internal/importedmodule"
)

// bankXorMask is the bank-index encoding the FamiTracker engine's ROM driver
// expects in the primary song map: spec.md §4.5 calls this "the form the
// Fami engine's driver expects".
const bankXorMask = 0xFF

// Info is the FamiTracker importedmodule.Info variant: it rebases and
// channel-swaps the module's raw bytes on demand.
type Info struct {
	importedmodule.Base
	channels byte
}

var _ importedmodule.Info = &Info{}

// GetData copies the module's raw bytes, swaps the square channels of every
// owned song whose primary square channel differs from primarySquareChannel,
// and rebases the result to address if it differs from the module's
// declared base address. The module's own raw bytes are never mutated.
func (i *Info) GetData(address uint16, primarySquareChannel int) ([]byte, error) {
	module := i.Module()

	ftm, err := famitracker.New(module.RawBytes, i.channels)
	if err != nil {
		return nil, fmt.Errorf("wrapping module %q as famitracker binary: %w", module.Title, err)
	}

	for _, song := range i.Songs() {
		if song.PrimarySquareChannel == primarySquareChannel {
			continue
		}
		if err := ftm.SwapSquareChannels(song.Number); err != nil {
			return nil, fmt.Errorf("swapping square channels for song %d of %q: %w",
				song.Number, module.Title, err)
		}
	}

	if address != module.BaseAddress {
		ftm.Rebase(module.BaseAddress, address)
	}

	return ftm.Bytes(), nil
}

// GetSongMapEntry returns the (bank_byte, song_byte) pair for slot, encoding
// the bank index as the FamiTracker driver expects it.
func (i *Info) GetSongMapEntry(slot int) (bankByte, songByte byte) {
	bankByte = byte(i.Bank()) ^ bankXorMask
	songByte = byte(i.SongIndices()[slot])
	return bankByte, songByte
}
