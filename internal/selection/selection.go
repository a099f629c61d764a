// Package selection decodes the caller's song-assignment decision: which
// song goes into which primary or secondary slot. spec.md's Non-goals
// explicitly leave conflict resolution between user selections to the
// caller; this package only resolves the references the caller already
// chose against a library.Catalog, it does not arbitrate between them.
package selection

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/nesmusicimport/internal/ci"
	"github.com/retroenv/nesmusicimport/internal/library"
	"github.com/retroenv/nesmusicimport/internal/musicdata"
)

const builtinPrefix = "builtin:"

// wireFormat is the JSON shape of the selection file: slot indices as
// strings (since JSON object keys are always strings) mapping to either a
// library song reference, a "builtin:<originalSlot>" reference, or null for
// an empty slot.
type wireFormat struct {
	Primary   map[string]*string            `json:"primary"`
	Secondary map[string]map[string]*string `json:"secondary"`
}

// Selection is the resolved caller assignment: a primary slot -> Song map
// and zero or more named secondary slot -> Song maps.
type Selection struct {
	Primary   map[int]*musicdata.Song
	Secondary map[string]map[int]*musicdata.Song
}

// Decode parses the selection JSON format from r and resolves every
// reference against cat.
func Decode(r io.Reader, cat *library.Catalog) (*Selection, error) {
	var wire wireFormat
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decoding selection: %w", err)
	}

	sel := &Selection{
		Primary:   map[int]*musicdata.Song{},
		Secondary: map[string]map[int]*musicdata.Song{},
	}

	for key, ref := range wire.Primary {
		slot, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("primary slot %q: not a number", key)
		}
		song, err := resolve(ref, cat)
		if err != nil {
			return nil, fmt.Errorf("primary slot %d: %w", slot, err)
		}
		sel.Primary[slot] = song
	}

	for name, slots := range wire.Secondary {
		resolved := map[int]*musicdata.Song{}
		for key, ref := range slots {
			slot, err := strconv.Atoi(key)
			if err != nil {
				return nil, fmt.Errorf("secondary map %q slot %q: not a number", name, key)
			}
			song, err := resolve(ref, cat)
			if err != nil {
				return nil, fmt.Errorf("secondary map %q slot %d: %w", name, slot, err)
			}
			resolved[slot] = song
		}
		sel.Secondary[name] = resolved
	}

	return sel, nil
}

func resolve(ref *string, cat *library.Catalog) (*musicdata.Song, error) {
	if ref == nil {
		return nil, nil
	}

	if slot, ok := strings.CutPrefix(*ref, builtinPrefix); ok {
		number, err := strconv.Atoi(slot)
		if err != nil {
			return nil, fmt.Errorf("builtin reference %q: not a number", *ref)
		}
		return musicdata.NewSong(number, nil, "", "", true, false, 0, ci.NewSet()), nil
	}

	song, ok := cat.SongsByRef[*ref]
	if !ok {
		return nil, fmt.Errorf("song reference %q not found in library", *ref)
	}
	return song, nil
}
