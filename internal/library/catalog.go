package library

import (
	"fmt"

	"github.com/retroenv/nesmusicimport/internal/ci"
	"github.com/retroenv/nesmusicimport/internal/musicdata"
)

const (
	defaultEnabled              = true
	defaultStreamingSafe        = false
	defaultPrimarySquareChannel = 0
)

// Catalog is the in-memory object graph built from a decoded Library: every
// Module and Song it describes, addressable by the reference the selection
// file uses ("<title>" or "<title>#<songNumber>").
type Catalog struct {
	SongsByRef map[string]*musicdata.Song
}

// BuildCatalog resolves inheritance (per-song, else per-file, else
// per-group, else default) and constructs the Module/Song graph. engine
// labels every constructed Module, since one library file targets one
// engine per import run.
func BuildCatalog(lib *Library, engine string) (*Catalog, error) {
	cat := &Catalog{SongsByRef: map[string]*musicdata.Song{}}

	for i := range lib.Single {
		if err := addFile(cat, engine, lib.Single[i], fileDefaults{}); err != nil {
			return nil, fmt.Errorf("single entry %d (%q): %w", i, lib.Single[i].Title, err)
		}
	}

	for g := range lib.Groups {
		group := lib.Groups[g]
		defaults := fileDefaults{
			enabled:           group.Enabled,
			streamingSafe:     group.StreamingSafe,
			primarySquareChan: group.PrimarySquareChan,
			uses:              group.Uses,
		}
		for i := range group.Items {
			if err := addFile(cat, engine, group.Items[i], defaults); err != nil {
				return nil, fmt.Errorf("group %q item %d (%q): %w", group.Title, i, group.Items[i].Title, err)
			}
		}
	}

	return cat, nil
}

// fileDefaults carries the group-level fallback values a FileInfo inherits
// when it does not specify its own.
type fileDefaults struct {
	enabled           *bool
	streamingSafe     *bool
	primarySquareChan *int
	uses              []string
}

func addFile(cat *Catalog, engine string, file FileInfo, group fileDefaults) error {
	raw, err := file.Bytes()
	if err != nil {
		return err
	}

	var baseAddr uint16
	if file.StartAddr != nil {
		baseAddr = uint16(*file.StartAddr)
	}

	module := musicdata.NewModule(engine, file.Title, baseAddr, raw)

	fileDef := fileDefaults{
		enabled:           coalesceBool(file.Enabled, group.enabled),
		streamingSafe:     coalesceBool(file.StreamingSafe, group.streamingSafe),
		primarySquareChan: coalesceInt(file.PrimarySquareChan, group.primarySquareChan),
		uses:              coalesceUses(file.Uses, group.uses),
	}

	if len(file.Songs) == 0 {
		song := resolveSong(0, file.Title, file.Author, module, fileDef)
		cat.SongsByRef[file.Title] = song
		return nil
	}

	for _, si := range file.Songs {
		songDef := fileDefaults{
			enabled:           coalesceBool(si.Enabled, fileDef.enabled),
			streamingSafe:     coalesceBool(si.StreamingSafe, fileDef.streamingSafe),
			primarySquareChan: coalesceInt(si.PrimarySquareChan, fileDef.primarySquareChan),
			uses:              coalesceUses(si.Uses, fileDef.uses),
		}
		title := si.Title
		if title == "" {
			title = file.Title
		}
		author := si.Author
		if author == "" {
			author = file.Author
		}
		song := resolveSong(si.Number, title, author, module, songDef)
		ref := fmt.Sprintf("%s#%d", file.Title, si.Number)
		cat.SongsByRef[ref] = song
	}
	return nil
}

func resolveSong(number int, title, author string, module *musicdata.Module, def fileDefaults) *musicdata.Song {
	enabled := defaultEnabled
	if def.enabled != nil {
		enabled = *def.enabled
	}
	streamingSafe := defaultStreamingSafe
	if def.streamingSafe != nil {
		streamingSafe = *def.streamingSafe
	}
	primarySquareChan := defaultPrimarySquareChannel
	if def.primarySquareChan != nil {
		primarySquareChan = *def.primarySquareChan
	}

	return musicdata.NewSong(number, module, title, author, enabled, streamingSafe, primarySquareChan, ci.NewSet(def.uses...))
}

func coalesceBool(value, fallback *bool) *bool {
	if value != nil {
		return value
	}
	return fallback
}

func coalesceInt(value, fallback *int) *int {
	if value != nil {
		return value
	}
	return fallback
}

func coalesceUses(value, fallback []string) []string {
	if value != nil {
		return value
	}
	return fallback
}
