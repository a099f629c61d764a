package fileprocessor

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/nesmusicimport/internal/gameconfig"
	"github.com/retroenv/nesmusicimport/internal/library"
	"github.com/retroenv/nesmusicimport/internal/options"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func ftmBytes() []byte {
	data := make([]byte, 0x100)
	data[0], data[1], data[2], data[3] = 'F', 'T', 'M', 0x1A
	data[6] = 0 // numSongs
	return data
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func setupRun(t *testing.T) options.Program {
	t.Helper()
	dir := t.TempDir()

	rom := make([]byte, 0x10020)
	romPath := writeFile(t, dir, "rom.nes", rom)

	lib := library.Library{
		Single: []library.FileInfo{
			{Title: "Theme", Data: base64.StdEncoding.EncodeToString(ftmBytes())},
		},
	}
	libBytes, err := json.Marshal(lib)
	assert.NoError(t, err)
	libPath := writeFile(t, dir, "library.json", libBytes)

	selPath := writeFile(t, dir, "selection.json", []byte(`{"primary":{"7":"Theme"}}`))

	return options.Program{
		Parameters: options.Parameters{ROM: romPath, Library: libPath, Selection: selPath},
		Flags:      options.Flags{Engine: gameconfig.DefaultLabel, Quiet: true},
	}
}

func TestProcessFilePlacesModuleAndWritesSongMap(t *testing.T) {
	opts := setupRun(t)

	err := ProcessFile(log.NewTestLogger(t), opts)
	assert.NoError(t, err)

	written, err := os.ReadFile(opts.ROM)
	assert.NoError(t, err)

	// slot 7's primary map entry: bank 4 (first free bank) XOR 0xFF, song 0.
	assert.Equal(t, byte(4^0xFF), written[0x3E00+2*7])
	assert.Equal(t, byte(0), written[0x3E00+2*7+1])
}

func TestProcessFileRejectsUnknownEngine(t *testing.T) {
	opts := setupRun(t)
	opts.Engine = "no-such-game"

	err := ProcessFile(log.NewTestLogger(t), opts)
	assert.True(t, err != nil)
}

func TestProcessFileVerifyPasses(t *testing.T) {
	opts := setupRun(t)
	opts.Verify = true

	err := ProcessFile(log.NewTestLogger(t), opts)
	assert.NoError(t, err)
}
