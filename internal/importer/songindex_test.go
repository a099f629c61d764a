package importer

import (
	"testing"

	"github.com/retroenv/nesmusicimport/internal/ci"
	"github.com/retroenv/nesmusicimport/internal/musicdata"

	"github.com/retroenv/retrogolib/assert"
)

func TestCreateSongIndexMapExplicitPrimarySlots(t *testing.T) {
	module := musicdata.NewModule("ft", "M", 0x8000, []byte{0})
	song := musicdata.NewSong(0, module, "M", "", true, false, 0, ci.NewSet())

	songIndices, songMap, err := createSongIndexMap(4, map[int]*musicdata.Song{2: song}, nil)
	assert.NoError(t, err)
	assert.Equal(t, 2, songIndices[song.ID()])
	assert.Equal(t, song, songMap[2])
}

func TestCreateSongIndexMapSecondaryModuleBackedDrawsLargestFreeSlotFirst(t *testing.T) {
	module1 := musicdata.NewModule("ft", "M1", 0x8000, []byte{0})
	module2 := musicdata.NewModule("ft", "M2", 0x8000, []byte{0})
	song1 := musicdata.NewSong(0, module1, "M1", "", true, false, 0, ci.NewSet())
	song2 := musicdata.NewSong(0, module2, "M2", "", true, false, 0, ci.NewSet())

	secondary := map[string]map[int]*musicdata.Song{
		"boss": {0: song1, 1: song2},
	}

	songIndices, songMap, err := createSongIndexMap(4, nil, secondary)
	assert.NoError(t, err)

	// free pool is {0,1,2,3}; secondary songs are processed in sorted slot
	// order within "boss" (song1 before song2), each drawing the largest
	// still-free slot.
	assert.Equal(t, 3, songIndices[song1.ID()])
	assert.Equal(t, 2, songIndices[song2.ID()])
	assert.Equal(t, song1, songMap[3])
	assert.Equal(t, song2, songMap[2])
}

func TestCreateSongIndexMapBuiltinSecondaryKeepsOriginalNumber(t *testing.T) {
	builtin := musicdata.NewSong(5, nil, "Builtin", "", true, false, 0, ci.NewSet())
	secondary := map[string]map[int]*musicdata.Song{
		"boss": {0: builtin},
	}

	songIndices, songMap, err := createSongIndexMap(4, nil, secondary)
	assert.NoError(t, err)
	assert.Equal(t, 5, songIndices[builtin.ID()])
	_, inMap := songMap[5]
	assert.False(t, inMap)
}

func TestCreateSongIndexMapOutOfSlots(t *testing.T) {
	module1 := musicdata.NewModule("ft", "M1", 0x8000, []byte{0})
	module2 := musicdata.NewModule("ft", "M2", 0x8000, []byte{0})
	song1 := musicdata.NewSong(0, module1, "M1", "", true, false, 0, ci.NewSet())
	song2 := musicdata.NewSong(0, module2, "M2", "", true, false, 0, ci.NewSet())

	primary := map[int]*musicdata.Song{0: song1}
	secondary := map[string]map[int]*musicdata.Song{
		"boss": {0: song2},
	}

	_, _, err := createSongIndexMap(1, primary, secondary)
	assert.True(t, err != nil)
}

func TestCreateSongIndexMapSongAlreadyIndexedIsSkipped(t *testing.T) {
	module := musicdata.NewModule("ft", "M", 0x8000, []byte{0})
	song := musicdata.NewSong(0, module, "M", "", true, false, 0, ci.NewSet())

	primary := map[int]*musicdata.Song{1: song}
	secondary := map[string]map[int]*musicdata.Song{
		"boss": {0: song},
	}

	songIndices, _, err := createSongIndexMap(4, primary, secondary)
	assert.NoError(t, err)
	assert.Equal(t, 1, songIndices[song.ID()])
}
