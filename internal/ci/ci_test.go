package ci

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSetContainsIgnoresCase(t *testing.T) {
	s := NewSet("Boss", "menu")

	assert.True(t, s.Contains("boss"))
	assert.True(t, s.Contains("BOSS"))
	assert.True(t, s.Contains("Menu"))
	assert.False(t, s.Contains("ending"))
	assert.Equal(t, 2, s.Len())
}

func TestSetAddOnZeroValue(t *testing.T) {
	var s Set
	s.Add("Loop")

	assert.True(t, s.Contains("loop"))
	assert.Equal(t, 1, s.Len())
}

func TestLabelEqualIgnoresCase(t *testing.T) {
	a := Label("FamiTracker")
	b := Label("famitracker")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Label("nsf")))
}

func TestLabelNormalized(t *testing.T) {
	assert.Equal(t, "famitracker", Label("FamiTracker").Normalized())
}
