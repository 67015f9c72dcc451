package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name          string
		size, overlap int
	}{
		{"zero size", 0, 0},
		{"negative size", -1, 0},
		{"negative overlap", 100, -1},
		{"overlap equals size", 100, 100},
		{"overlap exceeds size", 100, 150},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.size, tc.overlap)
			assert.Error(t, err)
		})
	}
}

func TestSplitEmptyInput(t *testing.T) {
	w, err := New(DefaultWindowSize, DefaultOverlap)
	require.NoError(t, err)

	assert.Empty(t, w.Split(""))
	assert.Empty(t, w.Split("   "))
	assert.Empty(t, w.Split("\n\t \n"))
}

func TestSplitConcreteScenario(t *testing.T) {
	// 2500 chars with size=1000, overlap=200 must give exactly
	// (0,1000), (800,1800), (1600,2500).
	w, err := New(1000, 200)
	require.NoError(t, err)

	windows := w.Split(strings.Repeat("A", 2500))
	require.Len(t, windows, 3)

	assert.Equal(t, 0, windows[0].Start)
	assert.Equal(t, 1000, windows[0].End)
	assert.Equal(t, 800, windows[1].Start)
	assert.Equal(t, 1800, windows[1].End)
	assert.Equal(t, 1600, windows[2].Start)
	assert.Equal(t, 2500, windows[2].End)
	assert.Len(t, windows[2].Text, 900)
}

func TestSplitShortText(t *testing.T) {
	w, err := New(1000, 200)
	require.NoError(t, err)

	windows := w.Split("hello world")
	require.Len(t, windows, 1)
	assert.Equal(t, 0, windows[0].Start)
	assert.Equal(t, 11, windows[0].End)
	assert.Equal(t, "hello world", windows[0].Text)
}

func TestSplitCoverage(t *testing.T) {
	// Every rune of the trimmed text must be covered, with no gaps,
	// and the last window must end exactly at the text length.
	w, err := New(50, 10)
	require.NoError(t, err)

	text := strings.Repeat("abcdefghij", 37) // 370 runes, no whitespace
	windows := w.Split(text)
	require.NotEmpty(t, windows)

	assert.Equal(t, 0, windows[0].Start)
	for i := 1; i < len(windows); i++ {
		assert.LessOrEqual(t, windows[i].Start, windows[i-1].End, "gap between windows %d and %d", i-1, i)
		assert.Greater(t, windows[i].Start, windows[i-1].Start, "starts must increase")
	}
	assert.Equal(t, len([]rune(text)), windows[len(windows)-1].End)
}

func TestSplitOverlapStride(t *testing.T) {
	w, err := New(100, 30)
	require.NoError(t, err)

	windows := w.Split(strings.Repeat("x", 500))
	require.Greater(t, len(windows), 2)

	for i := 1; i < len(windows); i++ {
		assert.Equal(t, windows[i-1].Start+(100-30), windows[i].Start)
	}
	// All but the last window carry the full window size.
	for i := 0; i < len(windows)-1; i++ {
		assert.Equal(t, 100, windows[i].End-windows[i].Start)
	}
}

func TestSplitTrimsBeforeWindowing(t *testing.T) {
	w, err := New(10, 2)
	require.NoError(t, err)

	windows := w.Split("  abc  ")
	require.Len(t, windows, 1)
	assert.Equal(t, "abc", windows[0].Text)
	assert.Equal(t, 0, windows[0].Start)
	assert.Equal(t, 3, windows[0].End)
}

func TestSplitUnicodeOffsetsAreRunes(t *testing.T) {
	w, err := New(4, 1)
	require.NoError(t, err)

	text := "héllo wörld"
	windows := w.Split(text)
	runes := []rune(text)
	for _, win := range windows {
		assert.Equal(t, string(runes[win.Start:win.End]), win.Text)
	}
	assert.Equal(t, len(runes), windows[len(windows)-1].End)
}
