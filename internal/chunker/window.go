package chunker

import (
	"fmt"
	"strings"
)

// DefaultWindowSize is the default window length in runes.
const DefaultWindowSize = 1000

// DefaultOverlap is the default overlap between consecutive windows in runes.
const DefaultOverlap = 200

// Window is a half-open [Start, End) slice of a text. Offsets are rune
// positions into the trimmed input, so Text == string(runes[Start:End]).
type Window struct {
	Start int
	End   int
	Text  string
}

// Windower splits text into fixed-size overlapping windows.
type Windower struct {
	size    int
	overlap int
}

// New validates the window configuration. Size must be positive and
// strictly greater than overlap, otherwise the split loop would never
// advance.
func New(size, overlap int) (*Windower, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("window overlap must be non-negative, got %d", overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("window overlap %d must be smaller than window size %d", overlap, size)
	}
	return &Windower{size: size, overlap: overlap}, nil
}

// Split trims the text and emits left-to-right windows over it.
// Consecutive windows start size-overlap runes apart; the last window
// always ends at the end of the trimmed text and may be shorter than
// the window size. Empty or whitespace-only text yields no windows.
func (w *Windower) Split(text string) []Window {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	var windows []Window
	for start := 0; start < len(runes); start += w.size - w.overlap {
		end := start + w.size
		if end > len(runes) {
			end = len(runes)
		}

		windows = append(windows, Window{
			Start: start,
			End:   end,
			Text:  string(runes[start:end]),
		})

		if end >= len(runes) {
			break
		}
	}

	return windows
}

// Size returns the configured window size.
func (w *Windower) Size() int { return w.size }

// Overlap returns the configured window overlap.
func (w *Windower) Overlap() int { return w.overlap }
