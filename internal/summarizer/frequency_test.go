package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeLimitsSentences(t *testing.T) {
	s := NewFrequencySummarizer()
	text := "Cats are mammals. Dogs are mammals. Birds lay eggs. Fish swim in water. Snakes have no legs. Frogs jump high."

	out, err := s.Summarize(text, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "."))
}

func TestSummarizeKeepsOriginalOrder(t *testing.T) {
	s := NewFrequencySummarizer()
	text := "Mammals include cats. Unrelated filler sentence here. Mammals include dogs."

	out, err := s.Summarize(text, 2)
	require.NoError(t, err)
	cats := strings.Index(out, "cats")
	dogs := strings.Index(out, "dogs")
	require.NotEqual(t, -1, cats)
	require.NotEqual(t, -1, dogs)
	assert.Less(t, cats, dogs)
}

func TestSummarizeNoSentenceBoundaries(t *testing.T) {
	s := NewFrequencySummarizer()
	out, err := s.Summarize("  no punctuation here  ", 3)
	require.NoError(t, err)
	assert.Equal(t, "no punctuation here", out)
}
