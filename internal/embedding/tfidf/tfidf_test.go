package tfidf

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareRequired(t *testing.T) {
	e := NewEmbedder()
	_, err := e.Embed(context.Background(), "anything")
	assert.Error(t, err)
}

func TestFixedDimensionAcrossCalls(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{"cats are mammals", "dogs are mammals", "birds lay eggs"}))

	dim := e.Dimension()
	require.Greater(t, dim, 0)

	vecs, err := e.EmbedBatch(context.Background(), []string{"cats", "eggs", "unrelated words entirely"})
	require.NoError(t, err)
	for _, v := range vecs {
		assert.Len(t, v, dim)
	}
}

func TestPrepareFreezesVocabulary(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{"cats are mammals", "dogs are mammals"}))

	dim := e.Dimension()
	before, err := e.Embed(context.Background(), "cats and dogs")
	require.NoError(t, err)

	// A later corpus must not rebuild the space under existing entries.
	require.NoError(t, e.Prepare([]string{"rockets reach orbit", "satellites circle earth"}))
	assert.Equal(t, dim, e.Dimension())

	after, err := e.Embed(context.Background(), "cats and dogs")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestEmbedIsNormalized(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{"alpha beta gamma", "beta gamma delta"}))

	vec, err := e.Embed(context.Background(), "alpha beta")
	require.NoError(t, err)

	norm := 0.0
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
}

func TestSimilarTextScoresHigher(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{"cats are mammals", "rockets reach orbit"}))

	ctx := context.Background()
	q, err := e.Embed(ctx, "mammals like cats")
	require.NoError(t, err)
	cat, err := e.Embed(ctx, "cats are mammals")
	require.NoError(t, err)
	rocket, err := e.Embed(ctx, "rockets reach orbit")
	require.NoError(t, err)

	assert.Greater(t, dot(q, cat), dot(q, rocket))
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
