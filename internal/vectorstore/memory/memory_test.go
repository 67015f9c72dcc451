package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gitanjali1909/pdf-chat/internal/domain"
)

func entry(id, docID, text string, vector []float32) domain.Entry {
	return domain.Entry{
		ID:     id,
		Vector: vector,
		Text:   text,
		Metadata: domain.Metadata{
			DocumentID: docID,
			File:       "test.pdf",
		},
	}
}

func setupStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.Init(context.Background(), 2))
	return s
}

func TestInitRejectsBadDimension(t *testing.T) {
	s := NewStore()
	assert.Error(t, s.Init(context.Background(), 0))
	assert.Error(t, s.Init(context.Background(), -3))

	require.NoError(t, s.Init(context.Background(), 4))
	assert.NoError(t, s.Init(context.Background(), 4))
	assert.Error(t, s.Init(context.Background(), 8))
}

func TestUpsertValidatesDimension(t *testing.T) {
	s := setupStore(t)
	err := s.Upsert(context.Background(), []domain.Entry{
		entry("d_0", "d", "ok", []float32{1, 0}),
		entry("d_1", "d", "wrong", []float32{1, 0, 0}),
	})
	assert.Error(t, err)
}

func TestQueryRanksBySimilarity(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Upsert(ctx, []domain.Entry{
		entry("d_0", "d", "orthogonal", []float32{0, 1}),
		entry("d_1", "d", "exact", []float32{1, 0}),
		entry("d_2", "d", "diagonal", []float32{1, 1}),
	}))

	results, err := s.Query(ctx, []float32{1, 0}, 3, "")
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "d_1", results[0].Entry.ID)
	assert.Equal(t, "d_2", results[1].Entry.ID)
	assert.Equal(t, "d_0", results[2].Entry.ID)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Score, results[i-1].Score)
	}
}

func TestQueryTieBreaksByInsertionOrder(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Upsert(ctx, []domain.Entry{
		entry("d_0", "d", "first", []float32{1, 0}),
		entry("d_1", "d", "second", []float32{1, 0}),
		entry("d_2", "d", "third", []float32{1, 0}),
	}))

	results, err := s.Query(ctx, []float32{1, 0}, 3, "")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "d_0", results[0].Entry.ID)
	assert.Equal(t, "d_1", results[1].Entry.ID)
	assert.Equal(t, "d_2", results[2].Entry.ID)
}

func TestQueryShrinksToAvailable(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Upsert(ctx, []domain.Entry{
		entry("d_0", "d", "a", []float32{1, 0}),
		entry("d_1", "d", "b", []float32{0, 1}),
		entry("d_2", "d", "c", []float32{1, 1}),
	}))

	results, err := s.Query(ctx, []float32{1, 0}, 10, "")
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestQueryEmptyStore(t *testing.T) {
	s := setupStore(t)
	results, err := s.Query(context.Background(), []float32{1, 0}, 5, "")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQueryFiltersByDocument(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Upsert(ctx, []domain.Entry{
		entry("a_0", "a", "from a", []float32{1, 0}),
		entry("b_0", "b", "from b", []float32{1, 0}),
	}))

	results, err := s.Query(ctx, []float32{1, 0}, 10, "a")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a_0", results[0].Entry.ID)

	// Unknown document yields no matches, not an error.
	results, err = s.Query(ctx, []float32{1, 0}, 10, "zzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}
