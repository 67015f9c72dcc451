package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gitanjali1909/pdf-chat/internal/domain"
)

func setupRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, r.Close()) })
	return r
}

func TestCreateAndGet(t *testing.T) {
	r := setupRegistry(t)
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", Filename: "report.pdf", Pages: 12}
	require.NoError(t, r.Create(ctx, doc))

	got, err := r.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", got.Filename)
	assert.Equal(t, 12, got.Pages)
	assert.Equal(t, domain.StatusProcessing, got.Status)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateRejectsDuplicateID(t *testing.T) {
	r := setupRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &domain.Document{ID: "doc-1", Filename: "a.pdf"}))
	assert.Error(t, r.Create(ctx, &domain.Document{ID: "doc-1", Filename: "b.pdf"}))
}

func TestStatusTransitions(t *testing.T) {
	r := setupRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &domain.Document{ID: "doc-1", Filename: "a.pdf"}))
	require.NoError(t, r.SetIndexed(ctx, "doc-1", 42))

	got, err := r.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusIndexed, got.Status)
	assert.Equal(t, 42, got.Chunks)

	require.NoError(t, r.Create(ctx, &domain.Document{ID: "doc-2", Filename: "scan.pdf"}))
	require.NoError(t, r.SetNoText(ctx, "doc-2"))

	got, err = r.Get(ctx, "doc-2")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoText, got.Status)
	assert.Equal(t, 0, got.Chunks)
}

func TestGetUnknownID(t *testing.T) {
	r := setupRegistry(t)

	_, err := r.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateUnknownID(t *testing.T) {
	r := setupRegistry(t)

	assert.ErrorIs(t, r.SetIndexed(context.Background(), "missing", 1), domain.ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	r := setupRegistry(t)
	ctx := context.Background()

	older := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, r.Create(ctx, &domain.Document{ID: "old", Filename: "old.pdf", CreatedAt: older}))
	require.NoError(t, r.Create(ctx, &domain.Document{ID: "new", Filename: "new.pdf"}))

	docs, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "new", docs[0].ID)
	assert.Equal(t, "old", docs[1].ID)
}
