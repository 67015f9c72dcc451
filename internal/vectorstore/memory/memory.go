package memory

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/Gitanjali1909/pdf-chat/internal/domain"
)

// Store is an in-memory vector store using brute-force cosine
// similarity. Entries are kept in insertion order, which is also the
// tie-break order for equal scores.
type Store struct {
	mu        sync.RWMutex
	dimension int
	entries   []domain.Entry
}

func NewStore() *Store { return &Store{} }

// Init fixes the store dimensionality. Calling it again with the same
// dimension is a no-op; a different dimension is a configuration error.
func (s *Store) Init(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimension != 0 && s.dimension != dimension {
		return errors.New("dimension mismatch with existing entries")
	}
	s.dimension = dimension
	return nil
}

// Upsert appends all entries as one batch; either every entry is added
// or none is.
func (s *Store) Upsert(_ context.Context, entries []domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimension == 0 {
		return errors.New("store not initialized")
	}
	for _, e := range entries {
		if len(e.Vector) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
		if e.ID == "" {
			return errors.New("entry id must not be empty")
		}
	}
	s.entries = append(s.entries, entries...)
	return nil
}

// Query returns up to topK entries ranked by cosine similarity,
// restricted to documentID when it is non-empty. Fewer than topK
// entries is not an error; an empty store yields no results.
func (s *Store) Query(_ context.Context, vector []float32, topK int, documentID string) ([]domain.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		return nil, errors.New("topK must be positive")
	}

	candidates := make([]domain.Result, 0, len(s.entries))
	for _, e := range s.entries {
		if documentID != "" && e.Metadata.DocumentID != documentID {
			continue
		}
		candidates = append(candidates, domain.Result{Entry: e, Score: cosine(e.Vector, vector)})
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if topK < len(candidates) {
		candidates = candidates[:topK]
	}
	return candidates, nil
}

func cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
