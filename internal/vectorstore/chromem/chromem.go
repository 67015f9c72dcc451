package chromem

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/philippgille/chromem-go"

	"github.com/Gitanjali1909/pdf-chat/internal/domain"
)

// Store persists vectors in an embedded chromem-go database. With a
// non-empty Path the collection survives restarts; otherwise it lives
// in memory only.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	dimension  int
}

type Config struct {
	Path       string
	Collection string
	Compress   bool
}

func NewStore(cfg Config) (*Store, error) {
	collection := cfg.Collection
	if collection == "" {
		collection = "pdf_collection"
	}

	var db *chromem.DB
	var err error
	if cfg.Path != "" {
		db, err = chromem.NewPersistentDB(cfg.Path, cfg.Compress)
		if err != nil {
			return nil, fmt.Errorf("failed to open chromem db: %w", err)
		}
	} else {
		db = chromem.NewDB()
	}

	// Embeddings always arrive precomputed from the pipeline; the
	// collection must never embed on its own.
	coll, err := db.GetOrCreateCollection(collection, nil, rejectEmbedding)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %s: %w", collection, err)
	}

	return &Store{db: db, collection: coll}, nil
}

func rejectEmbedding(context.Context, string) ([]float32, error) {
	return nil, errors.New("store received an entry without an embedding")
}

func (s *Store) Init(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	if s.dimension != 0 && s.dimension != dimension {
		return errors.New("dimension mismatch with existing entries")
	}
	s.dimension = dimension
	return nil
}

func (s *Store) Upsert(ctx context.Context, entries []domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]chromem.Document, len(entries))
	for i, e := range entries {
		if s.dimension != 0 && len(e.Vector) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
		docs[i] = chromem.Document{
			ID:        e.ID,
			Content:   e.Text,
			Embedding: e.Vector,
			Metadata: map[string]string{
				"document_id": e.Metadata.DocumentID,
				"page":        strconv.Itoa(e.Metadata.Page),
				"start":       strconv.Itoa(e.Metadata.Start),
				"end":         strconv.Itoa(e.Metadata.End),
				"file":        e.Metadata.File,
			},
		}
	}
	return s.collection.AddDocuments(ctx, docs, 1)
}

func (s *Store) Query(ctx context.Context, vector []float32, topK int, documentID string) ([]domain.Result, error) {
	if topK <= 0 {
		return nil, errors.New("topK must be positive")
	}
	// chromem rejects nResults larger than the collection, so clamp to
	// return whatever is available.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	var where map[string]string
	if documentID != "" {
		where = map[string]string{"document_id": documentID}
	}

	found, err := s.collection.QueryEmbedding(ctx, vector, topK, where, nil)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	results := make([]domain.Result, 0, len(found))
	for _, r := range found {
		e := domain.Entry{
			ID:   r.ID,
			Text: r.Content,
			Metadata: domain.Metadata{
				DocumentID: r.Metadata["document_id"],
				File:       r.Metadata["file"],
			},
		}
		e.Metadata.Page, _ = strconv.Atoi(r.Metadata["page"])
		e.Metadata.Start, _ = strconv.Atoi(r.Metadata["start"])
		e.Metadata.End, _ = strconv.Atoi(r.Metadata["end"])
		results = append(results, domain.Result{Entry: e, Score: r.Similarity})
	}
	return results, nil
}
