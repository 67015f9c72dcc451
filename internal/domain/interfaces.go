package domain

import "context"

// Extractor produces the ordered per-page text of a source file.
type Extractor interface {
	Extract(path string) ([]Page, error)
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
// Index-time and query-time calls must share one dimensionality.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Store persists vectors with provenance metadata and supports
// similarity search. Upsert submits one document's entries as a single
// batch; partial writes must not become visible. Query returns results
// ordered by non-increasing Score, ties broken by insertion order, and
// filtered to documentID when it is non-empty.
type Store interface {
	Init(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, entries []Entry) error
	Query(ctx context.Context, vector []float32, topK int, documentID string) ([]Result, error)
}

// Completer is the language-model capability.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// Registry records document lifecycle metadata. It is advisory: the
// vector store remains the source of truth for chunks.
type Registry interface {
	Create(ctx context.Context, doc *Document) error
	SetIndexed(ctx context.Context, id string, chunks int) error
	SetNoText(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Document, error)
}

// IDGenerator mints document ids. Injected so tests can use a
// fixed-sequence generator.
type IDGenerator interface {
	NewID() string
}
