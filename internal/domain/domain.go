package domain

import (
	"errors"
	"fmt"
	"time"
)

// DocumentStatus tracks where a document is in its ingestion lifecycle.
type DocumentStatus string

const (
	StatusProcessing DocumentStatus = "processing"
	StatusIndexed    DocumentStatus = "indexed"
	// StatusNoText marks a document whose pages produced no indexable
	// text (typically a scanned, image-only PDF). The document is kept
	// but has no queryable chunks.
	StatusNoText DocumentStatus = "no_text"
)

// ErrNotFound is returned by the registry when a document id is unknown.
var ErrNotFound = errors.New("document not found")

// Document is an ingested file. Documents are never mutated in place;
// re-uploading the same file creates a new document with a fresh id.
type Document struct {
	ID        string
	Filename  string
	Pages     int
	Chunks    int
	Status    DocumentStatus
	CreatedAt time.Time
}

// Page is one page of extracted text. Number is 0-based and follows
// the physical page order of the source file. Empty text is valid.
type Page struct {
	Number int
	Text   string
}

// Chunk is the atomic retrieval unit: a window of one page's text.
// Start and End are half-open rune offsets into the trimmed page text,
// so Text == string(runes[Start:End]).
type Chunk struct {
	DocumentID string
	Index      int // 0-based position among the document's kept chunks
	Page       int
	Start      int
	End        int
	Text       string
}

// ID returns the globally unique chunk id used as the store entry id.
func (c Chunk) ID() string {
	return fmt.Sprintf("%s_%d", c.DocumentID, c.Index)
}

// Metadata is the provenance carried alongside each store entry.
type Metadata struct {
	DocumentID string
	Page       int
	Start      int
	End        int
	File       string
}

// Entry is what gets persisted in a vector store.
type Entry struct {
	ID       string
	Vector   []float32
	Text     string
	Metadata Metadata
}

// Result is a store entry ranked by cosine similarity (higher is closer).
type Result struct {
	Entry Entry
	Score float32
}

// Match is a retrieved passage with its page provenance.
type Match struct {
	Text  string
	Page  int
	Score float32
}

// Answer is the outcome of an Ask call. Matches are always populated
// when retrieval succeeded; CompletionErr is set instead of failing the
// whole call when only the language model was unreachable.
type Answer struct {
	Text          string
	Matches       []Match
	CompletionErr error
}

// IngestResult summarizes one file ingestion.
type IngestResult struct {
	DocumentID    string
	Filename      string
	Pages         int
	ChunksIndexed int
	Summary       string
	NoText        bool
}
