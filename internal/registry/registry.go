package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Gitanjali1909/pdf-chat/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	filename   TEXT NOT NULL,
	pages      INTEGER NOT NULL DEFAULT 0,
	chunks     INTEGER NOT NULL DEFAULT 0,
	status     TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// Registry is a SQLite-backed record of ingested documents. It tracks
// lifecycle metadata only; chunk content lives in the vector store.
type Registry struct {
	db   *sql.DB
	path string
}

// Open creates the registry database under dataDir, defaulting to
// ~/.pdf-chat/documents.db.
func Open(dataDir string) (*Registry, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".pdf-chat")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "documents.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Registry{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (r *Registry) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Registry) Path() string {
	return r.path
}

// Create records a new document. Ids are unique; inserting an existing
// id is an error because documents are never mutated in place.
func (r *Registry) Create(ctx context.Context, doc *domain.Document) error {
	if doc.Status == "" {
		doc.Status = domain.StatusProcessing
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, filename, pages, chunks, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Filename, doc.Pages, doc.Chunks, string(doc.Status), doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting document %s: %w", doc.ID, err)
	}
	return nil
}

// SetIndexed marks a document as fully indexed with its chunk count.
func (r *Registry) SetIndexed(ctx context.Context, id string, chunks int) error {
	return r.setStatus(ctx, id, domain.StatusIndexed, chunks)
}

// SetNoText flags a document whose pages produced no indexable text.
func (r *Registry) SetNoText(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, domain.StatusNoText, 0)
}

func (r *Registry) setStatus(ctx context.Context, id string, status domain.DocumentStatus, chunks int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE documents SET status = ?, chunks = ? WHERE id = ?`,
		string(status), chunks, id,
	)
	if err != nil {
		return fmt.Errorf("updating document %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Get returns a document by id, or domain.ErrNotFound.
func (r *Registry) Get(ctx context.Context, id string) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, filename, pages, chunks, status, created_at FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading document %s: %w", id, err)
	}
	return doc, nil
}

// List returns all documents, newest first.
func (r *Registry) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, filename, pages, chunks, status, created_at FROM documents ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*domain.Document, error) {
	var doc domain.Document
	var status string
	if err := s.Scan(&doc.ID, &doc.Filename, &doc.Pages, &doc.Chunks, &status, &doc.CreatedAt); err != nil {
		return nil, err
	}
	doc.Status = domain.DocumentStatus(status)
	return &doc, nil
}
