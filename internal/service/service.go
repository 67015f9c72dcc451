package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Gitanjali1909/pdf-chat/internal/chunker"
	"github.com/Gitanjali1909/pdf-chat/internal/domain"
	"github.com/Gitanjali1909/pdf-chat/internal/extractor"
	"github.com/Gitanjali1909/pdf-chat/internal/llm"
)

// ErrNoCompleter is reported through Answer.CompletionErr when no
// language model is configured; retrieval results are still returned.
var ErrNoCompleter = errors.New("no completion capability configured")

// Service is the chunking-and-retrieval core. It owns no global state;
// every external capability is injected.
type Service struct {
	windower   *chunker.Windower
	embedder   domain.Embedder
	store      domain.Store
	registry   domain.Registry
	completer  domain.Completer
	summarizer domain.Summarizer
	ids        domain.IDGenerator

	topK           int
	summaryBullets int
	summarySample  int
}

// Options carries the optional collaborators and tuning knobs.
type Options struct {
	Registry   domain.Registry
	Completer  domain.Completer
	Summarizer domain.Summarizer
	IDs        domain.IDGenerator
	TopK       int
	Bullets    int
}

// New assembles the pipeline from its capabilities.
func New(windower *chunker.Windower, embedder domain.Embedder, store domain.Store, opts Options) *Service {
	s := &Service{
		windower:       windower,
		embedder:       embedder,
		store:          store,
		registry:       opts.Registry,
		completer:      opts.Completer,
		summarizer:     opts.Summarizer,
		ids:            opts.IDs,
		topK:           opts.TopK,
		summaryBullets: opts.Bullets,
		summarySample:  3,
	}
	if s.ids == nil {
		s.ids = domain.UUIDGenerator{}
	}
	if s.topK <= 0 {
		s.topK = 3
	}
	if s.summaryBullets <= 0 {
		s.summaryBullets = 5
	}
	return s
}

// IndexDocument windows the pages, embeds the surviving chunks and
// submits them to the store as one batch. It returns the number of
// chunks indexed; zero with a nil error means the document had no
// extractable text and is not an error condition.
func (s *Service) IndexDocument(ctx context.Context, documentID, filename string, pages []domain.Page) (int, error) {
	chunks := s.buildChunks(documentID, pages)
	if len(chunks) == 0 {
		return 0, nil
	}
	if err := s.indexChunks(ctx, filename, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// buildChunks runs the windower over every page in order and assigns a
// single monotonically increasing sequence index across the whole
// document. Windows that trim to empty are dropped without leaving a
// gap in the kept indices.
func (s *Service) buildChunks(documentID string, pages []domain.Page) []domain.Chunk {
	var chunks []domain.Chunk
	seq := 0
	for _, page := range pages {
		for _, w := range s.windower.Split(page.Text) {
			if strings.TrimSpace(w.Text) == "" {
				continue
			}
			chunks = append(chunks, domain.Chunk{
				DocumentID: documentID,
				Index:      seq,
				Page:       page.Number,
				Start:      w.Start,
				End:        w.End,
				Text:       w.Text,
			})
			seq++
		}
	}
	return chunks
}

// indexChunks embeds all chunk texts in one batch and writes the
// entries atomically. A vectorizer failure aborts indexing before
// anything is written, so a failed document never becomes partially
// queryable.
func (s *Service) indexChunks(ctx context.Context, filename string, chunks []domain.Chunk) error {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	if err := s.embedder.Prepare(texts); err != nil {
		return fmt.Errorf("vectorizer prepare failed: %w", err)
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("vectorizer returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	if err := s.store.Init(ctx, len(vectors[0])); err != nil {
		return fmt.Errorf("store init failed: %w", err)
	}

	entries := make([]domain.Entry, len(chunks))
	for i, c := range chunks {
		entries[i] = domain.Entry{
			ID:     c.ID(),
			Vector: vectors[i],
			Text:   c.Text,
			Metadata: domain.Metadata{
				DocumentID: c.DocumentID,
				Page:       c.Page,
				Start:      c.Start,
				End:        c.End,
				File:       filename,
			},
		}
	}
	if err := s.store.Upsert(ctx, entries); err != nil {
		return fmt.Errorf("store write failed: %w", err)
	}
	return nil
}

// Retrieve embeds the query and returns the closest chunks of the
// given document, most similar first. An empty store or an unknown
// document yields an empty list, not an error.
func (s *Service) Retrieve(ctx context.Context, documentID, query string, topK int) ([]domain.Match, error) {
	if topK <= 0 {
		topK = s.topK
	}
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query embedding failed: %w", err)
	}

	results, err := s.store.Query(ctx, vector, topK, documentID)
	if err != nil {
		return nil, fmt.Errorf("store query failed: %w", err)
	}

	matches := make([]domain.Match, 0, len(results))
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		if _, dup := seen[r.Entry.Text]; dup {
			continue
		}
		seen[r.Entry.Text] = struct{}{}
		matches = append(matches, domain.Match{
			Text:  r.Entry.Text,
			Page:  r.Entry.Metadata.Page,
			Score: r.Score,
		})
	}
	return matches, nil
}

// Ask answers a question about one document. Retrieval failures are
// hard errors; a completion failure only sets Answer.CompletionErr so
// the retrieved passages remain usable.
func (s *Service) Ask(ctx context.Context, documentID, query string, topK int) (domain.Answer, error) {
	matches, err := s.Retrieve(ctx, documentID, query, topK)
	if err != nil {
		return domain.Answer{}, err
	}

	answer := domain.Answer{Matches: matches}
	if s.completer == nil {
		answer.CompletionErr = ErrNoCompleter
		return answer, nil
	}

	text, err := s.completer.Complete(ctx, llm.AnswerPrompt(ComposeContext(matches), query))
	if err != nil {
		answer.CompletionErr = err
		return answer, nil
	}
	answer.Text = text
	return answer, nil
}

// IngestFile extracts a file, registers it under a fresh document id
// and indexes its pages. Zero indexed chunks is reported through
// IngestResult.NoText rather than as an error.
func (s *Service) IngestFile(ctx context.Context, path string) (domain.IngestResult, error) {
	results, err := s.IngestFiles(ctx, []string{path})
	if err != nil {
		return domain.IngestResult{}, err
	}
	return results[0], nil
}

// IngestFiles ingests several files into one retrieval space. All
// documents are extracted and chunked first and the vectorizer is
// prepared once over their combined texts, so a local embedder builds
// its vocabulary from the whole corpus before anything is written.
func (s *Service) IngestFiles(ctx context.Context, paths []string) ([]domain.IngestResult, error) {
	type pending struct {
		res    domain.IngestResult
		chunks []domain.Chunk
	}

	items := make([]pending, 0, len(paths))
	var corpus []string
	for _, path := range paths {
		ext, err := extractor.ForFile(path)
		if err != nil {
			return nil, err
		}
		pages, err := ext.Extract(path)
		if err != nil {
			return nil, fmt.Errorf("extraction failed for %s: %w", path, err)
		}

		res := domain.IngestResult{
			DocumentID: s.ids.NewID(),
			Filename:   filepath.Base(path),
			Pages:      len(pages),
		}
		if s.registry != nil {
			doc := &domain.Document{
				ID:        res.DocumentID,
				Filename:  res.Filename,
				Pages:     len(pages),
				Status:    domain.StatusProcessing,
				CreatedAt: time.Now().UTC(),
			}
			if err := s.registry.Create(ctx, doc); err != nil {
				return nil, fmt.Errorf("registering document: %w", err)
			}
		}

		chunks := s.buildChunks(res.DocumentID, pages)
		if len(chunks) == 0 {
			res.NoText = true
			if s.registry != nil {
				if err := s.registry.SetNoText(ctx, res.DocumentID); err != nil {
					return nil, err
				}
			}
			items = append(items, pending{res: res})
			continue
		}
		for _, c := range chunks {
			corpus = append(corpus, c.Text)
		}
		items = append(items, pending{res: res, chunks: chunks})
	}

	if len(corpus) > 0 {
		if err := s.embedder.Prepare(corpus); err != nil {
			return nil, fmt.Errorf("vectorizer prepare failed: %w", err)
		}
	}

	results := make([]domain.IngestResult, 0, len(items))
	for _, it := range items {
		if it.res.NoText {
			results = append(results, it.res)
			continue
		}
		if err := s.indexChunks(ctx, it.res.Filename, it.chunks); err != nil {
			return nil, err
		}
		it.res.ChunksIndexed = len(it.chunks)
		if s.registry != nil {
			if err := s.registry.SetIndexed(ctx, it.res.DocumentID, len(it.chunks)); err != nil {
				return nil, err
			}
		}
		it.res.Summary = s.summarize(ctx, it.chunks)
		results = append(results, it.res)
	}
	return results, nil
}

// summarize produces the upload-time summary from the first few chunk
// texts. It degrades from the language model to the local summarizer
// to nothing; ingestion never fails over a summary.
func (s *Service) summarize(ctx context.Context, chunks []domain.Chunk) string {
	n := s.summarySample
	if n > len(chunks) {
		n = len(chunks)
	}
	texts := make([]string, n)
	for i := 0; i < n; i++ {
		texts[i] = chunks[i].Text
	}
	sample := strings.Join(texts, "\n\n")

	if s.completer != nil {
		if out, err := s.completer.Complete(ctx, llm.SummaryPrompt(sample, s.summaryBullets)); err == nil {
			return out
		}
	}
	if s.summarizer != nil {
		if out, err := s.summarizer.Summarize(sample, s.summaryBullets); err == nil {
			return out
		}
	}
	return ""
}
