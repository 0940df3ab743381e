package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/veldt-labs/docsift/internal/chunker"
	"github.com/veldt-labs/docsift/internal/core/domain"
	"github.com/veldt-labs/docsift/internal/core/ports/driven"
	"github.com/veldt-labs/docsift/internal/logger"
)

// IngestService runs documents through the ingestion pipeline:
// extract -> chunk -> embed -> persist. Each document moves through the
// pipeline alone; a failure marks that document as errored and leaves
// every other document untouched.
type IngestService struct {
	store     driven.DocumentStore
	extractor driven.TextExtractor
	chunker   *chunker.Chunker
	embedder  driven.Embedder
}

// NewIngestService creates a new ingestion service.
// The embedder is optional (can be nil); without it documents are still
// chunked and indexed for lexical search, just without vectors.
func NewIngestService(
	store driven.DocumentStore,
	extractor driven.TextExtractor,
	ch *chunker.Chunker,
	embedder driven.Embedder,
) *IngestService {
	return &IngestService{
		store:     store,
		extractor: extractor,
		chunker:   ch,
		embedder:  embedder,
	}
}

// Import reads a file, registers it as a pending document and runs the
// pipeline on it. The returned document reflects the final state, ready
// or errored.
func (s *IngestService) Import(ctx context.Context, path string) (*domain.Document, error) {
	logger.Section("Import")
	logger.Debug("Path: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCannotOpenFile, err)
	}

	doc := &domain.Document{
		ID:       uuid.NewString(),
		Title:    filepath.Base(path),
		FileType: domain.FileTypeForPath(path),
		Origin:   path,
		Status:   domain.StatusPending,
	}
	if err := s.store.SaveDocument(ctx, doc); err != nil {
		return nil, err
	}
	logger.Info("Registered %s as %s (%s)", doc.Title, doc.ID, doc.FileType)

	if err := s.process(ctx, doc, data); err != nil {
		logger.Warn("Processing %s failed: %v", doc.ID, err)
	}

	return s.store.GetDocument(ctx, doc.ID)
}

// Reprocess re-reads a document from its origin and regenerates its
// chunks and vectors from scratch. The old set is replaced atomically;
// old and new chunks are never visible together.
func (s *IngestService) Reprocess(ctx context.Context, id string) (*domain.Document, error) {
	logger.Section("Reprocess")

	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(doc.Origin)
	if err != nil {
		ferr := fmt.Errorf("%w: %v", domain.ErrCannotOpenFile, err)
		s.fail(ctx, doc.ID, ferr)
		return nil, ferr
	}

	if err := s.process(ctx, doc, data); err != nil {
		logger.Warn("Reprocessing %s failed: %v", doc.ID, err)
	}

	return s.store.GetDocument(ctx, doc.ID)
}

// Delete removes a document together with its chunks, vectors and index
// entries.
func (s *IngestService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteDocument(ctx, id)
}

// Get retrieves a single document.
func (s *IngestService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.store.GetDocument(ctx, id)
}

// List returns all documents.
func (s *IngestService) List(ctx context.Context) ([]domain.Document, error) {
	return s.store.ListDocuments(ctx)
}

// Chunks returns a document's chunks in order.
func (s *IngestService) Chunks(ctx context.Context, id string) ([]domain.Chunk, error) {
	return s.store.GetChunks(ctx, id)
}

// process runs the strictly ordered pipeline on one document. Any error
// transitions the document to the error state and is returned.
func (s *IngestService) process(ctx context.Context, doc *domain.Document, data []byte) error {
	if err := s.store.UpdateStatus(ctx, doc.ID, domain.StatusExtracting, ""); err != nil {
		return err
	}
	doc.Status = domain.StatusExtracting

	text, err := s.extractor.Extract(ctx, doc.FileType, data)
	if err != nil {
		s.fail(ctx, doc.ID, err)
		return err
	}
	logger.Debug("Extracted %d characters", len(text))

	doc.Content = text
	if err := s.store.SaveDocument(ctx, doc); err != nil {
		s.fail(ctx, doc.ID, err)
		return err
	}

	if err := s.store.UpdateStatus(ctx, doc.ID, domain.StatusChunking, ""); err != nil {
		return err
	}

	chunks := s.chunker.Split(doc)
	if len(chunks) == 0 {
		s.fail(ctx, doc.ID, domain.ErrNoContent)
		return domain.ErrNoContent
	}
	logger.Debug("Split into %d chunks", len(chunks))

	if err := s.store.UpdateStatus(ctx, doc.ID, domain.StatusEmbedding, ""); err != nil {
		return err
	}

	if s.embedder != nil {
		for i := range chunks {
			vector, err := s.embedder.Embed(ctx, chunks[i].Content)
			if err != nil {
				s.fail(ctx, doc.ID, fmt.Errorf("embedding chunk %d: %w", i, err))
				return err
			}
			chunks[i].Embedding = vector
		}
		logger.Debug("Embedded %d chunks", len(chunks))
	} else {
		logger.Debug("No embedder configured, skipping vectors")
	}

	if err := s.store.ReplaceChunks(ctx, doc.ID, chunks); err != nil {
		s.fail(ctx, doc.ID, err)
		return err
	}

	if err := s.store.UpdateStatus(ctx, doc.ID, domain.StatusReady, ""); err != nil {
		return err
	}
	logger.Info("Document %s is ready", doc.ID)
	return nil
}

// fail records a pipeline failure on the document. A failed transition
// here is only logged; the original error matters more.
func (s *IngestService) fail(ctx context.Context, id string, cause error) {
	if err := s.store.UpdateStatus(ctx, id, domain.StatusError, cause.Error()); err != nil {
		logger.Warn("Recording failure for %s: %v", id, err)
	}
}
