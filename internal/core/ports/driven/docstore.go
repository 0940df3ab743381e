package driven

import (
	"context"

	"github.com/veldt-labs/docsift/internal/core/domain"
)

// DocumentStore persists documents and chunks.
// Backed by SQLite for metadata storage.
//
// A chunk and its embedding are stored as a pair: ReplaceChunks writes a
// document's full chunk set (content, offsets and vectors) in a single
// transaction, replacing whatever was there before. There is no
// per-chunk update path.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// UpdateStatus transitions a document to the given status. The message
	// is stored as the document error when status is StatusError and
	// cleared otherwise. Illegal transitions fail with ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id string, status domain.Status, message string) error

	// ReplaceChunks atomically deletes a document's existing chunks and
	// inserts the given set, embeddings included. Old and new chunks are
	// never visible together.
	ReplaceChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error

	// GetChunks retrieves all chunks for a document, ordered by position.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// GetChunk retrieves a specific chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// ReadyChunks returns every chunk belonging to a ready document,
	// embeddings included, together with the parent document title.
	ReadyChunks(ctx context.Context) ([]ReadyChunk, error)

	// DeleteDocument removes a document, its chunks and its index entries.
	DeleteDocument(ctx context.Context, id string) error
}

// ReadyChunk is a chunk of a ready document joined with its parent title,
// as consumed by the semantic search stage.
type ReadyChunk struct {
	Chunk         domain.Chunk
	DocumentTitle string
}
