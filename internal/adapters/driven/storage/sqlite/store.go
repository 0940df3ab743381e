// Package sqlite implements the document store and the full-text index
// on a single SQLite database. Vectors are stored inline with their
// chunks and the FTS index is trigger-maintained, so a chunk, its
// embedding and its index entry always change in one transaction.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/veldt-labs/docsift/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/veldt-labs/docsift/internal/core/domain"
	"github.com/veldt-labs/docsift/internal/core/ports/driven"
)

// Ensure Store implements both persistence ports.
var (
	_ driven.DocumentStore = (*Store)(nil)
	_ driven.TextIndex     = (*Store)(nil)
)

// Store is a SQLite-backed document store and text index.
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docsift/data/docsift.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docsift", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "docsift.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Documents ====================

// SaveDocument stores or updates a document.
func (s *Store) SaveDocument(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, title, file_type, origin, status, error, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			file_type = excluded.file_type,
			origin = excluded.origin,
			status = excluded.status,
			error = excluded.error,
			content = excluded.content,
			updated_at = excluded.updated_at
	`, doc.ID, doc.Title, string(doc.FileType), doc.Origin, string(doc.Status),
		doc.Error, doc.Content, doc.CreatedAt, doc.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, file_type, origin, status, error, content, created_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	return scanDocument(row.Scan)
}

// ListDocuments returns all documents, newest first.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, file_type, origin, status, error, content, created_at, updated_at
		FROM documents ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// UpdateStatus transitions a document's status, validating the move
// against the pipeline state machine. The message is stored as the
// document error for StatusError and cleared otherwise.
func (s *Store) UpdateStatus(ctx context.Context, id string, status domain.Status, message string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var current string
	if err := tx.QueryRowContext(ctx, "SELECT status FROM documents WHERE id = ?", id).Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("reading status: %w", err)
	}

	if !domain.Status(current).CanTransition(status) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current, status)
	}

	errMsg := ""
	if status == domain.StatusError {
		errMsg = message
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE documents SET status = ?, error = ?, updated_at = ? WHERE id = ?
	`, string(status), errMsg, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// DeleteDocument removes a document. Chunks cascade and the FTS
// triggers drop their index rows in the same transaction.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Chunks ====================

// ReplaceChunks atomically swaps a document's chunk set. Old chunks,
// their embeddings and their index entries disappear in the same
// transaction that makes the new set visible.
func (s *Store) ReplaceChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("deleting old chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, content, position, start_offset, end_offset, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		embeddingBlob := float32SliceToBytes(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx, chunk.ID, documentID, chunk.Content,
			chunk.Position, chunk.StartOffset, chunk.EndOffset, embeddingBlob); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetChunks retrieves all chunks for a document, ordered by position.
func (s *Store) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, content, position, start_offset, end_offset, embedding
		FROM chunks WHERE document_id = ?
		ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows.Scan)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// GetChunk retrieves a specific chunk by ID.
func (s *Store) GetChunk(ctx context.Context, id string) (*domain.Chunk, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, content, position, start_offset, end_offset, embedding
		FROM chunks WHERE id = ?
	`, id)

	chunk, err := scanChunk(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return chunk, nil
}

// ReadyChunks returns every chunk of a ready document with its parent
// title, embeddings included.
func (s *Store) ReadyChunks(ctx context.Context) ([]driven.ReadyChunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.document_id, c.content, c.position, c.start_offset, c.end_offset, c.embedding, d.title
		FROM chunks c
		JOIN documents d ON d.id = c.document_id
		WHERE d.status = ?
		ORDER BY c.document_id, c.position
	`, string(domain.StatusReady))
	if err != nil {
		return nil, fmt.Errorf("querying ready chunks: %w", err)
	}
	defer rows.Close()

	var ready []driven.ReadyChunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		var embeddingBlob []byte
		var title string
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Content, &chunk.Position,
			&chunk.StartOffset, &chunk.EndOffset, &embeddingBlob, &title); err != nil {
			return nil, fmt.Errorf("scanning ready chunk: %w", err)
		}

		chunk.Embedding, err = bytesToFloat32Slice(embeddingBlob)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", chunk.ID, err)
		}

		ready = append(ready, driven.ReadyChunk{Chunk: chunk, DocumentTitle: title})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ready chunks: %w", err)
	}

	return ready, nil
}

// ==================== Text Index ====================

// Search runs a boolean match expression against the FTS index,
// restricted to chunks of ready documents, ordered by bm25 rank.
func (s *Store) Search(ctx context.Context, match string, limit int) ([]driven.TextHit, error) {
	if strings.TrimSpace(match) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, bm25(chunks_fts)
		FROM chunks_fts
		JOIN chunks c ON c.rowid = chunks_fts.rowid
		JOIN documents d ON d.id = c.document_id
		WHERE chunks_fts MATCH ? AND d.status = ?
		ORDER BY bm25(chunks_fts)
		LIMIT ?
	`, match, string(domain.StatusReady), limit)
	if err != nil {
		return nil, fmt.Errorf("querying text index: %w", err)
	}
	defer rows.Close()

	var hits []driven.TextHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		var hit driven.TextHit
		if err := rows.Scan(&hit.ChunkID, &hit.Rank); err != nil {
			return nil, fmt.Errorf("scanning text hit: %w", err)
		}
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating text hits: %w", err)
	}

	return hits, nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to its stored form: a
// contiguous little-endian IEEE-754 array with no framing.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a stored blob back to []float32.
// A byte length that is not a multiple of 4 is corruption and fails
// loudly rather than truncating.
func bytesToFloat32Slice(data []byte) ([]float32, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("embedding blob length %d is not a multiple of 4", len(data))
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats, nil
}

// scanDocument scans a document row through the given scan function.
func scanDocument(scan func(...any) error) (*domain.Document, error) {
	var doc domain.Document
	var fileType, status string

	if err := scan(&doc.ID, &doc.Title, &fileType, &doc.Origin, &status,
		&doc.Error, &doc.Content, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.FileType = domain.FileType(fileType)
	doc.Status = domain.Status(status)
	return &doc, nil
}

// scanChunk scans a chunk row through the given scan function.
func scanChunk(scan func(...any) error) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var embeddingBlob []byte

	if err := scan(&chunk.ID, &chunk.DocumentID, &chunk.Content,
		&chunk.Position, &chunk.StartOffset, &chunk.EndOffset, &embeddingBlob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	var err error
	chunk.Embedding, err = bytesToFloat32Slice(embeddingBlob)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", chunk.ID, err)
	}

	return &chunk, nil
}
