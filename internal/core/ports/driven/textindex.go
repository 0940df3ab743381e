package driven

import "context"

// TextIndex provides ranked boolean full-text search over chunk content.
// Backed by SQLite FTS5; the index rows are maintained in the same
// transaction as chunk writes, so it is never stale relative to content.
type TextIndex interface {
	// Search executes a boolean match expression of phrase-quoted terms
	// (for example `"motor" AND "diesel"`) against chunks of ready
	// documents, returning up to limit hits ordered by relevance rank.
	Search(ctx context.Context, match string, limit int) ([]TextHit, error)
}

// TextHit represents a full-text search result.
type TextHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Rank is the index's native relevance rank. Lower is better,
	// following bm25() ordering.
	Rank float64
}
