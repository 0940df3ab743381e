package domain

import "time"

// Document represents an imported file with its extracted text.
// It is the canonical representation after extraction.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Title is the human-readable title, usually derived from the filename.
	Title string

	// FileType is the declared type of the source file.
	FileType FileType

	// Origin is the original location (file path, URL, etc).
	Origin string

	// Status is the current processing stage.
	Status Status

	// Error holds a human-readable message when Status is StatusError.
	Error string

	// Content is the full extracted text before chunking.
	Content string

	// CreatedAt is when the document was first imported.
	CreatedAt time.Time

	// UpdatedAt is when the document was last updated.
	UpdatedAt time.Time
}

// Chunk represents a searchable unit within a document.
// Documents are split into overlapping chunks for granular search results.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the zero-based ordinal position within the document.
	// Positions are contiguous and strictly increasing per document.
	Position int

	// StartOffset and EndOffset are character offsets [start, end) into
	// the parent document's Content. StartOffset <= EndOffset always.
	StartOffset int
	EndOffset   int

	// Embedding is the vector representation for semantic search.
	// Every chunk of a ready document carries exactly one embedding of
	// the model's declared dimensionality.
	Embedding []float32
}

// SearchResult represents a single search hit. It is a read-only
// projection produced by the search service and is never persisted.
type SearchResult struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Content is the chunk text.
	Content string

	// DocumentID and DocumentTitle identify the parent document.
	DocumentID    string
	DocumentTitle string

	// Position is the chunk's ordinal position within the document.
	Position int

	// Score is the fused relevance score.
	Score float64
}
