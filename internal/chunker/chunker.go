// Package chunker splits extracted document text into overlapping,
// sentence-aligned chunks with stable character offsets.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/veldt-labs/docsift/internal/core/domain"
)

// DefaultChunkSize is the default target chunk size in characters.
const DefaultChunkSize = 1200

// DefaultOverlap is the default overlap between consecutive chunks.
const DefaultOverlap = 200

// backwardWindow is how far behind the ideal end a sentence terminator
// is searched for.
const backwardWindow = 200

// forwardWindow is how far past the ideal end a terminator is searched
// for when the backward pass finds none.
const forwardWindow = 100

// Chunker splits document content into overlapping chunks.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the target chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Split chunks the document's content. It never fails: empty content
// yields an empty chunk list. Emitted chunks carry [start, end) offsets
// into the content and contiguous positions starting at 0.
func (c *Chunker) Split(doc *domain.Document) []domain.Chunk {
	text := doc.Content
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if len(text) <= c.chunkSize {
		return []domain.Chunk{newChunk(doc.ID, text, 0, 0, len(text))}
	}

	var chunks []domain.Chunk
	position := 0
	start := 0

	for start < len(text) {
		ideal := start + c.chunkSize
		if ideal > len(text) {
			ideal = len(text)
		}

		end := c.boundaryNear(text, start, ideal)

		if strings.TrimSpace(text[start:end]) != "" {
			chunks = append(chunks, newChunk(doc.ID, text[start:end], position, start, end))
			position++
		}

		if end >= len(text) {
			break
		}

		// Step back for overlap, but always make forward progress.
		next := alignRune(text, end-c.overlap)
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// boundaryNear finds a sentence boundary close to the ideal end offset:
// backward first, then forward, else the ideal end itself.
func (c *Chunker) boundaryNear(text string, start, ideal int) int {
	if ideal >= len(text) {
		return len(text)
	}

	low := ideal - backwardWindow
	if low < start+1 {
		low = start + 1
	}
	for i := ideal; i >= low; i-- {
		if isTerminator(text[i-1]) {
			return i
		}
	}

	high := ideal + forwardWindow
	if high > len(text) {
		high = len(text)
	}
	for i := ideal + 1; i <= high; i++ {
		if isTerminator(text[i-1]) {
			return i
		}
	}

	// No terminator in either window. Back the cut off to a rune start
	// so a multi-byte character is never split across chunks.
	if aligned := alignRune(text, ideal); aligned > start {
		return aligned
	}
	return ideal
}

// alignRune backs i off to the nearest rune start at or before it.
func alignRune(text string, i int) int {
	for i > 0 && i < len(text) && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

// isTerminator reports whether b ends a sentence.
func isTerminator(b byte) bool {
	return b == '.' || b == '!' || b == '?' || b == '\n'
}

func newChunk(documentID, content string, position, start, end int) domain.Chunk {
	return domain.Chunk{
		ID:          uuid.New().String(),
		DocumentID:  documentID,
		Content:     strings.TrimSpace(content),
		Position:    position,
		StartOffset: start,
		EndOffset:   end,
	}
}
