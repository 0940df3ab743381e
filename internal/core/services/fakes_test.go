package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/veldt-labs/docsift/internal/core/domain"
	"github.com/veldt-labs/docsift/internal/core/ports/driven"
)

// fakeStore is an in-memory DocumentStore and TextIndex. Its Search
// treats a quoted boolean expression as substring matching over chunk
// content, which is close enough to the real index for ranking tests.
type fakeStore struct {
	docs   map[string]*domain.Document
	chunks map[string][]domain.Chunk // by document ID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs:   make(map[string]*domain.Document),
		chunks: make(map[string][]domain.Chunk),
	}
}

func (f *fakeStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	copied := *doc
	f.docs[doc.ID] = &copied
	return nil
}

func (f *fakeStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	var docs []domain.Document
	for _, doc := range f.docs {
		docs = append(docs, *doc)
	}
	return docs, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id string, status domain.Status, message string) error {
	doc, ok := f.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !doc.Status.CanTransition(status) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, doc.Status, status)
	}
	doc.Status = status
	if status == domain.StatusError {
		doc.Error = message
	} else {
		doc.Error = ""
	}
	return nil
}

func (f *fakeStore) ReplaceChunks(_ context.Context, documentID string, chunks []domain.Chunk) error {
	f.chunks[documentID] = append([]domain.Chunk(nil), chunks...)
	return nil
}

func (f *fakeStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	return append([]domain.Chunk(nil), f.chunks[documentID]...), nil
}

func (f *fakeStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	for _, chunks := range f.chunks {
		for _, chunk := range chunks {
			if chunk.ID == id {
				return &chunk, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStore) ReadyChunks(_ context.Context) ([]driven.ReadyChunk, error) {
	var ready []driven.ReadyChunk
	for docID, chunks := range f.chunks {
		doc := f.docs[docID]
		if doc == nil || doc.Status != domain.StatusReady {
			continue
		}
		for _, chunk := range chunks {
			ready = append(ready, driven.ReadyChunk{Chunk: chunk, DocumentTitle: doc.Title})
		}
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i].Chunk.ID < ready[j].Chunk.ID })
	return ready, nil
}

func (f *fakeStore) DeleteDocument(_ context.Context, id string) error {
	if _, ok := f.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.docs, id)
	delete(f.chunks, id)
	return nil
}

func (f *fakeStore) Search(ctx context.Context, match string, limit int) ([]driven.TextHit, error) {
	op := " AND "
	if strings.Contains(match, " OR ") {
		op = " OR "
	}
	var terms []string
	for _, part := range strings.Split(match, op) {
		terms = append(terms, strings.Trim(part, `"`))
	}

	ready, _ := f.ReadyChunks(ctx)
	var hits []driven.TextHit
	for _, rc := range ready {
		content := strings.ToLower(rc.Chunk.Content)
		matched := 0
		for _, term := range terms {
			if strings.Contains(content, term) {
				matched++
			}
		}
		ok := matched == len(terms)
		if op == " OR " {
			ok = matched > 0
		}
		if ok {
			hits = append(hits, driven.TextHit{ChunkID: rc.Chunk.ID, Rank: -float64(matched)})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Rank < hits[j].Rank })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// addReady seeds a ready document with the given chunks.
func (f *fakeStore) addReady(id, title string, chunks ...domain.Chunk) {
	f.docs[id] = &domain.Document{ID: id, Title: title, Status: domain.StatusReady}
	f.chunks[id] = chunks
}

// fakeExtractor returns canned text or an error per file type.
type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(_ context.Context, _ domain.FileType, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.text != "" {
		return f.text, nil
	}
	return string(data), nil
}

// fakeEmbedder returns a fixed vector per text, falling back to a
// default vector for unknown inputs.
type fakeEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
	err      error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return f.fallback, nil
}

func (f *fakeEmbedder) Dimensions() int { return len(f.fallback) }
