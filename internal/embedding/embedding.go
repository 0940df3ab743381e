// Package embedding turns chunk text into fixed-length vectors and scores
// them. The Embedder composes the WordPiece tokenizer, an external
// inference engine and CLS pooling behind the driven Embedder port.
package embedding

import (
	"context"
	"fmt"
	"math"

	"github.com/veldt-labs/docsift/internal/core/ports/driven"
	"github.com/veldt-labs/docsift/internal/tokenizer"
)

// Pool extracts a fixed-length embedding from a flat hidden-state tensor
// of shape [1, seqLen, dims] by reading sequence position 0 (the [CLS]
// position) across all dims feature channels. This is CLS pooling; values
// are never averaged across sequence positions.
func Pool(hidden []float32, dims int) ([]float32, error) {
	if dims <= 0 {
		return nil, fmt.Errorf("invalid embedding dimensionality %d", dims)
	}
	if len(hidden) < dims {
		return nil, fmt.Errorf("hidden state has %d values, need at least %d", len(hidden), dims)
	}
	out := make([]float32, dims)
	copy(out, hidden[:dims])
	return out, nil
}

// Cosine returns the cosine similarity of two equal-length vectors.
// Mismatched lengths and zero-norm vectors score 0. Floating-point
// rounding may yield values marginally outside [-1, 1]; no clamping
// is applied.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Ensure Embedder implements the port.
var _ driven.Embedder = (*Embedder)(nil)

// Embedder generates embeddings by tokenizing text, running the external
// inference engine and CLS-pooling its hidden states. One instance is
// constructed per process and passed by reference into the pipeline and
// the search service.
type Embedder struct {
	tok    *tokenizer.Tokenizer
	engine driven.InferenceEngine
}

// New creates an embedder over the given tokenizer and inference engine.
func New(tok *tokenizer.Tokenizer, engine driven.InferenceEngine) *Embedder {
	return &Embedder{tok: tok, engine: engine}
}

// Embed generates the embedding vector for the text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	ids, mask := e.tok.ToModelArrays(text)

	hidden, err := e.engine.HiddenStates(ctx, ids, mask)
	if err != nil {
		return nil, fmt.Errorf("inference: %w", err)
	}

	vector, err := Pool(hidden, e.engine.Dimensions())
	if err != nil {
		return nil, fmt.Errorf("pooling: %w", err)
	}
	return vector, nil
}

// Dimensions returns the model's embedding size.
func (e *Embedder) Dimensions() int {
	return e.engine.Dimensions()
}
