package driven

import "context"

// Embedder generates vector embeddings from text.
//
// The concrete implementation tokenizes the text, runs an external
// inference engine and pools the hidden states into one fixed-length
// vector. When nil, semantic search and ingestion embedding are disabled.
type Embedder interface {
	// Embed generates an embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g. 384, 512).
	// This is fixed by the model and matches every stored vector.
	Dimensions() int
}

// InferenceEngine runs a transformer encoder over a tokenized input.
//
// Given token-id and attention-mask arrays of equal length, it returns
// the final hidden-state tensor of shape [1, seqLen, dims] flattened
// row-major into a single slice of seqLen*dims values.
type InferenceEngine interface {
	// HiddenStates runs the model and returns the flat hidden-state tensor.
	HiddenStates(ctx context.Context, tokenIDs, attentionMask []int64) ([]float32, error)

	// Dimensions returns the model's hidden size D.
	Dimensions() int
}
