package domain

// Status tracks a document through the ingestion pipeline.
//
// The machine is linear: pending -> extracting -> chunking -> embedding
// -> ready. Any non-terminal stage may fail into error. Ready and error
// are the only terminal states; reprocessing resets any state back to
// extracting.
type Status string

const (
	// StatusPending means the document is imported but not yet processed.
	StatusPending Status = "pending"

	// StatusExtracting means text extraction is in progress.
	StatusExtracting Status = "extracting"

	// StatusChunking means the extracted text is being split.
	StatusChunking Status = "chunking"

	// StatusEmbedding means chunk embeddings are being generated.
	StatusEmbedding Status = "embedding"

	// StatusReady means the document is fully indexed and searchable.
	StatusReady Status = "ready"

	// StatusError means processing failed; Document.Error carries the cause.
	StatusError Status = "error"
)

// Valid reports whether the status is a known pipeline state.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusExtracting, StatusChunking, StatusEmbedding,
		StatusReady, StatusError:
		return true
	}
	return false
}

// Terminal reports whether the status ends the pipeline.
func (s Status) Terminal() bool {
	return s == StatusReady || s == StatusError
}

// String returns the status name.
func (s Status) String() string {
	return string(s)
}

// CanTransition reports whether moving from s to next is a legal step.
// Error is reachable from every non-terminal state, and extracting is
// reachable from every state via reprocessing.
func (s Status) CanTransition(next Status) bool {
	if !next.Valid() {
		return false
	}
	// Reprocess: any state may restart extraction.
	if next == StatusExtracting {
		return true
	}
	if next == StatusError {
		return !s.Terminal()
	}
	switch s {
	case StatusPending:
		return false // only extracting, handled above
	case StatusExtracting:
		return next == StatusChunking
	case StatusChunking:
		return next == StatusEmbedding
	case StatusEmbedding:
		return next == StatusReady
	default:
		return false
	}
}
