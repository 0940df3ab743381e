package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Extraction errors. These abort a single document's pipeline and
	// surface on the document as StatusError with a message.

	// ErrCannotOpenFile indicates the source bytes could not be read.
	ErrCannotOpenFile = errors.New("cannot open file")

	// ErrOCRFailed indicates the OCR collaborator returned no usable text.
	ErrOCRFailed = errors.New("ocr failed")

	// ErrInvalidFormat indicates a container or XML payload could not be
	// parsed: archive entry missing, XML malformed, or workbook metadata
	// unresolvable with no worksheet fallback match.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrUnsupportedFileType indicates a file type outside the closed set.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrNoContent indicates extraction succeeded but produced no text.
	// Treated as a failure, not as an empty success.
	ErrNoContent = errors.New("no content extracted")

	// ErrInvalidTransition indicates an illegal status change was requested.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Vector/semantic search is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrSearchUnavailable indicates the text index is not configured.
	// Full-text/keyword search is disabled.
	ErrSearchUnavailable = errors.New("search index unavailable")
)
