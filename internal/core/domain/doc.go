// Package domain defines the core business entities for docsift.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An imported file with its extracted text
//   - Chunk: A searchable unit within a document
//   - SearchResult: A read-only search hit projection
//   - FileType: The closed set of supported input formats
//   - Status: The ingestion pipeline state machine
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
