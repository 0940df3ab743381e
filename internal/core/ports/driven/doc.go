// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentStore: Document/chunk persistence with atomic chunk+vector writes
//   - TextIndex: Inverted-index boolean term search over chunk text
//   - TextExtractor: Converts raw file bytes into plain text by file type
//   - Embedder: Converts text into a fixed-length embedding vector
//
// # Optional Interfaces
//
// These can be nil - the affected file types degrade to errors:
//
//   - OCRService: Text recognition on images/rendered pages
//   - PDFRenderer: Per-page native text and rendered images for PDFs
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
