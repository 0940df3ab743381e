// Package services implements the application's use cases.
//
// Services orchestrate the domain through the driven ports:
//
//   - IngestService: runs the extract -> chunk -> embed -> persist
//     pipeline and manages the document lifecycle
//   - SearchService: fuses vector similarity with full-text relevance
//     into one ranked result list
//
// # Import Rules
//
//   - Can Import: domain, ports, config, logger, and the pure
//     computation packages (chunker, embedding)
//   - Cannot Import: Any adapter package
package services
