// Package cli implements the docsift command-line interface.
//
// Commands receive their services through SetServices; a nil service
// makes the dependent commands fail with a clear error instead of
// panicking.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/veldt-labs/docsift/internal/core/domain"
	"github.com/veldt-labs/docsift/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// IngestService is the document lifecycle surface the CLI drives.
type IngestService interface {
	Import(ctx context.Context, path string) (*domain.Document, error)
	Reprocess(ctx context.Context, id string) (*domain.Document, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context) ([]domain.Document, error)
	Chunks(ctx context.Context, id string) ([]domain.Chunk, error)
}

// SearchService is the query surface the CLI drives.
type SearchService interface {
	Search(ctx context.Context, query string, limit int, minScore float64) ([]domain.SearchResult, error)
}

var (
	ingestService IngestService
	searchService SearchService
)

// SetServices injects the services the commands run against.
func SetServices(ingest IngestService, search SearchService) {
	ingestService = ingest
	searchService = search
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docsift",
	Short: "Ingest documents and search them semantically",
	Long: `docsift ingests heterogeneous documents (Office XML, PDF, scans,
plain text, email) and makes their content queryable through a hybrid
semantic + lexical search engine.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
