// Command docsift ingests documents and searches them through a hybrid
// semantic + lexical engine.
package main

import (
	"fmt"
	"os"

	"github.com/veldt-labs/docsift/internal/adapters/driven/inference/httpinfer"
	"github.com/veldt-labs/docsift/internal/adapters/driven/storage/sqlite"
	"github.com/veldt-labs/docsift/internal/adapters/driven/vision/httpvision"
	"github.com/veldt-labs/docsift/internal/adapters/driving/cli"
	"github.com/veldt-labs/docsift/internal/chunker"
	"github.com/veldt-labs/docsift/internal/config"
	"github.com/veldt-labs/docsift/internal/core/ports/driven"
	"github.com/veldt-labs/docsift/internal/core/services"
	"github.com/veldt-labs/docsift/internal/embedding"
	"github.com/veldt-labs/docsift/internal/extract"
	"github.com/veldt-labs/docsift/internal/logger"
	"github.com/veldt-labs/docsift/internal/tokenizer"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	vision := httpvision.NewService(httpvision.Config{
		BaseURL:   cfg.Vision.URL,
		Languages: cfg.Vision.Languages,
	})
	extractor := extract.New(vision, vision)

	// The embedder needs a vocabulary; without one, search and ingestion
	// degrade to lexical-only.
	var embedder driven.Embedder
	if cfg.Embedding.VocabPath != "" {
		tok, err := tokenizer.Load(cfg.Embedding.VocabPath)
		if err != nil {
			return fmt.Errorf("loading vocabulary: %w", err)
		}
		engine := httpinfer.NewEngine(httpinfer.Config{
			BaseURL:           cfg.Embedding.InferenceURL,
			Dimensions:        cfg.Embedding.Dimensions,
			RequestsPerSecond: cfg.Embedding.RequestsPerSecond,
			Burst:             cfg.Embedding.Burst,
		})
		embedder = embedding.New(tok, engine)
	} else {
		logger.Warn("No vocabulary configured, running lexical-only")
	}

	ch := chunker.New(
		chunker.WithChunkSize(cfg.Chunking.Size),
		chunker.WithOverlap(cfg.Chunking.Overlap),
	)

	ingest := services.NewIngestService(store, extractor, ch, embedder)
	search := services.NewSearchService(store, store, embedder, cfg.Search)

	cli.SetVersion(version)
	cli.SetServices(ingest, search)
	return cli.Execute()
}
