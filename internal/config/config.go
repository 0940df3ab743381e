// Package config loads and persists docsift configuration from a TOML
// file in the user's config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full application configuration.
type Config struct {
	// DataDir holds the SQLite database. Empty means ~/.docsift/data.
	DataDir string `toml:"data_dir"`

	Chunking  ChunkingConfig  `toml:"chunking"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Vision    VisionConfig    `toml:"vision"`
	Search    SearchConfig    `toml:"search"`
}

// ChunkingConfig configures how document text is split.
type ChunkingConfig struct {
	// Size is the target chunk size in characters.
	Size int `toml:"size"`

	// Overlap is the shared window between consecutive chunks.
	Overlap int `toml:"overlap"`
}

// EmbeddingConfig configures tokenization and the inference engine.
type EmbeddingConfig struct {
	// VocabPath is the WordPiece vocabulary file (one token per line).
	VocabPath string `toml:"vocab_path"`

	// Dimensions is the model's hidden size D.
	Dimensions int `toml:"dimensions"`

	// InferenceURL is the local inference server endpoint.
	InferenceURL string `toml:"inference_url"`

	// RequestsPerSecond and Burst rate-limit inference calls.
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// VisionConfig configures the OCR / PDF rendering service.
type VisionConfig struct {
	// URL is the vision server endpoint.
	URL string `toml:"url"`

	// Languages are recognition hints passed through to the service.
	Languages []string `toml:"languages"`
}

// SearchConfig carries the tunable fusion constants. Only the structure
// of the fusion is contractual; these numbers are empirical.
type SearchConfig struct {
	SemanticWeight  float64 `toml:"semantic_weight"`
	CoverageWeight  float64 `toml:"coverage_weight"`
	KeywordBonus    float64 `toml:"keyword_bonus"`
	OverlapBonus    float64 `toml:"overlap_bonus"`
	EntityBonus     float64 `toml:"entity_bonus"`
	SemanticFloor   float64 `toml:"semantic_floor"`
	SemanticOnlyBar float64 `toml:"semantic_only_bar"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Chunking: ChunkingConfig{
			Size:    1200,
			Overlap: 200,
		},
		Embedding: EmbeddingConfig{
			Dimensions:        384,
			InferenceURL:      "http://localhost:8750",
			RequestsPerSecond: 8.0,
			Burst:             4,
		},
		Vision: VisionConfig{
			URL:       "http://localhost:8751",
			Languages: []string{"es", "en"},
		},
		Search: SearchConfig{
			SemanticWeight:  0.45,
			CoverageWeight:  0.30,
			KeywordBonus:    0.15,
			OverlapBonus:    0.08,
			EntityBonus:     0.12,
			SemanticFloor:   0.30,
			SemanticOnlyBar: 0.72,
		},
	}
}

// DefaultDir returns ~/.docsift, creating nothing.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".docsift"), nil
}

// Load reads config.toml from the given directory, applying defaults for
// missing values. A missing file yields the defaults. If dir is empty,
// the default directory is used.
func Load(dir string) (Config, error) {
	cfg := Default()

	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to config.toml in the given directory,
// creating the directory if needed.
func Save(dir string, cfg Config) error {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
