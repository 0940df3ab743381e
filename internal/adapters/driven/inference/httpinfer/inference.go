// Package httpinfer provides a transformer inference adapter over HTTP.
// It posts tokenized input to a local encoder sidecar and returns the
// final hidden-state tensor.
package httpinfer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/veldt-labs/docsift/internal/core/domain"
	"github.com/veldt-labs/docsift/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.InferenceEngine = (*Engine)(nil)

// Default configuration values.
const (
	DefaultBaseURL           = "http://localhost:8750"
	DefaultTimeout           = 60 * time.Second
	DefaultDimensions        = 384
	DefaultRequestsPerSecond = 8.0
	DefaultBurst             = 4
)

// Config holds configuration for the inference engine adapter.
type Config struct {
	// BaseURL is the encoder sidecar base URL (default: http://localhost:8750).
	BaseURL string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration

	// Dimensions is the model hidden size (default: 384).
	Dimensions int

	// RequestsPerSecond is the sustained request rate against the sidecar.
	RequestsPerSecond float64

	// Burst is the token bucket burst size.
	Burst int
}

// Engine runs encoder inference through an HTTP sidecar, throttled by a
// token bucket so bulk ingestion cannot overwhelm the model process.
type Engine struct {
	client     *http.Client
	baseURL    string
	dimensions int
	limiter    *rate.Limiter
}

// encodeRequest is the sidecar API request format.
type encodeRequest struct {
	TokenIDs      []int64 `json:"token_ids"`
	AttentionMask []int64 `json:"attention_mask"`
}

// encodeResponse is the sidecar API response format. HiddenStates is
// the [1, seqLen, dims] tensor flattened row-major.
type encodeResponse struct {
	HiddenStates []float32 `json:"hidden_states"`
}

// NewEngine creates a new HTTP inference engine adapter.
func NewEngine(cfg Config) *Engine {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = DefaultDimensions
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}

	return &Engine{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:    cfg.BaseURL,
		dimensions: cfg.Dimensions,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

// HiddenStates runs the encoder and returns the flat hidden-state tensor.
func (e *Engine) HiddenStates(ctx context.Context, tokenIDs, attentionMask []int64) ([]float32, error) {
	if len(tokenIDs) == 0 || len(tokenIDs) != len(attentionMask) {
		return nil, fmt.Errorf("%w: token ids and attention mask must be non-empty and equal length", domain.ErrInvalidInput)
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	jsonBody, err := json.Marshal(encodeRequest{
		TokenIDs:      tokenIDs,
		AttentionMask: attentionMask,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		e.baseURL+"/v1/encode",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, rerr := io.ReadAll(resp.Body)
		if rerr != nil {
			return nil, fmt.Errorf("encoder error (status %d): failed to read response", resp.StatusCode)
		}
		return nil, fmt.Errorf("encoder error (status %d): %s", resp.StatusCode, string(body))
	}

	var encResp encodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&encResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(encResp.HiddenStates) != len(tokenIDs)*e.dimensions {
		return nil, fmt.Errorf("encoder returned %d values, expected %d",
			len(encResp.HiddenStates), len(tokenIDs)*e.dimensions)
	}

	return encResp.HiddenStates, nil
}

// Dimensions returns the model hidden size.
func (e *Engine) Dimensions() int {
	return e.dimensions
}

// Ping validates the sidecar is reachable without running inference.
func (e *Engine) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/v1/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("create ping request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("encoder returned status %d", resp.StatusCode)
	}
	return nil
}
