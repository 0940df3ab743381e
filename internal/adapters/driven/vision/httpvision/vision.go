// Package httpvision provides OCR and PDF rendering adapters over HTTP.
// Both talk to a local vision sidecar that wraps the platform's text
// recogniser and PDF rasteriser.
package httpvision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/veldt-labs/docsift/internal/core/domain"
	"github.com/veldt-labs/docsift/internal/core/ports/driven"
)

// Ensure Service implements both vision ports.
var (
	_ driven.OCRService  = (*Service)(nil)
	_ driven.PDFRenderer = (*Service)(nil)
)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:8751"
	DefaultTimeout = 120 * time.Second
)

// DefaultLanguages are the recognition language hints, most likely first.
var DefaultLanguages = []string{"es", "en"}

// Config holds configuration for the vision sidecar adapter.
type Config struct {
	// BaseURL is the vision sidecar base URL (default: http://localhost:8751).
	BaseURL string

	// Timeout is the request timeout. Rendering large PDFs is slow, so
	// the default is generous (120s).
	Timeout time.Duration

	// Languages are recognition hints passed to the OCR engine.
	Languages []string
}

// Service recognises text in images and renders PDF pages through an
// HTTP sidecar.
type Service struct {
	client    *http.Client
	baseURL   string
	languages []string
}

// recognizeRequest is the sidecar OCR request format.
type recognizeRequest struct {
	Image     []byte   `json:"image"`
	Languages []string `json:"languages"`
}

// recognizeResponse is the sidecar OCR response format. Lines are the
// best candidate per observation, top to bottom.
type recognizeResponse struct {
	Lines []string `json:"lines"`
}

// pagesRequest is the sidecar PDF request format.
type pagesRequest struct {
	Document []byte `json:"document"`
}

// pagesResponse is the sidecar PDF response format.
type pagesResponse struct {
	Pages []struct {
		Text  string `json:"text"`
		Image []byte `json:"image,omitempty"`
	} `json:"pages"`
}

// NewService creates a new vision sidecar adapter.
func NewService(cfg Config) *Service {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = DefaultLanguages
	}

	return &Service{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   cfg.BaseURL,
		languages: cfg.Languages,
	}
}

// Recognize returns the recognised text lines joined by newlines.
func (s *Service) Recognize(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("%w: empty image", domain.ErrInvalidInput)
	}

	var resp recognizeResponse
	if err := s.post(ctx, "/v1/recognize", recognizeRequest{
		Image:     image,
		Languages: s.languages,
	}, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrOCRFailed, err)
	}

	return strings.Join(resp.Lines, "\n"), nil
}

// Pages returns the PDF's pages in order. Pages without a native text
// layer carry a rendered raster instead.
func (s *Service) Pages(ctx context.Context, data []byte) ([]driven.PDFPage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidInput)
	}

	var resp pagesResponse
	if err := s.post(ctx, "/v1/pdf/pages", pagesRequest{Document: data}, &resp); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}

	pages := make([]driven.PDFPage, len(resp.Pages))
	for i, p := range resp.Pages {
		pages[i] = driven.PDFPage{Text: p.Text, Image: p.Image}
	}
	return pages, nil
}

func (s *Service) post(ctx context.Context, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, rerr := io.ReadAll(resp.Body)
		if rerr != nil {
			return fmt.Errorf("vision error (status %d): failed to read response", resp.StatusCode)
		}
		return fmt.Errorf("vision error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
