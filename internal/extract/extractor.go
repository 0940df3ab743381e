// Package extract converts raw file bytes into plain text, dispatching on
// the declared file type. Office containers go through the officexml
// parsers, PDFs and images through external OCR collaborators, everything
// else through plain decoding.
package extract

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/veldt-labs/docsift/internal/core/domain"
	"github.com/veldt-labs/docsift/internal/core/ports/driven"
	"github.com/veldt-labs/docsift/internal/logger"
	"github.com/veldt-labs/docsift/internal/officexml"
)

// Ensure Extractor implements the port.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor dispatches extraction by file type. The OCR and PDF
// collaborators are optional; file types that need an absent collaborator
// fail with ErrUnsupportedFileType.
type Extractor struct {
	ocr driven.OCRService
	pdf driven.PDFRenderer
}

// New creates an extractor. Either collaborator may be nil.
func New(ocr driven.OCRService, pdf driven.PDFRenderer) *Extractor {
	return &Extractor{ocr: ocr, pdf: pdf}
}

// Extract returns the file's full text. An empty extraction is reported
// as ErrNoContent, never as an empty success.
func (e *Extractor) Extract(ctx context.Context, fileType domain.FileType, data []byte) (string, error) {
	if len(data) == 0 {
		return "", domain.ErrCannotOpenFile
	}

	var text string
	var err error

	switch fileType {
	case domain.FileTypePDF:
		text, err = e.extractPDF(ctx, data)
	case domain.FileTypeImage:
		text, err = e.extractImage(ctx, data)
	case domain.FileTypeWord:
		text, err = officexml.ExtractWordText(data)
	case domain.FileTypeSpreadsheet:
		text, err = officexml.ExtractSpreadsheetText(data)
	case domain.FileTypeEmail:
		text, err = extractEmail(data)
	case domain.FileTypePlainText, domain.FileTypeUnknown:
		text = decodeText(data)
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, fileType)
	}

	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.ErrNoContent
	}
	return text, nil
}

// extractPDF walks the document page by page, preferring the native text
// layer and falling back to OCR on the rendered page.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) (string, error) {
	if e.pdf == nil {
		return "", fmt.Errorf("%w: no pdf renderer configured", domain.ErrUnsupportedFileType)
	}

	pages, err := e.pdf.Pages(ctx, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}

	var parts []string
	for i, page := range pages {
		if native := strings.TrimSpace(page.Text); native != "" {
			parts = append(parts, native)
			continue
		}
		if e.ocr == nil || len(page.Image) == 0 {
			continue
		}
		recognised, err := e.ocr.Recognize(ctx, page.Image)
		if err != nil {
			logger.Warn("OCR failed on page %d: %v", i+1, err)
			continue
		}
		if recognised = strings.TrimSpace(recognised); recognised != "" {
			parts = append(parts, recognised)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}

// extractImage runs OCR over a standalone image.
func (e *Extractor) extractImage(ctx context.Context, data []byte) (string, error) {
	if e.ocr == nil {
		return "", fmt.Errorf("%w: no ocr service configured", domain.ErrUnsupportedFileType)
	}

	text, err := e.ocr.Recognize(ctx, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrOCRFailed, err)
	}
	return text, nil
}

// decodeText decodes the bytes as UTF-8, dropping invalid sequences.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "")
}
