package driven

import (
	"context"

	"github.com/veldt-labs/docsift/internal/core/domain"
)

// TextExtractor converts raw file bytes into a single plain-text string.
// Dispatch is by declared file type; failures are typed domain errors
// (ErrInvalidFormat, ErrOCRFailed, ErrUnsupportedFileType, ErrNoContent).
type TextExtractor interface {
	// Extract returns the full extracted text for the file.
	// An empty result is reported as ErrNoContent, never as success.
	Extract(ctx context.Context, fileType domain.FileType, data []byte) (string, error)
}

// OCRService recognises text in an image or a rendered page.
// It is an external collaborator consumed as a black box.
type OCRService interface {
	// Recognize returns the best per-line text candidates joined by
	// newlines, or a typed failure.
	Recognize(ctx context.Context, image []byte) (string, error)
}

// PDFPage is one page of a PDF: its native text layer (possibly empty)
// and, when the text layer is blank, a rendered raster for OCR.
type PDFPage struct {
	// Text is the page's native text layer.
	Text string

	// Image is the rendered page, used for OCR when Text is blank.
	Image []byte
}

// PDFRenderer provides per-page access to a PDF document.
// It is an external collaborator consumed as a black box.
type PDFRenderer interface {
	// Pages returns the document's pages in order.
	Pages(ctx context.Context, data []byte) ([]PDFPage, error)
}
