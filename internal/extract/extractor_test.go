package extract

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-labs/docsift/internal/core/domain"
	"github.com/veldt-labs/docsift/internal/core/ports/driven"
)

// fakeOCR returns canned text per call.
type fakeOCR struct {
	text string
	err  error
}

func (f *fakeOCR) Recognize(context.Context, []byte) (string, error) {
	return f.text, f.err
}

// fakePDF returns canned pages.
type fakePDF struct {
	pages []driven.PDFPage
	err   error
}

func (f *fakePDF) Pages(context.Context, []byte) ([]driven.PDFPage, error) {
	return f.pages, f.err
}

func TestExtract_PlainText(t *testing.T) {
	e := New(nil, nil)

	text, err := e.Extract(context.Background(), domain.FileTypePlainText, []byte("  hola mundo  \n"))
	require.NoError(t, err)
	assert.Equal(t, "hola mundo", text)
}

func TestExtract_UnknownTypeDecodesAsText(t *testing.T) {
	e := New(nil, nil)

	text, err := e.Extract(context.Background(), domain.FileTypeUnknown, []byte("raw bytes"))
	require.NoError(t, err)
	assert.Equal(t, "raw bytes", text)
}

func TestExtract_InvalidUTF8IsDropped(t *testing.T) {
	e := New(nil, nil)

	text, err := e.Extract(context.Background(), domain.FileTypePlainText, []byte{'o', 'k', 0xFF, 0xFE, '!'})
	require.NoError(t, err)
	assert.Equal(t, "ok!", text)
}

func TestExtract_EmptyInput(t *testing.T) {
	e := New(nil, nil)

	_, err := e.Extract(context.Background(), domain.FileTypePlainText, nil)
	assert.True(t, errors.Is(err, domain.ErrCannotOpenFile))
}

func TestExtract_WhitespaceOnlyIsNoContent(t *testing.T) {
	e := New(nil, nil)

	_, err := e.Extract(context.Background(), domain.FileTypePlainText, []byte("   \n\t  "))
	assert.True(t, errors.Is(err, domain.ErrNoContent))
}

func TestExtract_Image(t *testing.T) {
	e := New(&fakeOCR{text: "linea uno\nlinea dos"}, nil)

	text, err := e.Extract(context.Background(), domain.FileTypeImage, []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	assert.Equal(t, "linea uno\nlinea dos", text)
}

func TestExtract_ImageOCRFailure(t *testing.T) {
	e := New(&fakeOCR{err: errors.New("engine down")}, nil)

	_, err := e.Extract(context.Background(), domain.FileTypeImage, []byte{1})
	assert.True(t, errors.Is(err, domain.ErrOCRFailed))
}

func TestExtract_ImageWithoutOCRService(t *testing.T) {
	e := New(nil, nil)

	_, err := e.Extract(context.Background(), domain.FileTypeImage, []byte{1})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFileType))
}

func TestExtract_PDFPrefersNativeText(t *testing.T) {
	pdf := &fakePDF{pages: []driven.PDFPage{
		{Text: "native page text"},
		{Text: "  ", Image: []byte{1, 2, 3}}, // blank layer, OCR fallback
	}}
	e := New(&fakeOCR{text: "ocr page text"}, pdf)

	text, err := e.Extract(context.Background(), domain.FileTypePDF, []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "native page text\n\nocr page text", text)
}

func TestExtract_PDFRendererFailure(t *testing.T) {
	e := New(nil, &fakePDF{err: errors.New("broken xref")})

	_, err := e.Extract(context.Background(), domain.FileTypePDF, []byte("%PDF"))
	assert.True(t, errors.Is(err, domain.ErrInvalidFormat))
}

func TestExtract_Email(t *testing.T) {
	raw := "From: Ana <ana@example.com>\r\n" +
		"To: luis@example.com\r\n" +
		"Subject: Informe mensual\r\n" +
		"\r\n" +
		"El informe adjunto resume las ventas del mes.\r\n"

	e := New(nil, nil)
	text, err := e.Extract(context.Background(), domain.FileTypeEmail, []byte(raw))
	require.NoError(t, err)

	assert.Contains(t, text, "Subject: Informe mensual")
	assert.Contains(t, text, "El informe adjunto resume las ventas del mes.")
}

func TestExtract_EmailMultipartPrefersPlainText(t *testing.T) {
	var body bytes.Buffer
	body.WriteString("From: a@example.com\r\n")
	body.WriteString("Content-Type: multipart/alternative; boundary=XYZ\r\n\r\n")
	body.WriteString("--XYZ\r\nContent-Type: text/plain\r\n\r\nplain version\r\n")
	body.WriteString("--XYZ\r\nContent-Type: text/html\r\n\r\n<p>html version</p>\r\n")
	body.WriteString("--XYZ--\r\n")

	e := New(nil, nil)
	text, err := e.Extract(context.Background(), domain.FileTypeEmail, body.Bytes())
	require.NoError(t, err)

	assert.Contains(t, text, "plain version")
	assert.NotContains(t, text, "html version")
}

func TestExtract_MalformedEmail(t *testing.T) {
	e := New(nil, nil)

	_, err := e.Extract(context.Background(), domain.FileTypeEmail, []byte("not an email"))
	assert.True(t, errors.Is(err, domain.ErrInvalidFormat))
}

func TestExtract_WordDocument(t *testing.T) {
	document := `<w:document xmlns:w="ns"><w:body><w:p><w:r><w:t>parrafo</w:t></w:r></w:p></w:body></w:document>`
	container := storedZip("word/document.xml", document)

	e := New(nil, nil)
	text, err := e.Extract(context.Background(), domain.FileTypeWord, container)
	require.NoError(t, err)
	assert.Equal(t, "parrafo", text)
}

func TestExtract_CorruptWordDocument(t *testing.T) {
	e := New(nil, nil)

	_, err := e.Extract(context.Background(), domain.FileTypeWord, []byte("not a zip"))
	assert.True(t, errors.Is(err, domain.ErrInvalidFormat))
}

// storedZip builds a single-entry stored ZIP buffer.
func storedZip(name, content string) []byte {
	var buf bytes.Buffer
	header := make([]byte, 30)
	binary.LittleEndian.PutUint32(header[0:], 0x04034b50)
	binary.LittleEndian.PutUint32(header[18:], uint32(len(content)))
	binary.LittleEndian.PutUint32(header[22:], uint32(len(content)))
	binary.LittleEndian.PutUint16(header[26:], uint16(len(name)))
	buf.Write(header)
	buf.WriteString(name)
	buf.WriteString(content)
	buf.Write([]byte{'P', 'K', 0x01, 0x02})
	return buf.Bytes()
}
