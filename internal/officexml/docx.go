package officexml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/veldt-labs/docsift/internal/archive"
	"github.com/veldt-labs/docsift/internal/core/domain"
)

// ExtractWordText returns the paragraph text of a word-processing document.
// Text is accumulated from every element whose local name is "t", with a
// newline opening each paragraph ("p") element. Nothing outside "t"
// elements is retained.
func ExtractWordText(container []byte) (string, error) {
	payload, ok := archive.Extract("word/document.xml", container)
	if !ok {
		return "", fmt.Errorf("word/document.xml missing: %w", domain.ErrInvalidFormat)
	}

	var b strings.Builder
	textDepth := 0

	dec := xml.NewDecoder(bytes.NewReader(payload))
	for {
		tok, err := dec.Token()
		if err != nil {
			// EOF or malformed markup: keep whatever was recovered.
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				b.WriteByte('\n')
			case "t":
				textDepth++
			}
		case xml.EndElement:
			if t.Name.Local == "t" && textDepth > 0 {
				textDepth--
			}
		case xml.CharData:
			if textDepth > 0 {
				b.Write(t)
			}
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("no text in word document: %w", domain.ErrInvalidFormat)
	}
	return text, nil
}
