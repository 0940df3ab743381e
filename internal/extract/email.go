package extract

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"

	"github.com/veldt-labs/docsift/internal/core/domain"
)

// extractEmail converts an RFC 822 message into searchable text: a header
// block (From/To/Date/Subject) followed by the body, preferring plain-text
// parts over HTML.
func extractEmail(data []byte) (string, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}

	body, err := emailBody(msg)
	if err != nil {
		return "", err
	}

	var content strings.Builder
	for _, h := range []string{"From", "To", "Date", "Subject"} {
		if v := decodeHeader(msg.Header.Get(h)); v != "" {
			content.WriteString(h)
			content.WriteString(": ")
			content.WriteString(v)
			content.WriteString("\n")
		}
	}
	content.WriteString("\n")
	content.WriteString(body)

	return content.String(), nil
}

// decodeHeader decodes RFC 2047 encoded headers.
func decodeHeader(header string) string {
	if header == "" {
		return ""
	}
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(header)
	if err != nil {
		return header // Return original if decoding fails
	}
	return decoded
}

// emailBody extracts the text content from an email message.
func emailBody(msg *mail.Message) (string, error) {
	contentType := msg.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/plain"
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		// If we can't parse the content type, read as plain text
		body, readErr := io.ReadAll(msg.Body)
		if readErr != nil {
			return "", domain.ErrInvalidFormat
		}
		return string(body), nil
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return multipartBody(msg.Body, params["boundary"])
	}

	body, err := io.ReadAll(msg.Body)
	if err != nil {
		return "", domain.ErrInvalidFormat
	}

	if mediaType == "text/html" {
		return stripHTMLTags(string(body)), nil
	}
	return string(body), nil
}

// multipartBody extracts text from multipart messages, preferring plain
// text parts over HTML.
func multipartBody(r io.Reader, boundary string) (string, error) {
	if boundary == "" {
		return "", nil
	}

	mr := multipart.NewReader(r, boundary)
	var textParts []string
	var htmlParts []string

	for {
		part, err := mr.NextPart()
		if err != nil {
			break
		}

		partContentType := part.Header.Get("Content-Type")
		mediaType, params, parseErr := mime.ParseMediaType(partContentType)
		if parseErr != nil {
			mediaType = "application/octet-stream"
		}

		content, readErr := io.ReadAll(part)
		part.Close()
		if readErr != nil {
			continue
		}

		switch {
		case mediaType == "text/plain":
			textParts = append(textParts, string(content))
		case mediaType == "text/html":
			htmlParts = append(htmlParts, stripHTMLTags(string(content)))
		case strings.HasPrefix(mediaType, "multipart/"):
			nested, nestedErr := multipartBody(bytes.NewReader(content), params["boundary"])
			if nestedErr == nil && nested != "" {
				textParts = append(textParts, nested)
			}
		}
	}

	if len(textParts) > 0 {
		return strings.Join(textParts, "\n"), nil
	}
	if len(htmlParts) > 0 {
		return strings.Join(htmlParts, "\n"), nil
	}
	return "", nil
}

// stripHTMLTags removes HTML tags for basic text extraction.
func stripHTMLTags(html string) string {
	var result strings.Builder
	inTag := false

	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			result.WriteRune(r)
		}
	}

	lines := strings.Split(result.String(), "\n")
	var cleaned []string
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
