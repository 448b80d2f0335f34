// Package docparse pulls plain text out of uploaded documents so flyers
// and posters can go through the text extraction path.
package docparse

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxDocumentText caps extracted document text; anything past this adds
// nothing the extractor can use.
const maxDocumentText = 20000

// PDFText extracts the plain text of a PDF held in memory.
func PDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("reading pdf: %w", err)
	}

	content, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", fmt.Errorf("pdf contains no extractable text")
	}
	if len(text) > maxDocumentText {
		text = text[:maxDocumentText]
	}
	return text, nil
}
