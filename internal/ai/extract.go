package ai

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrUnsupportedFileType is returned for MIME types the extractor
// cannot handle.
var ErrUnsupportedFileType = errors.New("unsupported file type")

const mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ExtractText pulls plain text out of an uploaded resume file.
// Plain text passes through; PDF and DOCX are parsed page by page.
func ExtractText(mimeType string, data []byte) (string, error) {
	switch mimeType {
	case "text/plain":
		return string(data), nil
	case "application/pdf":
		return extractPDFText(data)
	case mimeDocx:
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, mimeType)
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, _ := page.GetPlainText(nil)
		text.WriteString(pageText)
	}

	return text.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
