package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxTextSize caps how much text one document may contribute downstream.
const maxTextSize = 10 * 1024 * 1024

// extractPDFTextLayer pulls the embedded text layer out of PDF bytes,
// page by page. A page that fails to render is skipped rather than failing
// the whole document; scanned PDFs legitimately return an empty string.
func extractPDFTextLayer(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var builder strings.Builder
	totalLength := 0

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := extractPageText(page)
		if err != nil {
			continue
		}

		if totalLength+len(content) > maxTextSize {
			remaining := maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}

		builder.WriteString(content)
		totalLength += len(content)

		if pageNum < reader.NumPage() {
			builder.WriteString("\n")
		}
	}

	return builder.String(), nil
}

// extractPageText isolates the panic-prone library call; malformed content
// streams panic inside ledongthuc/pdf on some inputs.
func extractPageText(page pdf.Page) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page text extraction panicked: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}
