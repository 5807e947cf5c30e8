package document

import (
	"context"
	"fmt"
	"strings"
)

// MinUsefulTextLength is the minimum count of normalized characters a PDF
// text layer must yield before the acquirer trusts it on its own. Shorter
// yields trigger an OCR pass as well, since certificates are frequently
// scanned PDFs with a vestigial text layer.
const MinUsefulTextLength = 80

// Acquirer turns a file's bytes plus its declared MIME type into raw text.
// One acquisition is a single synchronous attempt per pass: no retries.
type Acquirer struct {
	engine      Engine
	maxFileSize int64
}

// NewAcquirer creates an acquirer that OCRs through the given engine.
func NewAcquirer(engine Engine, maxFileSize int64) *Acquirer {
	return &Acquirer{engine: engine, maxFileSize: maxFileSize}
}

// ExtractText produces raw text from file bytes. For PDFs the embedded text
// layer is tried first; when its yield is too sparse, or the file is an
// image, OCR runs against the raw bytes and its output is appended with
// newline separation. Downstream parsing tolerates the duplication.
//
// Returns an empty TextResult and an error when the file is unusable; the
// caller maps a no-text outcome to its own unreadable-document failure.
func (a *Acquirer) ExtractText(ctx context.Context, data []byte, mimeType string) (*TextResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("file is empty")
	}
	if a.maxFileSize > 0 && int64(len(data)) > a.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", len(data), a.maxFileSize)
	}

	var passes []string
	pdfText := ""

	if IsPDFMimeType(mimeType) || (!IsImageMimeType(mimeType) && LooksLikePDF(data)) {
		if err := validatePDFBytes(data); err == nil {
			if text, err := extractPDFTextLayer(data); err == nil {
				pdfText = text
				if normalizedLength(text) >= MinUsefulTextLength {
					return &TextResult{Text: text, Source: SourcePDFText}, nil
				}
			}
		}
	}

	if pdfText != "" {
		passes = append(passes, pdfText)
	}

	ocrText, ocrErr := a.engine.Recognize(ctx, data)
	if ocrErr == nil && strings.TrimSpace(ocrText) != "" {
		passes = append(passes, ocrText)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	combined := strings.Join(passes, "\n")
	if strings.TrimSpace(combined) == "" {
		if ocrErr != nil {
			return nil, fmt.Errorf("no text recovered: %w", ocrErr)
		}
		return nil, fmt.Errorf("no text recovered from any pass")
	}

	source := SourceOCR
	if pdfText != "" && strings.TrimSpace(pdfText) != "" {
		if len(passes) > 1 {
			source = SourcePDFTextOCR
		} else {
			source = SourcePDFText
		}
	}
	return &TextResult{Text: combined, Source: source}, nil
}

// normalizedLength counts characters after collapsing all whitespace, the
// yardstick for "did the text layer give us anything real".
func normalizedLength(text string) int {
	return len(strings.Join(strings.Fields(text), " "))
}
