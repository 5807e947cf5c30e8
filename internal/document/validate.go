package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfHeader is the magic prefix every PDF byte stream starts with.
var pdfHeader = []byte("%PDF")

// IsPDFMimeType reports whether a declared MIME type indicates a PDF.
func IsPDFMimeType(mimeType string) bool {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	return mt == "application/pdf" || mt == "application/x-pdf"
}

// IsImageMimeType reports whether a declared MIME type indicates an image.
func IsImageMimeType(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "image/")
}

// LooksLikePDF sniffs the byte stream itself; upload layers sometimes declare
// the wrong MIME type.
func LooksLikePDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfHeader)
}

// validatePDFBytes runs a relaxed pdfcpu structural check over in-memory PDF
// bytes before any text extraction is attempted.
func validatePDFBytes(data []byte) error {
	if !LooksLikePDF(data) {
		return fmt.Errorf("missing %%PDF header")
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if _, err := api.ReadContext(bytes.NewReader(data), conf); err != nil {
		return fmt.Errorf("invalid PDF structure: %w", err)
	}
	return nil
}
