package document

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Engine recognizes text in a file's raw bytes. It must be a pure function of
// bytes in, text out: no state carried between calls.
type Engine interface {
	Recognize(ctx context.Context, data []byte) (string, error)
}

// TesseractEngine runs OCR through the local tesseract installation.
// Image bytes go straight to tesseract; PDF bytes are rasterized first with
// pdftoppm (poppler) and OCR'd page by page.
type TesseractEngine struct {
	// Language is the tesseract language pack, e.g. "eng".
	Language string
	// PdftoppmPath overrides the pdftoppm binary; empty means $PATH lookup.
	PdftoppmPath string
	// MaxPages bounds how many PDF pages are rasterized; 0 means all.
	MaxPages int
}

// NewTesseractEngine returns an engine with the given language pack,
// defaulting to English.
func NewTesseractEngine(language string) *TesseractEngine {
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{Language: language}
}

// Recognize OCRs the given bytes. Certificates arrive as photos, scans, and
// scanned PDFs; the engine dispatches on the byte stream itself rather than
// trusting any declared type.
func (e *TesseractEngine) Recognize(ctx context.Context, data []byte) (string, error) {
	if LooksLikePDF(data) {
		return e.recognizePDF(ctx, data)
	}
	return e.recognizeImage(data)
}

func (e *TesseractEngine) recognizeImage(data []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.Language); err != nil {
		return "", fmt.Errorf("failed to set OCR language %q: %w", e.Language, err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract OCR failed: %w", err)
	}
	return text, nil
}

// recognizePDF rasterizes PDF pages to PNG via pdftoppm, then OCRs each page.
// Pages that fail OCR are skipped; the remaining pages still contribute.
func (e *TesseractEngine) recognizePDF(ctx context.Context, data []byte) (string, error) {
	tmpDir, err := os.MkdirTemp("", "certintel-ocr-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, data, 0o600); err != nil {
		return "", fmt.Errorf("writing temp PDF: %w", err)
	}

	binary := e.PdftoppmPath
	if binary == "" {
		binary = "pdftoppm"
	}
	outPrefix := filepath.Join(tmpDir, "page")
	args := []string{"-png", "-r", "300"}
	if e.MaxPages > 0 {
		args = append(args, "-f", "1", "-l", fmt.Sprintf("%d", e.MaxPages))
	}
	args = append(args, pdfPath, outPrefix)

	cmd := exec.CommandContext(ctx, binary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftoppm failed: %w: %s", err, string(out))
	}

	pages, err := filepath.Glob(outPrefix + "-*.png")
	if err != nil {
		return "", fmt.Errorf("listing rasterized pages: %w", err)
	}
	sort.Strings(pages)

	var combined strings.Builder
	for _, page := range pages {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		pageBytes, err := os.ReadFile(page)
		if err != nil {
			continue
		}
		text, err := e.recognizeImage(pageBytes)
		if err != nil {
			continue
		}
		combined.WriteString(text)
		combined.WriteString("\n")
	}
	return combined.String(), nil
}
