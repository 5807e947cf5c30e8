package document

// Text acquisition sources, recorded so callers can tell which passes
// contributed to the returned text.
const (
	SourcePDFText    = "pdf-text"
	SourceOCR        = "ocr"
	SourcePDFTextOCR = "pdf-text+ocr"
)

// TextResult is the outcome of one acquisition run over a file's bytes.
type TextResult struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// FileInfo describes a certificate file found during directory discovery.
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mime_type"`
	ModifiedTime string `json:"modified_time"`
}
