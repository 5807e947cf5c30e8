package intelligence

import (
	"time"
)

// ExtractedCertificateFields is the structured, partial record recovered from
// certificate text. Every field is independently optional: OCR failure on one
// field never blocks the others, so absence is a common, valid outcome.
type ExtractedCertificateFields struct {
	// RecipientName is the person the certificate was awarded to.
	RecipientName string `json:"recipient_name,omitempty"`

	// TrainingClassName is the class or course title.
	TrainingClassName string `json:"training_class_name,omitempty"`

	// HoursLogged is the credited hour count; nil when no hour figure was
	// recognized. Always >= 0 when set.
	HoursLogged *float64 `json:"hours_logged,omitempty"`

	// CourseIdentifier is a structured course code such as EMS-202-S025-2025.
	CourseIdentifier string `json:"course_identifier,omitempty"`

	// LogNumber is the certificate's log-number token.
	LogNumber string `json:"log_number,omitempty"`

	// CourseDate is the parsed completion date. When the date text was found
	// but could not be parsed, CourseDate is nil and CourseDateText carries
	// the raw matched text instead.
	CourseDate     *time.Time `json:"course_date,omitempty"`
	CourseDateText string     `json:"course_date_text,omitempty"`

	// IsLikelyKnownTemplate reports whether the text resembles a known
	// certificate layout (at least two marker phrases present). Callers use
	// it to refuse low-confidence extractions outright.
	IsLikelyKnownTemplate bool `json:"is_likely_known_template"`
}

// IsEmpty reports whether no field at all was recovered.
func (f ExtractedCertificateFields) IsEmpty() bool {
	return f.RecipientName == "" &&
		f.TrainingClassName == "" &&
		f.HoursLogged == nil &&
		f.CourseIdentifier == "" &&
		f.LogNumber == "" &&
		f.CourseDate == nil &&
		f.CourseDateText == ""
}

// ExtractionResult is what the full pipeline returns for one uploaded file.
type ExtractionResult struct {
	Fields  ExtractedCertificateFields `json:"fields"`
	RawText string                     `json:"raw_text"`

	// Source records which acquisition passes produced the text:
	// "pdf-text", "ocr", or "pdf-text+ocr".
	Source string `json:"source"`

	ProcessingTime time.Duration `json:"processing_time"`
}
