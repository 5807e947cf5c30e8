package intelligence

import "errors"

// Pipeline failure taxonomy. Extraction-stage failures abort the request and
// surface one of these to the caller; field-level parse misses never error,
// they just leave the field absent.
var (
	// ErrUnreadableDocument means no acquisition pass yielded any
	// non-whitespace text. Fatal to the request; the user must re-upload.
	ErrUnreadableDocument = errors.New("unable to read text from certificate")

	// ErrLowConfidenceExtraction means text was recovered but it does not
	// resemble a known certificate layout and no anchor field was found.
	// Non-fatal: the caller should ask the operator to fill in manually.
	ErrLowConfidenceExtraction = errors.New("extracted text does not resemble a known certificate")

	// ErrProcessingTimeout means OCR/parsing exceeded the pipeline time
	// budget. Fatal to the request; safe to retry by resubmitting.
	ErrProcessingTimeout = errors.New("certificate processing timed out")
)
