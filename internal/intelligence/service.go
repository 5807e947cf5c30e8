package intelligence

import (
	"context"
	"fmt"
	"time"

	"github.com/emsportal/certintel/internal/document"
	"github.com/emsportal/certintel/internal/match"
)

// DefaultTimeout bounds one full extraction pipeline. OCR on malformed or
// very large input can stall, so every request gets a deadline.
const DefaultTimeout = 30 * time.Second

// Service orchestrates the certificate pipeline: text acquisition, field
// parsing, and recipient matching. It holds no per-request state; every call
// is independent.
type Service struct {
	acquirer *document.Acquirer
	timeout  time.Duration
}

// NewService creates a service around the given text acquirer. A
// non-positive timeout falls back to DefaultTimeout.
func NewService(acquirer *document.Acquirer, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{acquirer: acquirer, timeout: timeout}
}

// ExtractCertificateFields runs the acquisition and parsing stages against
// one uploaded file. Acquisition failures surface as ErrUnreadableDocument;
// exceeding the service timeout surfaces as ErrProcessingTimeout. Field-level
// parse misses never fail the call, they leave the field unset.
func (s *Service) ExtractCertificateFields(ctx context.Context, data []byte, mimeType string) (*ExtractionResult, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type outcome struct {
		text *document.TextResult
		err  error
	}

	// Acquisition runs in its own goroutine so a stalled OCR pass cannot
	// hold the caller past the deadline.
	resultChan := make(chan outcome, 1)
	go func() {
		text, err := s.acquirer.ExtractText(ctx, data, mimeType)
		resultChan <- outcome{text: text, err: err}
	}()

	var text *document.TextResult
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: extraction exceeded %s", ErrProcessingTimeout, s.timeout)
	case res := <-resultChan:
		if res.err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: extraction exceeded %s", ErrProcessingTimeout, s.timeout)
			}
			return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, res.err)
		}
		text = res.text
	}

	fields := ParseFields(text.Text)
	return &ExtractionResult{
		Fields:         fields,
		RawText:        text.Text,
		Source:         text.Source,
		ProcessingTime: time.Since(start),
	}, nil
}

// MatchRecipient resolves a free-text recipient name against the directory,
// returning the single best candidate only when its score clears the strict
// auto-select threshold. A nil return means no candidate was decisive.
func (s *Service) MatchRecipient(name string, directory []match.Person) *match.Person {
	best := match.FindBestMatch(name, directory)
	if best == nil {
		return nil
	}
	person := best.Person
	return &person
}

// RankPossibleRecipients returns the plausible-candidate list for human
// disambiguation: everyone above the suggest threshold, best first.
func (s *Service) RankPossibleRecipients(name string, directory []match.Person) []match.Candidate {
	return match.FindPossibleMatches(name, directory)
}

// Timeout reports the per-request pipeline deadline.
func (s *Service) Timeout() time.Duration {
	return s.timeout
}
