package intelligence

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// dateLayouts is the ordered list of layouts the tolerant parser attempts.
// Certificate dates are typed by humans and rendered by many template
// generators, so the list is deliberately broad.
var dateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"Jan. 2, 2006",
	"2 January 2006",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"01-02-2006",
	"1-2-2006",
	"2006-01-02",
}

var monthCaser = cases.Title(language.English)

// parseCertificateDate attempts each known layout against the candidate text.
// OCR frequently shifts month names to all-caps or lowercase, so a
// title-cased rendering is tried as well. Returns nil when nothing parses;
// the caller keeps the raw text instead.
func parseCertificateDate(s string) *time.Time {
	candidate := strings.Trim(strings.TrimSpace(s), ".,")
	if candidate == "" {
		return nil
	}
	attempts := []string{candidate, monthCaser.String(strings.ToLower(candidate))}
	for _, attempt := range attempts {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, attempt); err == nil {
				t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
				return &t
			}
		}
	}
	return nil
}
