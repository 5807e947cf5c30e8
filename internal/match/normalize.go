package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents folds accented letters to their ASCII base form so that
// OCR output like "José" compares equal to a roster entry of "Jose".
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a free-text name for comparison: accents are
// folded, the string is lower-cased, and every run of characters outside
// [a-z] collapses to a single space. Normalize is idempotent.
func Normalize(s string) string {
	return normalize(s, false)
}

// NormalizeAlnum behaves like Normalize but additionally preserves digits,
// for values such as course identifiers where numbers carry meaning.
func NormalizeAlnum(s string) string {
	return normalize(s, true)
}

func normalize(s string, keepNumbers bool) string {
	folded, _, err := transform.String(stripAccents, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	lastSpace := true
	for _, r := range folded {
		keep := r >= 'a' && r <= 'z'
		if keepNumbers && r >= '0' && r <= '9' {
			keep = true
		}
		if keep {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
