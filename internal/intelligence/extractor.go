package intelligence

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseFields parses raw OCR or PDF-layer text into a partial certificate
// record. It is a pure function: identical text always yields identical
// fields, and a miss on one field never blocks the others.
//
// Each field runs an ordered strategy list: an anchor-phrase line scan
// first, then regex fallbacks against a whitespace-collapsed "compact" view
// of the whole text. The dual view matters because OCR line segmentation
// splits titles and names across lines while anchor phrases themselves can
// survive intact on a single line.
func ParseFields(rawText string) ExtractedCertificateFields {
	lines := splitLines(rawText)
	compact := strings.Join(strings.Fields(rawText), " ")

	fields := ExtractedCertificateFields{
		RecipientName:     extractRecipient(lines, compact),
		TrainingClassName: extractClassName(lines, compact),
		HoursLogged:       extractHours(compact),
		CourseIdentifier:  extractCourseID(compact),
		LogNumber:         extractLogNumber(compact),
	}

	date, dateText := extractDate(compact)
	fields.CourseDate = date
	fields.CourseDateText = dateText

	fields.IsLikelyKnownTemplate = countTemplateMarkers(compact) >= templateMarkerMinimum
	return fields
}

// splitLines normalizes line breaks and returns trimmed, non-empty lines.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// extractRecipient finds the awardee's name. Anchor scan first: the text on
// the anchor line after the phrase, or the following line(s) up to a stop
// phrase. Compact-text regexes are the fallback.
func extractRecipient(lines []string, compact string) string {
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, anchor := range recipientAnchors {
			idx := strings.Index(lower, anchor)
			if idx < 0 {
				continue
			}
			remainder := strings.TrimSpace(line[idx+len(anchor):])
			if name := cleanRecipientName(remainder); name != "" {
				return name
			}
			var collected []string
			for j := i + 1; j < len(lines) && len(collected) < nameCollectLimit; j++ {
				if containsAnyPhrase(lines[j], recipientStops) ||
					hoursParen.MatchString(lines[j]) ||
					logNumberLabeled.MatchString(lines[j]) {
					break
				}
				collected = append(collected, lines[j])
				if name := cleanRecipientName(strings.Join(collected, " ")); name != "" {
					return name
				}
			}
		}
	}

	for _, re := range recipientFallbacks {
		if m := re.FindStringSubmatch(compact); m != nil {
			if name := cleanRecipientName(m[1]); name != "" {
				return name
			}
		}
	}
	return ""
}

// cleanRecipientName strips non-name characters and validates that the
// remainder plausibly is a person's name: at least two words, at most five,
// no stop phrases.
func cleanRecipientName(candidate string) string {
	if containsAnyPhrase(candidate, recipientStops) {
		return ""
	}
	var b strings.Builder
	for _, r := range candidate {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r == ' ', r == '.', r == '\'', r == '-':
			b.WriteRune(r)
		}
	}
	words := strings.Fields(b.String())
	kept := words[:0]
	for _, w := range words {
		// Stripping digits can leave orphaned punctuation behind.
		first := rune(w[0])
		if (first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z') {
			kept = append(kept, w)
		}
	}
	if len(kept) < 2 || len(kept) > 5 {
		return ""
	}
	longest := 0
	for _, w := range kept {
		if n := len(strings.Trim(w, ".-'")); n > longest {
			longest = n
		}
	}
	if longest < 2 {
		return ""
	}
	return strings.Trim(strings.Join(kept, " "), ".-' ")
}

// extractClassName finds the class/course title: anchor scan collecting
// wrapped lines until a stop condition (parenthesized hour count, log-number
// line, or structured course identifier), then compact-text fallbacks.
func extractClassName(lines []string, compact string) string {
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, anchor := range classAnchors {
			idx := strings.Index(lower, anchor)
			if idx < 0 {
				continue
			}
			var parts []string
			remainder := strings.TrimSpace(line[idx+len(anchor):])
			remainder = trimLeadingArticle(remainder)
			seg, done := takeTitleSegment(remainder)
			if seg != "" {
				parts = append(parts, seg)
			}
			if !done {
				for j := i + 1; j < len(lines) && len(parts) < classCollectLimit; j++ {
					seg, done = takeTitleSegment(lines[j])
					if seg != "" {
						parts = append(parts, seg)
					}
					if done {
						break
					}
				}
			}
			if title := joinTitle(parts); title != "" {
				return title
			}
		}
	}

	for _, re := range classFallbacks {
		if m := re.FindStringSubmatch(compact); m != nil {
			if title := joinTitle([]string{trimLeadingArticle(m[1])}); title != "" {
				return title
			}
		}
	}
	return ""
}

// takeTitleSegment returns the usable portion of one line of a wrapped title
// and whether a stop condition was hit on that line.
func takeTitleSegment(line string) (segment string, done bool) {
	stops := [][]int{
		hoursParen.FindStringIndex(line),
		logNumberLabeled.FindStringIndex(line),
		courseIDStructured.FindStringIndex(line),
	}
	cut := -1
	for _, loc := range stops {
		if loc == nil {
			continue
		}
		if cut < 0 || loc[0] < cut {
			cut = loc[0]
		}
	}
	if cut >= 0 {
		return strings.TrimSpace(line[:cut]), true
	}
	return strings.TrimSpace(line), false
}

func joinTitle(parts []string) string {
	title := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	return strings.Trim(title, " ,.;:-")
}

func trimLeadingArticle(s string) string {
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "the ") {
		return s[4:]
	}
	return s
}

// extractHours prefers an explicit "total hours" label over the first bare
// "<decimal> hours" occurrence. Only non-negative finite values populate the
// field; the patterns cannot match a sign, so a successful parse is enough.
func extractHours(compact string) *float64 {
	for _, re := range []*regexp.Regexp{hoursLabeled, hoursParen, hoursBare} {
		m := re.FindStringSubmatch(compact)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || v < 0 {
			continue
		}
		return &v
	}
	return nil
}

func extractCourseID(compact string) string {
	if id := courseIDStructured.FindString(compact); id != "" {
		return id
	}
	if m := courseIDLabeled.FindStringSubmatch(compact); m != nil {
		return strings.Trim(m[1], "-")
	}
	return ""
}

func extractLogNumber(compact string) string {
	if m := logNumberLabeled.FindStringSubmatch(compact); m != nil {
		return strings.Trim(m[1], "-")
	}
	return ""
}

// extractDate returns the parsed completion date, or the raw matched text
// when a date-looking string was found but no layout parsed it.
func extractDate(compact string) (*time.Time, string) {
	if m := dateLabeled.FindStringSubmatch(compact); m != nil {
		candidate := strings.TrimSpace(m[1])
		// The label capture is generous; prefer a well-formed date inside it.
		if s := dateMonthName.FindString(candidate); s != "" {
			candidate = s
		} else if s := dateNumeric.FindString(candidate); s != "" {
			candidate = s
		}
		if t := parseCertificateDate(candidate); t != nil {
			return t, ""
		}
		return nil, candidate
	}
	if s := dateMonthName.FindString(compact); s != "" {
		if t := parseCertificateDate(s); t != nil {
			return t, ""
		}
		return nil, s
	}
	if s := dateNumeric.FindString(compact); s != "" {
		if t := parseCertificateDate(s); t != nil {
			return t, ""
		}
		return nil, s
	}
	return nil, ""
}

func countTemplateMarkers(compact string) int {
	count := 0
	for _, re := range templateMarkers {
		if re.MatchString(compact) {
			count++
		}
	}
	return count
}

func containsAnyPhrase(line string, phrases []string) bool {
	lower := strings.ToLower(line)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
