package match

import (
	"sort"
	"strings"
)

// Matching thresholds. Auto-selecting a person from OCR'd text risks filing a
// certificate under the wrong identity, so the auto-select bar is deliberately
// conservative; the suggest bar surfaces "close enough to ask a human" rows.
const (
	// AutoSelectThreshold is the minimum score FindBestMatch will act on.
	AutoSelectThreshold = 70
	// SuggestThreshold is the minimum score FindPossibleMatches will list.
	SuggestThreshold = 60
	// MaxPossibleMatches bounds the disambiguation list shown to operators.
	MaxPossibleMatches = 6
)

// Partial-credit weights used when no exact variant hit occurs.
const (
	firstNameCredit   = 45
	lastNameCredit    = 45
	fullInDisplay     = 20
	middleTokenCredit = 5
	overlapCeiling    = 70
)

// Score rates how well a free-text name matches a person, on a 0-100 scale.
// An exact hit against any name variant scores 100 and short-circuits all
// other heuristics. Scoring is pure: the person record is never mutated.
func Score(queryName string, p Person) int {
	score, _ := scoreWithVariant(queryName, p)
	return score
}

func scoreWithVariant(queryName string, p Person) (int, string) {
	query := Normalize(queryName)
	if query == "" {
		return 0, ""
	}

	variants := VariantSet(p)
	if _, ok := variants[query]; ok {
		return 100, query
	}

	first := Normalize(p.FirstName)
	last := Normalize(p.LastName)
	display := Normalize(p.DisplayName)
	queryTokens := strings.Fields(query)

	score := 0
	if first != "" && containsToken(queryTokens, first) {
		score += firstNameCredit
	}
	if last != "" && containsToken(queryTokens, last) {
		score += lastNameCredit
	}
	if first != "" && last != "" && strings.Contains(display, first+" "+last) {
		score += fullInDisplay
	}
	// Middle-token credit keys off the query text, the certificate's own
	// rendering of the name. Crediting the stored display name instead would
	// award the points regardless of what the certificate says.
	for _, m := range strings.Fields(Normalize(p.MiddleName)) {
		if containsToken(queryTokens, m) {
			score += middleTokenCredit
		}
	}
	if score > 100 {
		score = 100
	}

	bestVariant := ""
	if score < SuggestThreshold {
		// Token overlap against every variant catches reordered or
		// partially OCR-mangled names that the name-part credits miss.
		for v := range variants {
			overlap := tokenOverlapScore(queryTokens, v)
			if overlap > score {
				score = overlap
				bestVariant = v
			}
		}
	}
	return score, bestVariant
}

// TokenOverlap scores how many of the query's tokens appear in the target,
// scaled to the same 0-70 range the matcher's overlap fallback uses. Both
// strings are normalized first. Catalog lookups reuse this for fuzzy
// class-title matching.
func TokenOverlap(query, target string) int {
	return tokenOverlapScore(strings.Fields(Normalize(query)), Normalize(target))
}

// tokenOverlapScore returns the fraction of query tokens present in the
// variant, scaled to overlapCeiling so a pure overlap hit can never outrank
// an exact-variant or strong name-part match.
func tokenOverlapScore(queryTokens []string, variant string) int {
	if len(queryTokens) == 0 {
		return 0
	}
	variantTokens := strings.Fields(variant)
	matched := 0
	for _, qt := range queryTokens {
		if containsToken(variantTokens, qt) {
			matched++
		}
	}
	return matched * overlapCeiling / len(queryTokens)
}

func containsToken(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}

// FindBestMatch scores the query against every person in the pool and returns
// the highest scorer, but only when that score clears AutoSelectThreshold.
// Anything weaker returns nil so the caller can fall back to a human choice.
func FindBestMatch(queryName string, pool []Person) *Candidate {
	var best *Candidate
	for _, p := range pool {
		score, variant := scoreWithVariant(queryName, p)
		if best == nil || score > best.Score {
			best = &Candidate{Person: p, Score: score, BestVariant: variant}
		}
	}
	if best == nil || best.Score < AutoSelectThreshold {
		return nil
	}
	return best
}

// FindPossibleMatches returns every candidate scoring at or above
// SuggestThreshold, sorted by descending score and truncated to
// MaxPossibleMatches, for operator disambiguation when no strict match exists.
func FindPossibleMatches(queryName string, pool []Person) []Candidate {
	var out []Candidate
	for _, p := range pool {
		score, variant := scoreWithVariant(queryName, p)
		if score >= SuggestThreshold {
			out = append(out, Candidate{Person: p, Score: score, BestVariant: variant})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > MaxPossibleMatches {
		out = out[:MaxPossibleMatches]
	}
	return out
}
