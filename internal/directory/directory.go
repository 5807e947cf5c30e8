// Package directory loads the read-only lookup data the matching and
// reconciliation stages consume: the member roster and the training-class
// catalog. Both are plain JSON files owned by the surrounding portal; this
// package never writes them.
package directory

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/emsportal/certintel/internal/autofill"
	"github.com/emsportal/certintel/internal/match"
)

// LoadRoster reads a JSON array of person records from path. Records missing
// both a last name and a display name are skipped: nothing could ever match
// them.
func LoadRoster(path string) ([]match.Person, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}

	var people []match.Person
	if err := json.Unmarshal(data, &people); err != nil {
		return nil, fmt.Errorf("failed to parse roster %s: %w", path, err)
	}

	kept := people[:0]
	for _, p := range people {
		if strings.TrimSpace(p.LastName) == "" && strings.TrimSpace(p.DisplayName) == "" {
			continue
		}
		kept = append(kept, p)
	}
	return kept, nil
}

// LoadCatalog reads a JSON array of class catalog entries from path. Entries
// without a name are skipped.
func LoadCatalog(path string) ([]autofill.ClassEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class catalog: %w", err)
	}

	var entries []autofill.ClassEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse class catalog %s: %w", path, err)
	}

	kept := entries[:0]
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			continue
		}
		kept = append(kept, e)
	}
	return kept, nil
}

// SearchRoster filters the roster by a free-text query: every query word must
// appear in the person's combined name text. An empty query returns the whole
// roster.
func SearchRoster(people []match.Person, query string) []match.Person {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return people
	}

	var out []match.Person
	for _, p := range people {
		haystack := strings.ToLower(strings.Join([]string{
			p.FirstName, p.MiddleName, p.LastName, p.DisplayName,
		}, " "))
		all := true
		for _, w := range words {
			if !strings.Contains(haystack, w) {
				all = false
				break
			}
		}
		if all {
			out = append(out, p)
		}
	}
	return out
}
