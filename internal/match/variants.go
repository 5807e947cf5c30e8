package match

import "strings"

// VariantSet returns the normalized, deduplicated set of plausible renderings
// of a person's name. Certificates rarely print a name exactly the way the
// roster stores it, so matching compares against the whole set:
//
//	first last
//	first middle last
//	first middle-initial last
//	first-initial last
//	last, first middle
//	display name as stored
//
// Missing name parts simply drop out of the concatenation.
func VariantSet(p Person) map[string]struct{} {
	first := strings.TrimSpace(p.FirstName)
	middle := strings.TrimSpace(p.MiddleName)
	last := strings.TrimSpace(p.LastName)

	raw := []string{
		join(first, last),
		join(first, middle, last),
		p.DisplayName,
	}
	if middle != "" {
		raw = append(raw, join(first, initial(middle), last))
	}
	if first != "" {
		raw = append(raw, join(initial(first), last))
	}
	raw = append(raw, join(last+",", first, middle))

	set := make(map[string]struct{}, len(raw))
	for _, v := range raw {
		n := Normalize(v)
		if n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

func join(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func initial(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
