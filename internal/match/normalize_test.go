package match

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "John Smith", "john smith"},
		{"strips punctuation", "Doe, Jane A.", "doe jane a"},
		{"collapses whitespace", "  Jane \t  Doe ", "jane doe"},
		{"drops digits", "Unit 12 Crew", "unit crew"},
		{"folds accents", "José Muñoz", "jose munoz"},
		{"empty", "", ""},
		{"only punctuation", "-- ** --", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"John Smith",
		"Doe, Jane A.",
		"José Muñoz-Ortega",
		"EVOC-24-0091",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeAlnumKeepsDigits(t *testing.T) {
	got := NormalizeAlnum("EMS-202-S025-2025")
	want := "ems 202 s025 2025"
	if got != want {
		t.Errorf("NormalizeAlnum = %q, want %q", got, want)
	}
}

func TestVariantSet(t *testing.T) {
	p := Person{
		FirstName:   "Jane",
		MiddleName:  "Ann",
		LastName:    "Doe",
		DisplayName: "Jane A. Doe",
	}

	set := VariantSet(p)

	want := []string{
		"jane doe",
		"jane ann doe",
		"jane a doe",
		"j doe",
		"doe jane ann",
	}
	for _, v := range want {
		if _, ok := set[v]; !ok {
			t.Errorf("VariantSet missing %q (have %v)", v, set)
		}
	}
}

func TestVariantSetContainsDisplayName(t *testing.T) {
	p := Person{FirstName: "Robert", LastName: "Jones", DisplayName: "Rob Jones"}
	set := VariantSet(p)
	if _, ok := set[Normalize(p.DisplayName)]; !ok {
		t.Errorf("VariantSet does not contain normalized display name %q", Normalize(p.DisplayName))
	}
}

func TestVariantSetMissingPartsDropOut(t *testing.T) {
	p := Person{FirstName: "Cher"}
	set := VariantSet(p)
	if _, ok := set["cher"]; !ok {
		t.Errorf("expected single-part variant, got %v", set)
	}
	for v := range set {
		if v == "" {
			t.Error("VariantSet contains empty variant")
		}
	}
}
