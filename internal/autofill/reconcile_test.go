package autofill

import (
	"errors"
	"testing"
	"time"

	"github.com/emsportal/certintel/internal/intelligence"
	"github.com/emsportal/certintel/internal/match"
)

var testCatalog = []ClassEntry{
	{ID: "cls-evoc", Name: "Emergency Vehicle Operations"},
	{ID: "cls-cpr", Name: "CPR and AED for Healthcare Providers"},
	{ID: "cls-haz", Name: "Hazardous Materials Awareness"},
}

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestReconcileRefusesLowConfidence(t *testing.T) {
	fields := intelligence.ExtractedCertificateFields{
		HoursLogged:           floatPtr(4),
		IsLikelyKnownTemplate: false,
	}

	_, err := Reconcile(fields, Context{Catalog: testCatalog})
	if !errors.Is(err, intelligence.ErrLowConfidenceExtraction) {
		t.Errorf("Reconcile() error = %v, want ErrLowConfidenceExtraction", err)
	}
}

func TestReconcileAcceptsLowConfidenceWithRecipient(t *testing.T) {
	fields := intelligence.ExtractedCertificateFields{
		RecipientName:         "Jane A. Doe",
		IsLikelyKnownTemplate: false,
	}

	out, err := Reconcile(fields, Context{Catalog: testCatalog})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if out.RecipientStatus != StatusSuggested {
		t.Errorf("RecipientStatus = %q, want %q", out.RecipientStatus, StatusSuggested)
	}
}

func TestReconcileNothingExtracted(t *testing.T) {
	fields := intelligence.ExtractedCertificateFields{IsLikelyKnownTemplate: true}

	out, err := Reconcile(fields, Context{Catalog: testCatalog})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if out.Severity != SeverityWarning {
		t.Errorf("Severity = %q, want %q", out.Severity, SeverityWarning)
	}
	if len(out.Messages) != 1 {
		t.Fatalf("Messages = %v, want exactly one advisory", out.Messages)
	}
}

func TestReconcileClassCatalogHit(t *testing.T) {
	fields := intelligence.ExtractedCertificateFields{
		TrainingClassName:     "EMERGENCY VEHICLE OPERATIONS",
		IsLikelyKnownTemplate: true,
	}

	out, err := Reconcile(fields, Context{Catalog: testCatalog})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if out.ClassID != "cls-evoc" {
		t.Errorf("ClassID = %q, want cls-evoc", out.ClassID)
	}
	if out.ClassStatus != StatusApplied {
		t.Errorf("ClassStatus = %q, want %q", out.ClassStatus, StatusApplied)
	}
}

func TestReconcileClassCatalogMiss(t *testing.T) {
	fields := intelligence.ExtractedCertificateFields{
		TrainingClassName:     "Advanced Rope Rescue Operations",
		IsLikelyKnownTemplate: true,
	}

	out, err := Reconcile(fields, Context{Catalog: testCatalog})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if out.ClassStatus != StatusSuggested {
		t.Errorf("ClassStatus = %q, want %q", out.ClassStatus, StatusSuggested)
	}
	if out.ClassName != fields.TrainingClassName {
		t.Errorf("ClassName = %q, want the raw extracted title", out.ClassName)
	}
	if out.ClassID != "" {
		t.Errorf("ClassID = %q, want empty on a catalog miss", out.ClassID)
	}
}

func TestReconcileDateAppliedToBothEnds(t *testing.T) {
	day := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)
	fields := intelligence.ExtractedCertificateFields{
		CourseDate:            timePtr(day),
		IsLikelyKnownTemplate: true,
	}

	out, err := Reconcile(fields, Context{})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if out.DateStatus != StatusApplied {
		t.Errorf("DateStatus = %q, want %q", out.DateStatus, StatusApplied)
	}
	if out.StartDate == nil || out.EndDate == nil {
		t.Fatal("StartDate and EndDate should both be set")
	}
	if !out.StartDate.Equal(day) || !out.EndDate.Equal(day) {
		t.Errorf("StartDate/EndDate = %v/%v, want both %v", out.StartDate, out.EndDate, day)
	}
}

func TestReconcileDateRawTextSuggested(t *testing.T) {
	fields := intelligence.ExtractedCertificateFields{
		CourseDateText:        "99/99/9999",
		IsLikelyKnownTemplate: true,
	}

	out, err := Reconcile(fields, Context{})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if out.DateStatus != StatusSuggested {
		t.Errorf("DateStatus = %q, want %q", out.DateStatus, StatusSuggested)
	}
	if out.DateText != "99/99/9999" {
		t.Errorf("DateText = %q, want the raw match", out.DateText)
	}
	if out.StartDate != nil || out.EndDate != nil {
		t.Error("unparsed date text must not set date fields")
	}
}

func TestReconcileHours(t *testing.T) {
	tests := []struct {
		name  string
		hours *float64
		want  *float64
	}{
		{"whole hours", floatPtr(12.0), floatPtr(12.0)},
		{"fractional rounds to one decimal", floatPtr(4.25), floatPtr(4.3)},
		{"negative rejected", floatPtr(-2), nil},
		{"absent", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := intelligence.ExtractedCertificateFields{
				HoursLogged:           tt.hours,
				IsLikelyKnownTemplate: true,
			}
			out, err := Reconcile(fields, Context{})
			if err != nil {
				t.Fatalf("Reconcile() error = %v", err)
			}
			switch {
			case tt.want == nil && out.Hours != nil:
				t.Errorf("Hours = %v, want unset", *out.Hours)
			case tt.want != nil && (out.Hours == nil || *out.Hours != *tt.want):
				t.Errorf("Hours = %v, want %v", out.Hours, *tt.want)
			}
			if tt.want != nil && out.HoursStatus != StatusApplied {
				t.Errorf("HoursStatus = %q, want %q", out.HoursStatus, StatusApplied)
			}
		})
	}
}

func TestReconcileCourseIdentifier(t *testing.T) {
	fields := intelligence.ExtractedCertificateFields{
		CourseIdentifier:      "EMS-202-S025-2025",
		IsLikelyKnownTemplate: true,
	}

	out, err := Reconcile(fields, Context{})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if out.CourseIDStatus != StatusApplied {
		t.Errorf("CourseIDStatus = %q, want %q", out.CourseIDStatus, StatusApplied)
	}
	found := false
	for _, m := range out.Messages {
		if m.Severity == SeverityInfo {
			found = true
		}
	}
	if !found {
		t.Error("course identifier should always surface an info message")
	}
}

func TestReconcileRecipientMatchesSelectedPerson(t *testing.T) {
	selected := &match.Person{
		ID: "u1", FirstName: "Jane", MiddleName: "A", LastName: "Doe", DisplayName: "Jane Doe",
	}
	fields := intelligence.ExtractedCertificateFields{
		RecipientName:         "Jane A. Doe",
		IsLikelyKnownTemplate: true,
	}

	out, err := Reconcile(fields, Context{SelectedPerson: selected})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if out.RecipientStatus != StatusApplied {
		t.Errorf("RecipientStatus = %q, want %q", out.RecipientStatus, StatusApplied)
	}
	if out.Severity != SeverityInfo {
		t.Errorf("Severity = %q, want %q", out.Severity, SeverityInfo)
	}
}

func TestReconcileRecipientConflict(t *testing.T) {
	selected := &match.Person{
		ID: "u2", FirstName: "Jane", LastName: "Doe", DisplayName: "Jane Doe",
	}
	fields := intelligence.ExtractedCertificateFields{
		RecipientName:         "John Smith",
		IsLikelyKnownTemplate: true,
	}

	out, err := Reconcile(fields, Context{SelectedPerson: selected})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if out.RecipientStatus != StatusConflict {
		t.Errorf("RecipientStatus = %q, want %q", out.RecipientStatus, StatusConflict)
	}
	if out.Severity != SeverityWarning {
		t.Errorf("Severity = %q, want %q", out.Severity, SeverityWarning)
	}
	if selected.DisplayName != "Jane Doe" {
		t.Error("reconciliation must never mutate the selected person")
	}
}

func TestReconcileSeverityIsMostSevere(t *testing.T) {
	selected := &match.Person{ID: "u3", FirstName: "Jane", LastName: "Doe", DisplayName: "Jane Doe"}
	day := time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)
	fields := intelligence.ExtractedCertificateFields{
		RecipientName:         "John Smith",
		TrainingClassName:     "Emergency Vehicle Operations",
		HoursLogged:           floatPtr(12),
		CourseDate:            timePtr(day),
		IsLikelyKnownTemplate: true,
	}

	out, err := Reconcile(fields, Context{Catalog: testCatalog, SelectedPerson: selected})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if out.Severity != SeverityWarning {
		t.Errorf("Severity = %q, want %q despite successful field applies", out.Severity, SeverityWarning)
	}
	if out.ClassStatus != StatusApplied || out.HoursStatus != StatusApplied || out.DateStatus != StatusApplied {
		t.Error("conflict on one field must not block applying the others")
	}
}
