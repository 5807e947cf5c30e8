package intelligence

import (
	"strings"
	"testing"
	"time"
)

const mfriCertificate = `MARYLAND FIRE AND RESCUE INSTITUTE
CERTIFICATE OF TRAINING

AWARDED TO
Jane A. Doe
HAS PASSED ALL COURSE WORK IN
Emergency Vehicle Operations
(12.0 Hours)
LOG NUMBER EVOC-24-0091
Completion Date: June 14, 2025
EMS-202-S025-2025`

func TestParseFieldsKnownTemplate(t *testing.T) {
	fields := ParseFields(mfriCertificate)

	if fields.RecipientName != "Jane A. Doe" {
		t.Errorf("RecipientName = %q, want %q", fields.RecipientName, "Jane A. Doe")
	}
	if fields.TrainingClassName != "Emergency Vehicle Operations" {
		t.Errorf("TrainingClassName = %q, want %q", fields.TrainingClassName, "Emergency Vehicle Operations")
	}
	if fields.HoursLogged == nil || *fields.HoursLogged != 12.0 {
		t.Errorf("HoursLogged = %v, want 12.0", fields.HoursLogged)
	}
	if fields.LogNumber != "EVOC-24-0091" {
		t.Errorf("LogNumber = %q, want %q", fields.LogNumber, "EVOC-24-0091")
	}
	if fields.CourseIdentifier != "EMS-202-S025-2025" {
		t.Errorf("CourseIdentifier = %q, want %q", fields.CourseIdentifier, "EMS-202-S025-2025")
	}
	if fields.CourseDate == nil {
		t.Fatalf("CourseDate = nil, raw text %q", fields.CourseDateText)
	}
	want := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)
	if !fields.CourseDate.Equal(want) {
		t.Errorf("CourseDate = %v, want %v", fields.CourseDate, want)
	}
	if !fields.IsLikelyKnownTemplate {
		t.Error("IsLikelyKnownTemplate = false, want true")
	}
}

func TestParseFieldsDeterministic(t *testing.T) {
	first := ParseFields(mfriCertificate)
	second := ParseFields(mfriCertificate)
	if first.RecipientName != second.RecipientName ||
		first.TrainingClassName != second.TrainingClassName ||
		first.LogNumber != second.LogNumber {
		t.Error("ParseFields is not deterministic for identical input")
	}
}

func TestParseFieldsRecipientAnchors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"awarded to", "AWARDED TO\nJohn Smith\nHAS PASSED", "John Smith"},
		{"presented to", "This certificate is presented to\nMary Beth Carter\nin recognition of", "Mary Beth Carter"},
		{"certifies that", "THIS CERTIFIES THAT\nLuis Ortega\nhas successfully completed", "Luis Ortega"},
		{"participant label", "Participant: Dana Whitfield\nCourse: CPR Refresher", "Dana Whitfield"},
		{"same line", "Awarded to John Smith", "John Smith"},
		{"wrapped name", "AWARDED TO\nJane\nDoe\nHAS PASSED", "Jane Doe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ParseFields(tt.text)
			if fields.RecipientName != tt.want {
				t.Errorf("RecipientName = %q, want %q", fields.RecipientName, tt.want)
			}
		})
	}
}

func TestParseFieldsRecipientRejectsSingleWord(t *testing.T) {
	fields := ParseFields("AWARDED TO\nCher\n(4.0 Hours)")
	if fields.RecipientName != "" {
		t.Errorf("single-word candidate accepted: %q", fields.RecipientName)
	}
}

func TestParseFieldsClassNameStops(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"hour paren stop",
			"COURSE WORK IN\nHazardous Materials Awareness\n(6.5 Hours)",
			"Hazardous Materials Awareness",
		},
		{
			"log number stop",
			"COURSE WORK IN\nFirefighter I\nLOG NUMBER FF1-25-1000",
			"Firefighter I",
		},
		{
			"inline hours",
			"has successfully completed Vehicle Rescue Technician (16 hrs)",
			"Vehicle Rescue Technician",
		},
		{
			"wrapped title",
			"COMPLETED ALL COURSE WORK IN\nEmergency Medical\nTechnician Refresher\n(24.0 Hours)",
			"Emergency Medical Technician Refresher",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ParseFields(tt.text)
			if fields.TrainingClassName != tt.want {
				t.Errorf("TrainingClassName = %q, want %q", fields.TrainingClassName, tt.want)
			}
		})
	}
}

func TestParseFieldsHours(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"labeled total wins", "3 hours of prep. Total Hours: 24.5", 24.5},
		{"paren", "(12.0 Hours)", 12.0},
		{"bare hrs", "completed 6 hrs of instruction", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ParseFields(tt.text)
			if fields.HoursLogged == nil {
				t.Fatal("HoursLogged = nil")
			}
			if *fields.HoursLogged != tt.want {
				t.Errorf("HoursLogged = %v, want %v", *fields.HoursLogged, tt.want)
			}
			if *fields.HoursLogged < 0 {
				t.Error("HoursLogged negative")
			}
		})
	}
}

func TestParseFieldsHourParenCasing(t *testing.T) {
	// Certificates print the parenthesized hour figure in varying case;
	// it must stop the title and yield the hour count regardless.
	for _, paren := range []string{"(8.0 Hours)", "(8.0 hours)", "(8.0 HOURS)", "(8 Hrs)"} {
		t.Run(paren, func(t *testing.T) {
			fields := ParseFields("COURSE WORK IN\nIncident Command\n" + paren)
			if fields.TrainingClassName != "Incident Command" {
				t.Errorf("TrainingClassName = %q, want %q", fields.TrainingClassName, "Incident Command")
			}
			if fields.HoursLogged == nil || *fields.HoursLogged != 8 {
				t.Errorf("HoursLogged = %v, want 8", fields.HoursLogged)
			}
		})
	}
}

func TestParseFieldsHoursAbsentWhenNoMatch(t *testing.T) {
	fields := ParseFields("no hour figure anywhere in this text")
	if fields.HoursLogged != nil {
		t.Errorf("HoursLogged = %v, want nil", *fields.HoursLogged)
	}
}

func TestParseFieldsCourseIdentifier(t *testing.T) {
	structured := ParseFields("course EMS-202-S025-2025 spring session")
	if structured.CourseIdentifier != "EMS-202-S025-2025" {
		t.Errorf("CourseIdentifier = %q", structured.CourseIdentifier)
	}

	labeled := ParseFields("Course Number: FIRE-550 advanced pump operations")
	if labeled.CourseIdentifier != "FIRE-550" {
		t.Errorf("CourseIdentifier = %q, want FIRE-550", labeled.CourseIdentifier)
	}

	// A log number must not be mistaken for a structured course id.
	logOnly := ParseFields("LOG NUMBER EVOC-24-0091")
	if logOnly.CourseIdentifier != "" {
		t.Errorf("CourseIdentifier = %q, want empty", logOnly.CourseIdentifier)
	}
	if logOnly.LogNumber != "EVOC-24-0091" {
		t.Errorf("LogNumber = %q", logOnly.LogNumber)
	}
}

func TestParseFieldsDates(t *testing.T) {
	parsed := ParseFields("Completion Date: 06/14/2025")
	if parsed.CourseDate == nil {
		t.Fatalf("CourseDate = nil, raw %q", parsed.CourseDateText)
	}
	if parsed.CourseDateText != "" {
		t.Errorf("CourseDateText = %q, want empty when parse succeeded", parsed.CourseDateText)
	}

	bare := ParseFields("issued on January 3, 2024 by the institute")
	if bare.CourseDate == nil {
		t.Fatalf("bare month-name date not parsed, raw %q", bare.CourseDateText)
	}
	if bare.CourseDate.Month() != time.January || bare.CourseDate.Day() != 3 {
		t.Errorf("CourseDate = %v", bare.CourseDate)
	}
}

func TestParseFieldsDateFallsBackToRawText(t *testing.T) {
	fields := ParseFields("Completion Date: 99/99/9999")
	if fields.CourseDate != nil {
		t.Errorf("CourseDate = %v, want nil", fields.CourseDate)
	}
	if fields.CourseDateText == "" {
		t.Error("CourseDateText empty, want raw matched text")
	}
}

func TestParseFieldsUnrelatedText(t *testing.T) {
	fields := ParseFields("The quarterly budget meeting moved to conference room B.\nBring your own agenda printouts.")
	if !fields.IsEmpty() {
		t.Errorf("expected empty fields, got %+v", fields)
	}
	if fields.IsLikelyKnownTemplate {
		t.Error("IsLikelyKnownTemplate = true for unrelated text")
	}
}

func TestParseFieldsEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   \n\t  "} {
		fields := ParseFields(text)
		if !fields.IsEmpty() {
			t.Errorf("ParseFields(%q) returned non-empty fields", text)
		}
	}
}

func TestParseFieldsToleratesDuplicatedContent(t *testing.T) {
	// The acquirer may concatenate a sparse PDF text layer with OCR output
	// of the same page; duplicated content must not break parsing.
	doubled := mfriCertificate + "\n" + mfriCertificate
	fields := ParseFields(doubled)
	if fields.RecipientName != "Jane A. Doe" {
		t.Errorf("RecipientName = %q", fields.RecipientName)
	}
	if fields.TrainingClassName != "Emergency Vehicle Operations" {
		t.Errorf("TrainingClassName = %q", fields.TrainingClassName)
	}
}

func TestTemplateMarkerCounting(t *testing.T) {
	compact := strings.Join(strings.Fields(mfriCertificate), " ")
	if got := countTemplateMarkers(compact); got < 4 {
		t.Errorf("countTemplateMarkers = %d, want >= 4", got)
	}
	if got := countTemplateMarkers("completely unrelated content"); got != 0 {
		t.Errorf("countTemplateMarkers = %d, want 0", got)
	}
}
