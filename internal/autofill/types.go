package autofill

import (
	"time"

	"github.com/emsportal/certintel/internal/match"
)

// FieldStatus describes what reconciliation decided to do with one extracted
// field.
type FieldStatus string

const (
	// StatusApplied means the value was written into the form outcome.
	StatusApplied FieldStatus = "applied"
	// StatusSuggested means the value is shown to the operator but not
	// auto-applied.
	StatusSuggested FieldStatus = "suggested"
	// StatusConflict means the extracted value disagrees with context the
	// operator already chose.
	StatusConflict FieldStatus = "conflict"
)

// Severity ranks advisory messages and the overall outcome.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

var severityRank = map[Severity]int{
	SeveritySuccess: 0,
	SeverityInfo:    1,
	SeverityWarning: 2,
	SeverityDanger:  3,
}

// moreSevere returns the higher-ranked of two severities.
func moreSevere(a, b Severity) Severity {
	if severityRank[b] > severityRank[a] {
		return b
	}
	return a
}

// ClassEntry is one row of the training-class catalog the caller passes in.
type ClassEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Context carries the live form state reconciliation compares against: the
// known class catalog and the person the operator already selected, if any.
type Context struct {
	Catalog        []ClassEntry
	SelectedPerson *match.Person
}

// Message is one human-readable advisory line in the outcome.
type Message struct {
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// Outcome is the reconciled auto-fill result: typed values for everything
// applied, per-field statuses, advisory messages, and an overall severity.
// A zero-valued status means the field was absent from the extraction.
type Outcome struct {
	ClassID     string      `json:"classId,omitempty"`
	ClassName   string      `json:"className,omitempty"`
	ClassStatus FieldStatus `json:"classStatus,omitempty"`

	StartDate  *time.Time  `json:"startDate,omitempty"`
	EndDate    *time.Time  `json:"endDate,omitempty"`
	DateText   string      `json:"dateText,omitempty"`
	DateStatus FieldStatus `json:"dateStatus,omitempty"`

	Hours       *float64    `json:"hours,omitempty"`
	HoursStatus FieldStatus `json:"hoursStatus,omitempty"`

	CourseIdentifier string      `json:"courseIdentifier,omitempty"`
	CourseIDStatus   FieldStatus `json:"courseIdStatus,omitempty"`

	LogNumber string `json:"logNumber,omitempty"`

	RecipientName   string      `json:"recipientName,omitempty"`
	RecipientStatus FieldStatus `json:"recipientStatus,omitempty"`

	Messages []Message `json:"messages"`
	Severity Severity  `json:"severity"`
}

func (o *Outcome) addMessage(sev Severity, text string) {
	o.Messages = append(o.Messages, Message{Severity: sev, Text: text})
	o.Severity = moreSevere(o.Severity, sev)
}
