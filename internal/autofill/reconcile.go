package autofill

import (
	"fmt"
	"math"

	"github.com/emsportal/certintel/internal/intelligence"
	"github.com/emsportal/certintel/internal/match"
)

// ClassFuzzyThreshold is the minimum token-overlap score for an extracted
// class title to be treated as a hit against a catalog entry. Looser than the
// person-matching bars because a wrong class is cheap for the operator to
// correct, while a missed hit forces retyping the whole title.
const ClassFuzzyThreshold = 45

// Reconcile decides what to do with each extracted field given the live form
// context: apply it, suggest it for confirmation, or flag a conflict. It
// refuses with ErrLowConfidenceExtraction when the text does not resemble a
// known certificate layout and carries neither a recipient nor a class name,
// so the caller requires manual entry instead of presenting a mostly-empty
// auto-fill.
func Reconcile(fields intelligence.ExtractedCertificateFields, ctx Context) (*Outcome, error) {
	if !fields.IsLikelyKnownTemplate && fields.RecipientName == "" && fields.TrainingClassName == "" {
		return nil, intelligence.ErrLowConfidenceExtraction
	}

	out := &Outcome{Severity: SeveritySuccess}

	if fields.IsEmpty() {
		out.addMessage(SeverityWarning, "No recognizable fields were found on the certificate; fill the form in manually.")
		return out, nil
	}

	reconcileClass(fields, ctx, out)
	reconcileDate(fields, out)
	reconcileHours(fields, out)
	reconcileCourseID(fields, out)
	reconcileRecipient(fields, ctx, out)

	if fields.LogNumber != "" {
		out.LogNumber = fields.LogNumber
		out.addMessage(SeverityInfo, fmt.Sprintf("Certificate log number: %s.", fields.LogNumber))
	}

	return out, nil
}

// reconcileClass fuzzy-matches the extracted title against the catalog. A hit
// applies the catalog entry's identifier; a miss surfaces the raw title as a
// suggestion the operator can accept or turn into a new class.
func reconcileClass(fields intelligence.ExtractedCertificateFields, ctx Context, out *Outcome) {
	if fields.TrainingClassName == "" {
		return
	}

	bestScore := 0
	var bestEntry *ClassEntry
	for i := range ctx.Catalog {
		score := match.TokenOverlap(fields.TrainingClassName, ctx.Catalog[i].Name)
		if score > bestScore {
			bestScore = score
			bestEntry = &ctx.Catalog[i]
		}
	}

	if bestEntry != nil && bestScore >= ClassFuzzyThreshold {
		out.ClassID = bestEntry.ID
		out.ClassName = bestEntry.Name
		out.ClassStatus = StatusApplied
		out.addMessage(SeveritySuccess, fmt.Sprintf("Matched class %q from the catalog.", bestEntry.Name))
		return
	}

	out.ClassName = fields.TrainingClassName
	out.ClassStatus = StatusSuggested
	out.addMessage(SeverityInfo, fmt.Sprintf("Class %q is not in the catalog; confirm it or create a new class.", fields.TrainingClassName))
}

// reconcileDate applies a parsed date to both start and end fields;
// certificates record single-day completions. Raw unparsed text is only
// suggested.
func reconcileDate(fields intelligence.ExtractedCertificateFields, out *Outcome) {
	if fields.CourseDate != nil {
		day := *fields.CourseDate
		out.StartDate = &day
		out.EndDate = &day
		out.DateStatus = StatusApplied
		return
	}
	if fields.CourseDateText != "" {
		out.DateText = fields.CourseDateText
		out.DateStatus = StatusSuggested
		out.addMessage(SeverityInfo, fmt.Sprintf("Could not parse completion date %q; confirm it manually.", fields.CourseDateText))
	}
}

func reconcileHours(fields intelligence.ExtractedCertificateFields, out *Outcome) {
	if fields.HoursLogged == nil {
		return
	}
	v := *fields.HoursLogged
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return
	}
	rounded := math.Round(v*10) / 10
	out.Hours = &rounded
	out.HoursStatus = StatusApplied
}

func reconcileCourseID(fields intelligence.ExtractedCertificateFields, out *Outcome) {
	if fields.CourseIdentifier == "" {
		return
	}
	out.CourseIdentifier = fields.CourseIdentifier
	out.CourseIDStatus = StatusApplied
	out.addMessage(SeverityInfo, fmt.Sprintf("Course identifier %s found on the certificate.", fields.CourseIdentifier))
}

// reconcileRecipient checks the extracted name against the selected person's
// variant set. A mismatch is a conflict with warning severity; the selected
// person is never overwritten.
func reconcileRecipient(fields intelligence.ExtractedCertificateFields, ctx Context, out *Outcome) {
	if fields.RecipientName == "" {
		return
	}
	out.RecipientName = fields.RecipientName

	if ctx.SelectedPerson == nil {
		out.RecipientStatus = StatusSuggested
		out.addMessage(SeverityInfo, fmt.Sprintf("Certificate names %q; select the matching member.", fields.RecipientName))
		return
	}

	normalized := match.Normalize(fields.RecipientName)
	variants := match.VariantSet(*ctx.SelectedPerson)
	if _, ok := variants[normalized]; ok || normalized == match.Normalize(ctx.SelectedPerson.DisplayName) {
		out.RecipientStatus = StatusApplied
		out.addMessage(SeverityInfo, fmt.Sprintf("Certificate name %q matches the selected member.", fields.RecipientName))
		return
	}

	out.RecipientStatus = StatusConflict
	out.addMessage(SeverityWarning, fmt.Sprintf("Certificate names %q but %s is selected; verify before saving.",
		fields.RecipientName, ctx.SelectedPerson.DisplayName))
}
