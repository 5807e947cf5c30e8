package match

// Person is a user directory record as the portal hands it to the matcher.
// Only name parts participate in matching; ID is carried through untouched
// so callers can map results back to their own records.
type Person struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName,omitempty"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName,omitempty"`
}

// Candidate pairs a directory record with the score a query name earned
// against it and the variant that produced the best hit.
type Candidate struct {
	Person      Person `json:"person"`
	Score       int    `json:"score"`
	BestVariant string `json:"bestVariant,omitempty"`
}
