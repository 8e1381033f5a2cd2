package models

// CaseSummary is the read-only aggregation of everything known about a case.
// It is a typed projection assembled by a query, never a side effect of
// formatting.
type CaseSummary struct {
	Case            Case              `json:"case"`
	Complainants    []Complainant     `json:"complainants"`
	Reviews         []CaseReview      `json:"reviews"`
	AssignedMembers []Member          `json:"assigned_members"`
	Suspects        []Suspect         `json:"suspects"`
	Interrogations  []Interrogation   `json:"interrogations"`
	Decisions       []CaptainDecision `json:"captain_decisions"`
	Trials          []Trial           `json:"trials"`
}
