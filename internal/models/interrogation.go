package models

import (
	"time"

	"github.com/jlaasonen/precinct/internal/workflow"
)

// Interrogation is a dual-rater guilt scoring of an arrested suspect. Each
// rater writes only their own rating column, so concurrent submissions never
// race; the status flips to submitted exactly once when both are set.
type Interrogation struct {
	ID                   int64                        `db:"id" json:"id"`
	SuspectID            int64                        `db:"suspect_id" json:"suspect_id"`
	DetectiveID          int64                        `db:"detective_id" json:"detective_id"`
	SergeantID           int64                        `db:"sergeant_id" json:"sergeant_id"`
	DetectiveGuiltRating *int                         `db:"detective_guilt_rating" json:"detective_guilt_rating"`
	SergeantGuiltRating  *int                         `db:"sergeant_guilt_rating" json:"sergeant_guilt_rating"`
	DetectiveNotes       string                       `db:"detective_notes" json:"detective_notes"`
	SergeantNotes        string                       `db:"sergeant_notes" json:"sergeant_notes"`
	Status               workflow.InterrogationStatus `db:"status" json:"status"`
	CreatedAt            time.Time                    `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time                    `db:"updated_at" json:"updated_at"`
}

// AverageRating is the arithmetic mean of the two guilt ratings, computed on
// read. It returns false until both ratings are submitted.
func (i *Interrogation) AverageRating() (float64, bool) {
	if i.DetectiveGuiltRating == nil || i.SergeantGuiltRating == nil {
		return 0, false
	}
	return workflow.AverageRating(*i.DetectiveGuiltRating, *i.SergeantGuiltRating), true
}

// CaptainDecision is the captain's ruling on a submitted interrogation.
type CaptainDecision struct {
	ID                    int64                   `db:"id" json:"id"`
	InterrogationID       int64                   `db:"interrogation_id" json:"interrogation_id"`
	CaptainID             int64                   `db:"captain_id" json:"captain_id"`
	Decision              workflow.CaptainVerdict `db:"decision" json:"decision"`
	Reasoning             string                  `db:"reasoning" json:"reasoning"`
	RequiresChiefApproval bool                    `db:"requires_chief_approval" json:"requires_chief_approval"`
	CreatedAt             time.Time               `db:"created_at" json:"created_at"`
}

// ChiefDecision records the chief's escalation ruling on a captain decision.
type ChiefDecision struct {
	ID                int64     `db:"id" json:"id"`
	CaptainDecisionID int64     `db:"captain_decision_id" json:"captain_decision_id"`
	ChiefID           int64     `db:"chief_id" json:"chief_id"`
	Approved          bool      `db:"approved" json:"approved"`
	Comments          string    `db:"comments" json:"comments"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}
