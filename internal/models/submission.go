package models

import (
	"time"

	"github.com/jlaasonen/precinct/internal/workflow"
)

// SuspectSubmission is a detective-proposed suspect list awaiting sergeant
// review. A rejected submission is superseded by the detective's next one.
type SuspectSubmission struct {
	ID               int64                     `db:"id" json:"id"`
	CaseID           int64                     `db:"case_id" json:"case_id"`
	DetectiveID      int64                     `db:"detective_id" json:"detective_id"`
	Reasoning        string                    `db:"reasoning" json:"reasoning"`
	Status           workflow.SubmissionStatus `db:"status" json:"status"`
	SergeantFeedback string                    `db:"sergeant_feedback" json:"sergeant_feedback"`
	CreatedAt        time.Time                 `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time                 `db:"updated_at" json:"updated_at"`
	SuspectIDs       []int64                   `json:"suspect_ids"`
}
