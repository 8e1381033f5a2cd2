package models

import (
	"time"

	"github.com/jlaasonen/precinct/internal/workflow"
)

// Case is a criminal case owned exclusively by the workflow engine. Its
// status and rejection count are only mutated through intake-gate and
// lifecycle operations.
type Case struct {
	ID             int64                  `db:"id" json:"id"`
	CaseNumber     string                 `db:"case_number" json:"case_number"`
	Title          string                 `db:"title" json:"title"`
	Description    string                 `db:"description" json:"description"`
	Status         workflow.CaseStatus    `db:"status" json:"status"`
	CrimeLevel     workflow.CrimeLevel    `db:"crime_level" json:"crime_level"`
	FormationType  workflow.FormationType `db:"formation_type" json:"formation_type"`
	Location       string                 `db:"location" json:"location"`
	OccurredAt     *time.Time             `db:"occurred_at" json:"occurred_at"`
	CreatedByID    int64                  `db:"created_by" json:"created_by"`
	CadetID        *int64                 `db:"cadet_id" json:"cadet_id"`
	OfficerID      *int64                 `db:"officer_id" json:"officer_id"`
	DetectiveID    *int64                 `db:"detective_id" json:"detective_id"`
	SergeantID     *int64                 `db:"sergeant_id" json:"sergeant_id"`
	RejectionCount int                    `db:"rejection_count" json:"rejection_count"`
	CreatedAt      time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time              `db:"updated_at" json:"updated_at"`
}

// Complainant links a person's statement to a case. The primary complainant
// filed the case.
type Complainant struct {
	ID        int64  `db:"id" json:"id"`
	CaseID    int64  `db:"case_id" json:"case_id"`
	PersonID  int64  `db:"person_id" json:"person_id"`
	Statement string `db:"statement" json:"statement"`
	IsPrimary bool   `db:"is_primary" json:"is_primary"`
}

// CaseReview is one entry of the append-only intake audit trail. Entries are
// never mutated.
type CaseReview struct {
	ID         int64                   `db:"id" json:"id"`
	CaseID     int64                   `db:"case_id" json:"case_id"`
	ReviewerID int64                   `db:"reviewer_id" json:"reviewer_id"`
	Decision   workflow.ReviewDecision `db:"decision" json:"decision"`
	Reason     string                  `db:"reason" json:"reason"`
	CreatedAt  time.Time               `db:"created_at" json:"created_at"`
}
