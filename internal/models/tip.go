package models

import (
	"time"

	"github.com/jlaasonen/precinct/internal/workflow"
)

// TipOff is a citizen tip about a suspect. It passes a sequential
// officer-then-detective verification before a reward is issued.
type TipOff struct {
	ID                  int64              `db:"id" json:"id"`
	SuspectID           *int64             `db:"suspect_id" json:"suspect_id"`
	SubmitterNationalID string             `db:"submitter_national_id" json:"submitter_national_id"`
	Information         string             `db:"information" json:"information"`
	Status              workflow.TipStatus `db:"status" json:"status"`
	OfficerReviewed     bool               `db:"officer_reviewed" json:"officer_reviewed"`
	DetectiveReviewed   bool               `db:"detective_reviewed" json:"detective_reviewed"`
	RedemptionCode      *string            `db:"redemption_code" json:"redemption_code"`
	RewardAmount        int64              `db:"reward_amount" json:"reward_amount"`
	CreatedAt           time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `db:"updated_at" json:"updated_at"`
}

// RewardCheck is the read-only result of a redemption-code lookup.
type RewardCheck struct {
	Valid        bool  `json:"valid"`
	RewardAmount int64 `json:"reward_amount"`
}
