package models

import (
	"time"

	"github.com/jlaasonen/precinct/internal/workflow"
)

// Suspect belongs to exactly one case. Escalating to intensive pursuit makes
// the suspect publicly listed with a computed reward.
type Suspect struct {
	ID                  int64                  `db:"id" json:"id"`
	CaseID              int64                  `db:"case_id" json:"case_id"`
	PersonID            int64                  `db:"person_id" json:"person_id"`
	Status              workflow.SuspectStatus `db:"status" json:"status"`
	Reason              string                 `db:"reason" json:"reason"`
	DangerScore         int                    `db:"danger_score" json:"danger_score"`
	RewardAmount        int64                  `db:"reward_amount" json:"reward_amount"`
	ApprovedBySergeant  bool                   `db:"approved_by_sergeant" json:"approved_by_sergeant"`
	ArrestWarrantIssued bool                   `db:"arrest_warrant_issued" json:"arrest_warrant_issued"`
	Released            bool                   `db:"released" json:"released"`
	CreatedAt           time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time              `db:"updated_at" json:"updated_at"`
}

// MostWantedEntry is the public projection of an intensive-pursuit suspect.
type MostWantedEntry struct {
	SuspectID    int64               `db:"suspect_id" json:"suspect_id"`
	FullName     string              `db:"full_name" json:"full_name"`
	CaseNumber   string              `db:"case_number" json:"case_number"`
	CrimeLevel   workflow.CrimeLevel `db:"crime_level" json:"crime_level"`
	DangerScore  int                 `db:"danger_score" json:"danger_score"`
	RewardAmount int64               `db:"reward_amount" json:"reward_amount"`
}
