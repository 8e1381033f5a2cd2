package models

import (
	"time"

	"github.com/jlaasonen/precinct/internal/workflow"
)

// Trial is a captain-initiated court proceeding. A delivered verdict
// completes the trial permanently.
type Trial struct {
	ID                    int64                  `db:"id" json:"id"`
	CaseID                int64                  `db:"case_id" json:"case_id"`
	SuspectID             int64                  `db:"suspect_id" json:"suspect_id"`
	JudgeID               int64                  `db:"judge_id" json:"judge_id"`
	CaptainNotes          string                 `db:"captain_notes" json:"captain_notes"`
	Status                workflow.TrialStatus   `db:"status" json:"status"`
	VerdictDecision       *workflow.TrialDecision `db:"verdict_decision" json:"verdict_decision"`
	VerdictReasoning      string                 `db:"verdict_reasoning" json:"verdict_reasoning"`
	PunishmentTitle       string                 `db:"punishment_title" json:"punishment_title"`
	PunishmentDescription string                 `db:"punishment_description" json:"punishment_description"`
	CreatedAt             time.Time              `db:"created_at" json:"created_at"`
	CompletedAt           *time.Time             `db:"completed_at" json:"completed_at"`
}
