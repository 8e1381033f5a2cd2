package repositories

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/jlaasonen/precinct/internal/errors"
	"github.com/jlaasonen/precinct/internal/models"
	"github.com/jlaasonen/precinct/internal/sqlite"
	"github.com/jlaasonen/precinct/internal/workflow"
)

type TrialRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewTrialRepository(dbs *sqlite.Database, logger *slog.Logger) *TrialRepository {
	return &TrialRepository{
		dbs:    dbs,
		logger: logger.With("source", "TrialRepository"),
	}
}

// Create opens a trial for a suspect. It is only legal once a guilty captain
// decision exists for the suspect and any required chief approval has been
// granted.
func (r *TrialRepository) Create(
	ctx context.Context,
	actor models.Actor,
	caseID, suspectID, judgeID int64,
	captainNotes string,
) (*models.Trial, error) {
	if !actor.Role.Has(workflow.CapCreateTrial) {
		return nil, workflow.Denied()
	}

	var trialID int64
	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		s, err := getSuspect(ctx, tx, suspectID)
		if err != nil {
			return err
		}
		if s.CaseID != caseID {
			return workflow.Invalid("suspect", "suspect does not belong to this case")
		}

		// The guilty decision stands only when it needs no escalation or the
		// chief has approved it. A chief rejection leaves no approved row, so
		// the trial stays blocked until the captain decides again.
		var eligible int
		stmt := `SELECT COUNT(*) FROM captain_decisions cd
		JOIN interrogations i ON i.id = cd.interrogation_id
		WHERE i.suspect_id = ? AND cd.decision = ?
			AND (cd.requires_chief_approval = 0
				OR EXISTS (SELECT 1 FROM chief_decisions ch
					WHERE ch.captain_decision_id = cd.id AND ch.approved = 1))`
		if err = tx.GetContext(ctx, &eligible, stmt, suspectID, workflow.CaptainGuilty); err != nil {
			return errors.Wrap(err, "check guilty decision")
		}
		if eligible == 0 {
			return workflow.Violation("guilty_decision", "trial requires an approved guilty decision")
		}

		if err = requireMemberRole(ctx, tx, judgeID, workflow.RoleJudge); err != nil {
			return err
		}

		var open int
		stmt = `SELECT COUNT(*) FROM trials WHERE suspect_id = ? AND status != ?`
		if err = tx.GetContext(ctx, &open, stmt, suspectID, workflow.TrialCompleted); err != nil {
			return errors.Wrap(err, "count open trials")
		}
		if open > 0 {
			return workflow.Conflict()
		}

		stmt = `INSERT INTO trials (case_id, suspect_id, judge_id, captain_notes, status) VALUES (?, ?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, stmt, caseID, suspectID, judgeID, captainNotes, workflow.TrialInProgress)
		if err != nil {
			return errors.Wrap(err, "insert trial")
		}
		if trialID, err = res.LastInsertId(); err != nil {
			return errors.Wrap(err, "trial id")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, trialID)
}

// DeliverVerdict completes the trial permanently and closes the case. Only
// the assigned judge may deliver it, and a guilty verdict must carry a
// punishment.
func (r *TrialRepository) DeliverVerdict(
	ctx context.Context,
	actor models.Actor,
	trialID int64,
	decision workflow.TrialDecision,
	reasoning, punishmentTitle, punishmentDescription string,
) (*models.Trial, error) {
	if !actor.Role.Has(workflow.CapDeliverVerdict) {
		return nil, workflow.Denied()
	}
	if err := workflow.ValidateVerdict(decision, reasoning, punishmentTitle, punishmentDescription); err != nil {
		return nil, err
	}

	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		t, err := getTrial(ctx, tx, trialID)
		if err != nil {
			return err
		}
		if t.JudgeID != actor.MemberID {
			return workflow.Denied()
		}
		if t.Status == workflow.TrialCompleted {
			return workflow.Conflict()
		}

		err = guardedExec(ctx, tx,
			`UPDATE trials SET status = ?, verdict_decision = ?, verdict_reasoning = ?,
				punishment_title = ?, punishment_description = ?, completed_at = CURRENT_TIMESTAMP
			WHERE id = ? AND status != ?`,
			workflow.TrialCompleted, decision, reasoning, punishmentTitle, punishmentDescription,
			trialID, workflow.TrialCompleted)
		if err != nil {
			return err
		}

		// An acquitted suspect walks free.
		if decision == workflow.TrialInnocent {
			stmt := `UPDATE suspects SET released = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
			if _, err = tx.ExecContext(ctx, stmt, t.SuspectID); err != nil {
				return errors.Wrap(err, "release suspect")
			}
		}

		return advanceCase(ctx, tx, t.CaseID, workflow.CaseClosed)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, trialID)
}

func (r *TrialRepository) Get(ctx context.Context, trialID int64) (*models.Trial, error) {
	var t models.Trial
	if err := r.dbs.ReadOnly.GetContext(ctx, &t, trialQuery+` WHERE id = ?`, trialID); err != nil {
		return nil, notFound(err, "read trial")
	}
	return &t, nil
}

const trialQuery = `SELECT id, case_id, suspect_id, judge_id, captain_notes, status, verdict_decision,
	verdict_reasoning, punishment_title, punishment_description, created_at, completed_at
FROM trials`

func getTrial(ctx context.Context, tx *sqlx.Tx, trialID int64) (*models.Trial, error) {
	var t models.Trial
	if err := tx.GetContext(ctx, &t, trialQuery+` WHERE id = ?`, trialID); err != nil {
		return nil, notFound(err, "read trial")
	}
	return &t, nil
}
