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

type SubmissionRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewSubmissionRepository(dbs *sqlite.Database, logger *slog.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		dbs:    dbs,
		logger: logger.With("source", "SubmissionRepository"),
	}
}

// Submit files a detective's suspect list for sergeant review. A case can
// hold at most one pending submission; a rejected one is superseded by the
// next.
func (r *SubmissionRepository) Submit(
	ctx context.Context,
	actor models.Actor,
	caseID int64,
	suspectIDs []int64,
	reasoning string,
) (*models.SuspectSubmission, error) {
	if !actor.Role.Has(workflow.CapSubmitSuspectList) {
		return nil, workflow.Denied()
	}
	if len(suspectIDs) == 0 {
		return nil, workflow.Invalid("suspects", "must name at least one suspect")
	}
	if reasoning == "" {
		return nil, workflow.Invalid("reasoning", "must not be empty")
	}

	var submissionID int64
	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		c, err := getCase(ctx, tx, caseID)
		if err != nil {
			return err
		}
		switch c.Status {
		case workflow.CaseOpen, workflow.CaseUnderInvestigation:
		default:
			return workflow.Conflict()
		}

		var pending int
		stmt := `SELECT COUNT(*) FROM suspect_submissions WHERE case_id = ? AND status = ?`
		if err = tx.GetContext(ctx, &pending, stmt, caseID, workflow.SubmissionPending); err != nil {
			return errors.Wrap(err, "count pending submissions")
		}
		if pending > 0 {
			return workflow.Conflict()
		}

		for _, suspectID := range suspectIDs {
			s, err := getSuspect(ctx, tx, suspectID)
			if err != nil {
				return err
			}
			if s.CaseID != caseID {
				return workflow.Invalid("suspects", "suspect does not belong to this case")
			}
		}

		stmt = `INSERT INTO suspect_submissions (case_id, detective_id, reasoning) VALUES (?, ?, ?)`
		res, err := tx.ExecContext(ctx, stmt, caseID, actor.MemberID, reasoning)
		if err != nil {
			return errors.Wrap(err, "insert submission")
		}
		if submissionID, err = res.LastInsertId(); err != nil {
			return errors.Wrap(err, "submission id")
		}
		for _, suspectID := range suspectIDs {
			stmt = `INSERT INTO submission_suspects (submission_id, suspect_id) VALUES (?, ?)`
			if _, err = tx.ExecContext(ctx, stmt, submissionID, suspectID); err != nil {
				return errors.Wrap(err, "link submission suspect")
			}
		}

		stmt = `UPDATE cases SET detective_id = ? WHERE id = ?`
		if _, err = tx.ExecContext(ctx, stmt, actor.MemberID, caseID); err != nil {
			return errors.Wrap(err, "assign detective")
		}

		return advanceCase(ctx, tx, caseID, workflow.CaseUnderInvestigation)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, submissionID)
}

// Review is the sergeant's decision on a suspect list. Approval marks every
// listed suspect as sergeant-approved with an arrest warrant and advances the
// case to arrest approved; rejection requires feedback and lets the detective
// file a revised list.
func (r *SubmissionRepository) Review(
	ctx context.Context,
	actor models.Actor,
	submissionID int64,
	decision workflow.SubmissionStatus,
	feedback string,
) (*models.SuspectSubmission, error) {
	if !actor.Role.Has(workflow.CapReviewSuspectList) {
		return nil, workflow.Denied()
	}
	if decision != workflow.SubmissionApproved && decision != workflow.SubmissionRejected {
		return nil, workflow.Invalid("decision", "must be approved or rejected")
	}
	if decision == workflow.SubmissionRejected && feedback == "" {
		return nil, workflow.Invalid("feedback", "must not be empty")
	}

	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		sub, err := getSubmission(ctx, tx, submissionID)
		if err != nil {
			return err
		}
		if sub.Status != workflow.SubmissionPending {
			return workflow.Conflict()
		}

		err = guardedExec(ctx, tx,
			`UPDATE suspect_submissions SET status = ?, sergeant_feedback = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND status = ?`,
			decision, feedback, submissionID, workflow.SubmissionPending)
		if err != nil {
			return err
		}

		if decision == workflow.SubmissionRejected {
			return nil
		}

		stmt := `UPDATE suspects SET approved_by_sergeant = 1, arrest_warrant_issued = 1,
			updated_at = CURRENT_TIMESTAMP
		WHERE id IN (SELECT suspect_id FROM submission_suspects WHERE submission_id = ?)`
		if _, err = tx.ExecContext(ctx, stmt, submissionID); err != nil {
			return errors.Wrap(err, "approve listed suspects")
		}

		stmt = `UPDATE cases SET sergeant_id = ? WHERE id = ?`
		if _, err = tx.ExecContext(ctx, stmt, actor.MemberID, sub.CaseID); err != nil {
			return errors.Wrap(err, "assign sergeant")
		}

		return advanceCase(ctx, tx, sub.CaseID,
			workflow.CaseSuspectsIdentified, workflow.CaseArrestApproved)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, submissionID)
}

func (r *SubmissionRepository) Get(ctx context.Context, submissionID int64) (*models.SuspectSubmission, error) {
	var sub models.SuspectSubmission
	if err := r.dbs.ReadOnly.GetContext(ctx, &sub, submissionQuery+` WHERE id = ?`, submissionID); err != nil {
		return nil, notFound(err, "read submission")
	}
	stmt := `SELECT suspect_id FROM submission_suspects WHERE submission_id = ? ORDER BY suspect_id`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &sub.SuspectIDs, stmt, submissionID); err != nil {
		return nil, errors.Wrap(err, "read submission suspects")
	}
	return &sub, nil
}

const submissionQuery = `SELECT id, case_id, detective_id, reasoning, status, sergeant_feedback,
	created_at, updated_at
FROM suspect_submissions`

func getSubmission(ctx context.Context, tx *sqlx.Tx, submissionID int64) (*models.SuspectSubmission, error) {
	var sub models.SuspectSubmission
	if err := tx.GetContext(ctx, &sub, submissionQuery+` WHERE id = ?`, submissionID); err != nil {
		return nil, notFound(err, "read submission")
	}
	return &sub, nil
}
