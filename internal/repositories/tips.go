package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/jlaasonen/precinct/internal/errors"
	"github.com/jlaasonen/precinct/internal/models"
	"github.com/jlaasonen/precinct/internal/random"
	"github.com/jlaasonen/precinct/internal/sqlite"
	"github.com/jlaasonen/precinct/internal/workflow"
)

type TipRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewTipRepository(dbs *sqlite.Database, logger *slog.Logger) *TipRepository {
	return &TipRepository{
		dbs:    dbs,
		logger: logger.With("source", "TipRepository"),
	}
}

// Submit records a citizen tip, optionally pointed at a known suspect.
func (r *TipRepository) Submit(ctx context.Context, submitterNationalID, information string, suspectID *int64) (*models.TipOff, error) {
	if submitterNationalID == "" {
		return nil, workflow.Invalid("national_id", "must not be empty")
	}
	if information == "" {
		return nil, workflow.Invalid("information", "must not be empty")
	}

	var tipID int64
	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		if suspectID != nil {
			if _, err := getSuspect(ctx, tx, *suspectID); err != nil {
				return err
			}
		}
		stmt := `INSERT INTO tip_offs (suspect_id, submitter_national_id, information) VALUES (?, ?, ?)`
		res, err := tx.ExecContext(ctx, stmt, suspectID, submitterNationalID, information)
		if err != nil {
			return errors.Wrap(err, "insert tip")
		}
		if tipID, err = res.LastInsertId(); err != nil {
			return errors.Wrap(err, "tip id")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, tipID)
}

// OfficerReview is the first verification step. Only a pending tip can be
// reviewed here.
func (r *TipRepository) OfficerReview(ctx context.Context, actor models.Actor, tipID int64, approved bool) (*models.TipOff, error) {
	if !actor.Role.Has(workflow.CapReviewTipOfficer) {
		return nil, workflow.Denied()
	}
	next := workflow.TipOfficerApproved
	if !approved {
		next = workflow.TipRejected
	}

	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		if _, err := getTip(ctx, tx, tipID); err != nil {
			return err
		}
		return guardedExec(ctx, tx,
			`UPDATE tip_offs SET status = ?, officer_reviewed = 1, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND status = ?`,
			next, tipID, workflow.TipPending)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, tipID)
}

// DetectiveReview is the second verification step, only legal after officer
// approval. On approval it issues a unique redemption code and snapshots the
// suspect's current reward amount.
func (r *TipRepository) DetectiveReview(ctx context.Context, actor models.Actor, tipID int64, approved bool) (*models.TipOff, error) {
	if !actor.Role.Has(workflow.CapReviewTipDetective) {
		return nil, workflow.Denied()
	}

	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		tip, err := getTip(ctx, tx, tipID)
		if err != nil {
			return err
		}

		if !approved {
			return guardedExec(ctx, tx,
				`UPDATE tip_offs SET status = ?, detective_reviewed = 1, updated_at = CURRENT_TIMESTAMP
				WHERE id = ? AND status = ?`,
				workflow.TipRejected, tipID, workflow.TipOfficerApproved)
		}

		code, err := random.RedemptionCode()
		if err != nil {
			return errors.Wrap(err, "generate redemption code")
		}
		var reward int64
		if tip.SuspectID != nil {
			stmt := `SELECT reward_amount FROM suspects WHERE id = ?`
			if err = tx.GetContext(ctx, &reward, stmt, *tip.SuspectID); err != nil {
				return errors.Wrap(err, "snapshot suspect reward")
			}
		}
		return guardedExec(ctx, tx,
			`UPDATE tip_offs SET status = ?, detective_reviewed = 1, redemption_code = ?, reward_amount = ?,
				updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND status = ?`,
			workflow.TipApproved, code, reward, tipID, workflow.TipOfficerApproved)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, tipID)
}

// VerifyReward is a read-only redemption-code lookup. It never mutates state
// and is safe to call repeatedly.
func (r *TipRepository) VerifyReward(ctx context.Context, code, nationalID string) (models.RewardCheck, error) {
	var reward int64
	stmt := `SELECT reward_amount FROM tip_offs
	WHERE redemption_code = ? AND submitter_national_id = ? AND status = ?`
	err := r.dbs.ReadOnly.GetContext(ctx, &reward, stmt, code, nationalID, workflow.TipApproved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RewardCheck{Valid: false, RewardAmount: 0}, nil
		}
		return models.RewardCheck{}, errors.Wrap(err, "verify reward")
	}
	return models.RewardCheck{Valid: true, RewardAmount: reward}, nil
}

func (r *TipRepository) Get(ctx context.Context, tipID int64) (*models.TipOff, error) {
	var tip models.TipOff
	if err := r.dbs.ReadOnly.GetContext(ctx, &tip, tipQuery+` WHERE id = ?`, tipID); err != nil {
		return nil, notFound(err, "read tip")
	}
	return &tip, nil
}

const tipQuery = `SELECT id, suspect_id, submitter_national_id, information, status, officer_reviewed,
	detective_reviewed, redemption_code, reward_amount, created_at, updated_at
FROM tip_offs`

func getTip(ctx context.Context, tx *sqlx.Tx, tipID int64) (*models.TipOff, error) {
	var tip models.TipOff
	if err := tx.GetContext(ctx, &tip, tipQuery+` WHERE id = ?`, tipID); err != nil {
		return nil, notFound(err, "read tip")
	}
	return &tip, nil
}
