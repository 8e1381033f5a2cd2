package repositories

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jlaasonen/precinct/internal/errors"
	"github.com/jlaasonen/precinct/internal/models"
	"github.com/jlaasonen/precinct/internal/payment"
	"github.com/jlaasonen/precinct/internal/sqlite"
	"github.com/jlaasonen/precinct/internal/workflow"
)

type BailRepository struct {
	dbs     *sqlite.Database
	gateway payment.Gateway
	logger  *slog.Logger
}

func NewBailRepository(dbs *sqlite.Database, gateway payment.Gateway, logger *slog.Logger) *BailRepository {
	return &BailRepository{
		dbs:     dbs,
		gateway: gateway,
		logger:  logger.With("source", "BailRepository"),
	}
}

// Request opens a bail request for a suspect in custody. Critical and major
// crimes are categorically ineligible, and the amount must meet the minimum.
func (r *BailRepository) Request(ctx context.Context, suspectID, amount int64) (*models.BailPayment, error) {
	var bailID int64
	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		s, err := getSuspect(ctx, tx, suspectID)
		if err != nil {
			return err
		}
		if s.Status != workflow.SuspectArrested || s.Released {
			return workflow.Violation("custody", "bail requires a suspect in custody")
		}

		var level workflow.CrimeLevel
		if err = tx.GetContext(ctx, &level, `SELECT crime_level FROM cases WHERE id = ?`, s.CaseID); err != nil {
			return errors.Wrap(err, "read crime level")
		}
		if !workflow.BailEligible(level) {
			return workflow.Violation("bail_eligibility", "crime level is not eligible for bail")
		}
		if amount < workflow.MinBailAmount {
			return workflow.Violation("bail_minimum", "amount is below the bail minimum")
		}

		var open int
		stmt := `SELECT COUNT(*) FROM bail_payments WHERE suspect_id = ? AND status IN (?, ?)`
		if err = tx.GetContext(ctx, &open, stmt, suspectID, workflow.BailPending, workflow.BailApproved); err != nil {
			return errors.Wrap(err, "count open bail requests")
		}
		if open > 0 {
			return workflow.Conflict()
		}

		stmt = `INSERT INTO bail_payments (suspect_id, amount) VALUES (?, ?)`
		res, err := tx.ExecContext(ctx, stmt, suspectID, amount)
		if err != nil {
			return errors.Wrap(err, "insert bail payment")
		}
		if bailID, err = res.LastInsertId(); err != nil {
			return errors.Wrap(err, "bail id")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, bailID)
}

// Decide is the sergeant's approval or rejection of a pending bail request.
func (r *BailRepository) Decide(ctx context.Context, actor models.Actor, bailID int64, approved bool) (*models.BailPayment, error) {
	if !actor.Role.Has(workflow.CapDecideBail) {
		return nil, workflow.Denied()
	}
	next := workflow.BailApproved
	if !approved {
		next = workflow.BailRejected
	}

	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		if _, err := getBail(ctx, tx, bailID); err != nil {
			return err
		}
		return guardedExec(ctx, tx,
			`UPDATE bail_payments SET status = ?, approved_by = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND status = ?`,
			next, actor.MemberID, bailID, workflow.BailPending)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, bailID)
}

// InitiatePayment hands an approved bail to the external gateway and returns
// the redirect URL. The bail status does not change until the gateway calls
// back.
func (r *BailRepository) InitiatePayment(ctx context.Context, bailID int64) (string, error) {
	var (
		redirectURL string
		reference   = uuid.NewString()
	)
	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		b, err := getBail(ctx, tx, bailID)
		if err != nil {
			return err
		}
		if b.Status != workflow.BailApproved {
			return workflow.Conflict()
		}

		// Reuse the stored reference so that retried initiations stay
		// idempotent towards the gateway.
		if b.PaymentReference != "" {
			reference = b.PaymentReference
		} else {
			stmt := `UPDATE bail_payments SET payment_reference = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND status = ?`
			if err = guardedExec(ctx, tx, stmt, reference, bailID, workflow.BailApproved); err != nil {
				return err
			}
		}

		if redirectURL, err = r.gateway.InitiatePayment(ctx, reference, b.Amount); err != nil {
			return errors.Wrap(err, "initiate gateway payment")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return redirectURL, nil
}

// ConfirmPayment is invoked by the gateway callback. It marks the bail paid,
// which is terminal, and releases the suspect.
func (r *BailRepository) ConfirmPayment(ctx context.Context, bailID int64, paymentReference string) (*models.BailPayment, error) {
	if paymentReference == "" {
		return nil, workflow.Invalid("payment_reference", "must not be empty")
	}

	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		b, err := getBail(ctx, tx, bailID)
		if err != nil {
			return err
		}
		if b.Status != workflow.BailApproved {
			return workflow.Conflict()
		}
		if b.PaymentReference != "" && b.PaymentReference != paymentReference {
			return workflow.Invalid("payment_reference", "reference does not match the initiated payment")
		}

		err = guardedExec(ctx, tx,
			`UPDATE bail_payments SET status = ?, payment_reference = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND status = ?`,
			workflow.BailPaid, paymentReference, bailID, workflow.BailApproved)
		if err != nil {
			return err
		}

		stmt := `UPDATE suspects SET released = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
		if _, err = tx.ExecContext(ctx, stmt, b.SuspectID); err != nil {
			return errors.Wrap(err, "release suspect")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, bailID)
}

func (r *BailRepository) Get(ctx context.Context, bailID int64) (*models.BailPayment, error) {
	var b models.BailPayment
	if err := r.dbs.ReadOnly.GetContext(ctx, &b, bailQuery+` WHERE id = ?`, bailID); err != nil {
		return nil, notFound(err, "read bail payment")
	}
	return &b, nil
}

const bailQuery = `SELECT id, suspect_id, amount, status, approved_by, payment_reference, created_at, updated_at
FROM bail_payments`

func getBail(ctx context.Context, tx *sqlx.Tx, bailID int64) (*models.BailPayment, error) {
	var b models.BailPayment
	if err := tx.GetContext(ctx, &b, bailQuery+` WHERE id = ?`, bailID); err != nil {
		return nil, notFound(err, "read bail payment")
	}
	return &b, nil
}
