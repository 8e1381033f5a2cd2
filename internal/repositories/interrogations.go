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

type InterrogationRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewInterrogationRepository(dbs *sqlite.Database, logger *slog.Logger) *InterrogationRepository {
	return &InterrogationRepository{
		dbs:    dbs,
		logger: logger.With("source", "InterrogationRepository"),
	}
}

// Create opens a dual-rater interrogation of an arrested suspect, naming the
// detective and sergeant who will rate independently. Requires sergeant rank
// or above.
func (r *InterrogationRepository) Create(
	ctx context.Context,
	actor models.Actor,
	suspectID, detectiveID, sergeantID int64,
) (*models.Interrogation, error) {
	if !actor.Role.AtLeast(workflow.RoleSergeant) {
		return nil, workflow.Denied()
	}

	var interrogationID int64
	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		s, err := getSuspect(ctx, tx, suspectID)
		if err != nil {
			return err
		}
		if s.Status != workflow.SuspectArrested {
			return workflow.Violation("suspect_arrested", "interrogation requires an arrested suspect")
		}

		if err = requireMemberRole(ctx, tx, detectiveID, workflow.RoleDetective); err != nil {
			return err
		}
		if err = requireMemberRole(ctx, tx, sergeantID, workflow.RoleSergeant); err != nil {
			return err
		}

		stmt := `INSERT INTO interrogations (suspect_id, detective_id, sergeant_id) VALUES (?, ?, ?)`
		res, err := tx.ExecContext(ctx, stmt, suspectID, detectiveID, sergeantID)
		if err != nil {
			return errors.Wrap(err, "insert interrogation")
		}
		if interrogationID, err = res.LastInsertId(); err != nil {
			return errors.Wrap(err, "interrogation id")
		}

		return advanceCase(ctx, tx, s.CaseID, workflow.CaseInterrogation)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, interrogationID)
}

func requireMemberRole(ctx context.Context, tx *sqlx.Tx, memberID int64, role workflow.Role) error {
	var got workflow.Role
	if err := tx.GetContext(ctx, &got, `SELECT role FROM members WHERE id = ?`, memberID); err != nil {
		return notFound(err, "read member role")
	}
	if got != role {
		return workflow.Invalid("member", "member does not hold the required rank")
	}
	return nil
}

// SubmitRating records one rater's guilt score. Each rater writes only their
// own column through a "set where null" update, so concurrent submissions by
// the detective and the sergeant never race, and the pending-to-submitted
// flip happens exactly once when both columns are non-null.
func (r *InterrogationRepository) SubmitRating(
	ctx context.Context,
	actor models.Actor,
	interrogationID int64,
	rating int,
	notes string,
) (*models.Interrogation, error) {
	if !workflow.ValidGuiltRating(rating) {
		return nil, workflow.Invalid("rating", "must be between 1 and 10")
	}

	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		i, err := getInterrogation(ctx, tx, interrogationID)
		if err != nil {
			return err
		}

		var ratingColumn, notesColumn string
		switch actor.MemberID {
		case i.DetectiveID:
			ratingColumn, notesColumn = "detective_guilt_rating", "detective_notes"
		case i.SergeantID:
			ratingColumn, notesColumn = "sergeant_guilt_rating", "sergeant_notes"
		default:
			return workflow.Denied()
		}

		err = guardedExec(ctx, tx,
			`UPDATE interrogations SET `+ratingColumn+` = ?, `+notesColumn+` = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND `+ratingColumn+` IS NULL`,
			rating, notes, interrogationID)
		if err != nil {
			return err
		}

		// Flip pending -> submitted once both ratings exist. The status guard
		// keeps the flip idempotent regardless of arrival order.
		stmt := `UPDATE interrogations SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
			AND detective_guilt_rating IS NOT NULL AND sergeant_guilt_rating IS NOT NULL`
		if _, err = tx.ExecContext(ctx, stmt, workflow.InterrogationSubmitted, interrogationID,
			workflow.InterrogationPending); err != nil {
			return errors.Wrap(err, "flip interrogation status")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, interrogationID)
}

// CaptainDecision rules on a submitted interrogation. Guilty decisions on
// critical and major crimes require chief escalation; otherwise a guilty
// decision moves the case to trial pending.
func (r *InterrogationRepository) CaptainDecision(
	ctx context.Context,
	actor models.Actor,
	interrogationID int64,
	decision workflow.CaptainVerdict,
	reasoning string,
) (*models.CaptainDecision, error) {
	if !actor.Role.Has(workflow.CapDecideGuilt) {
		return nil, workflow.Denied()
	}
	switch decision {
	case workflow.CaptainGuilty, workflow.CaptainNotGuilty, workflow.CaptainNeedsMoreInvestigation:
	default:
		return nil, workflow.Invalid("decision", "must be guilty, not_guilty, or needs_more_investigation")
	}
	if reasoning == "" {
		return nil, workflow.Invalid("reasoning", "must not be empty")
	}

	var decisionID int64
	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		i, err := getInterrogation(ctx, tx, interrogationID)
		if err != nil {
			return err
		}
		if i.Status != workflow.InterrogationSubmitted {
			return workflow.Conflict()
		}

		s, err := getSuspect(ctx, tx, i.SuspectID)
		if err != nil {
			return err
		}
		var level workflow.CrimeLevel
		if err = tx.GetContext(ctx, &level, `SELECT crime_level FROM cases WHERE id = ?`, s.CaseID); err != nil {
			return errors.Wrap(err, "read crime level")
		}
		requiresChief := workflow.RequiresChiefApproval(level, decision)

		stmt := `INSERT INTO captain_decisions (interrogation_id, captain_id, decision, reasoning, requires_chief_approval)
		VALUES (?, ?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, stmt, interrogationID, actor.MemberID, decision, reasoning, requiresChief)
		if err != nil {
			return errors.Wrap(err, "insert captain decision")
		}
		if decisionID, err = res.LastInsertId(); err != nil {
			return errors.Wrap(err, "captain decision id")
		}

		if decision == workflow.CaptainGuilty && !requiresChief {
			return advanceCase(ctx, tx, s.CaseID, workflow.CaseTrialPending)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetCaptainDecision(ctx, decisionID)
}

// ChiefDecision records the chief's ruling on an escalated captain decision.
// Approval unblocks the trial; rejection returns control to the captain.
func (r *InterrogationRepository) ChiefDecision(
	ctx context.Context,
	actor models.Actor,
	captainDecisionID int64,
	approved bool,
	comments string,
) (*models.ChiefDecision, error) {
	if !actor.Role.Has(workflow.CapChiefApproval) {
		return nil, workflow.Denied()
	}

	var chiefDecisionID int64
	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		var cd models.CaptainDecision
		stmt := `SELECT id, interrogation_id, captain_id, decision, reasoning, requires_chief_approval, created_at
		FROM captain_decisions WHERE id = ?`
		if err := tx.GetContext(ctx, &cd, stmt, captainDecisionID); err != nil {
			return notFound(err, "read captain decision")
		}
		if !cd.RequiresChiefApproval {
			return workflow.Violation("chief_escalation", "decision does not require chief approval")
		}

		var existing int
		stmt = `SELECT COUNT(*) FROM chief_decisions WHERE captain_decision_id = ?`
		if err := tx.GetContext(ctx, &existing, stmt, captainDecisionID); err != nil {
			return errors.Wrap(err, "count chief decisions")
		}
		if existing > 0 {
			return workflow.Conflict()
		}

		stmt = `INSERT INTO chief_decisions (captain_decision_id, chief_id, approved, comments) VALUES (?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, stmt, captainDecisionID, actor.MemberID, approved, comments)
		if err != nil {
			return errors.Wrap(err, "insert chief decision")
		}
		if chiefDecisionID, err = res.LastInsertId(); err != nil {
			return errors.Wrap(err, "chief decision id")
		}

		if !approved {
			return nil
		}

		i, err := getInterrogation(ctx, tx, cd.InterrogationID)
		if err != nil {
			return err
		}
		s, err := getSuspect(ctx, tx, i.SuspectID)
		if err != nil {
			return err
		}
		return advanceCase(ctx, tx, s.CaseID, workflow.CaseTrialPending)
	})
	if err != nil {
		return nil, err
	}

	var decision models.ChiefDecision
	stmt := `SELECT id, captain_decision_id, chief_id, approved, comments, created_at
	FROM chief_decisions WHERE id = ?`
	if err = r.dbs.ReadOnly.GetContext(ctx, &decision, stmt, chiefDecisionID); err != nil {
		return nil, notFound(err, "read chief decision")
	}
	return &decision, nil
}

func (r *InterrogationRepository) Get(ctx context.Context, interrogationID int64) (*models.Interrogation, error) {
	var i models.Interrogation
	if err := r.dbs.ReadOnly.GetContext(ctx, &i, interrogationQuery+` WHERE id = ?`, interrogationID); err != nil {
		return nil, notFound(err, "read interrogation")
	}
	return &i, nil
}

func (r *InterrogationRepository) GetCaptainDecision(ctx context.Context, decisionID int64) (*models.CaptainDecision, error) {
	var decision models.CaptainDecision
	stmt := `SELECT id, interrogation_id, captain_id, decision, reasoning, requires_chief_approval, created_at
	FROM captain_decisions WHERE id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &decision, stmt, decisionID); err != nil {
		return nil, notFound(err, "read captain decision")
	}
	return &decision, nil
}

const interrogationQuery = `SELECT id, suspect_id, detective_id, sergeant_id, detective_guilt_rating,
	sergeant_guilt_rating, detective_notes, sergeant_notes, status, created_at, updated_at
FROM interrogations`

func getInterrogation(ctx context.Context, tx *sqlx.Tx, interrogationID int64) (*models.Interrogation, error) {
	var i models.Interrogation
	if err := tx.GetContext(ctx, &i, interrogationQuery+` WHERE id = ?`, interrogationID); err != nil {
		return nil, notFound(err, "read interrogation")
	}
	return &i, nil
}
