package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jlaasonen/precinct/internal/errors"
	"github.com/jlaasonen/precinct/internal/models"
	"github.com/jlaasonen/precinct/internal/random"
	"github.com/jlaasonen/precinct/internal/sqlite"
	"github.com/jlaasonen/precinct/internal/workflow"
)

type CaseRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewCaseRepository(dbs *sqlite.Database, logger *slog.Logger) *CaseRepository {
	return &CaseRepository{
		dbs:    dbs,
		logger: logger.With("source", "CaseRepository"),
	}
}

// SubmitCaseInput carries the formation data of a new case.
type SubmitCaseInput struct {
	Title       string
	Description string
	CrimeLevel  workflow.CrimeLevel
	Formation   workflow.FormationType
	// Statement is the primary complainant statement of a complaint case.
	Statement string
	// Location and OccurredAt describe a crime-scene case.
	Location   string
	OccurredAt *time.Time
}

func (in SubmitCaseInput) validate() error {
	if in.Title == "" {
		return workflow.Invalid("title", "must not be empty")
	}
	if in.Description == "" {
		return workflow.Invalid("description", "must not be empty")
	}
	if !in.CrimeLevel.Valid() {
		return workflow.Invalid("crime_level", "must be between 0 (critical) and 3 (minor)")
	}
	switch in.Formation {
	case workflow.FormationComplaint:
		if in.Statement == "" {
			return workflow.Invalid("statement", "must not be empty")
		}
	case workflow.FormationCrimeScene:
		if in.Location == "" {
			return workflow.Invalid("location", "must not be empty")
		}
		if in.OccurredAt == nil {
			return workflow.Invalid("occurred_at", "must be provided")
		}
	default:
		return workflow.Invalid("formation_type", "must be complaint or crime_scene")
	}
	return nil
}

// Submit creates a case in its initial lifecycle state. A complaint enters
// cadet review with the creator as primary complainant; a crime-scene report
// enters officer review, or opens directly when filed by the chief.
func (r *CaseRepository) Submit(ctx context.Context, actor models.Actor, in SubmitCaseInput) (*models.Case, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.Formation == workflow.FormationCrimeScene && !actor.Role.Has(workflow.CapFileCrimeScene) {
		return nil, workflow.Denied()
	}

	caseNumber, err := random.CaseNumber(time.Now().Year())
	if err != nil {
		return nil, errors.Wrap(err, "generate case number")
	}
	status := workflow.InitialCaseStatus(in.Formation, actor.Role)

	var caseID int64
	err = inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		stmt := `INSERT INTO cases (case_number, title, description, status, crime_level, formation_type,
			location, occurred_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, stmt, caseNumber, in.Title, in.Description, status,
			in.CrimeLevel, in.Formation, in.Location, in.OccurredAt, actor.PersonID)
		if err != nil {
			return errors.Wrap(err, "insert case")
		}
		if caseID, err = res.LastInsertId(); err != nil {
			return errors.Wrap(err, "case id")
		}

		if in.Formation == workflow.FormationComplaint {
			stmt = `INSERT INTO complainants (case_id, person_id, statement, is_primary) VALUES (?, ?, ?, 1)`
			if _, err = tx.ExecContext(ctx, stmt, caseID, actor.PersonID, in.Statement); err != nil {
				return errors.Wrap(err, "insert complainant")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.LogAttrs(ctx, slog.LevelInfo, "case submitted",
		slog.String("case_number", caseNumber), slog.String("status", string(status)))
	return r.Get(ctx, caseID)
}

// JoinComplaint adds a further complainant statement to a case still in its
// intake phase.
func (r *CaseRepository) JoinComplaint(ctx context.Context, actor models.Actor, caseID int64, statement string) error {
	if statement == "" {
		return workflow.Invalid("statement", "must not be empty")
	}
	return inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		c, err := getCase(ctx, tx, caseID)
		if err != nil {
			return err
		}
		switch c.Status {
		case workflow.CaseCadetReview, workflow.CaseOfficerReview, workflow.CaseOpen:
		default:
			return workflow.Conflict()
		}
		stmt := `INSERT INTO complainants (case_id, person_id, statement, is_primary) VALUES (?, ?, ?, 0)`
		if _, err = tx.ExecContext(ctx, stmt, caseID, actor.PersonID, statement); err != nil {
			return errors.Wrap(err, "insert complainant")
		}
		return nil
	})
}

// Resubmit sends an edited draft case back to cadet review. The edited fields
// must already be saved; this only performs the transition.
func (r *CaseRepository) Resubmit(ctx context.Context, actor models.Actor, caseID int64) error {
	return inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		c, err := getCase(ctx, tx, caseID)
		if err != nil {
			return err
		}
		if c.CreatedByID != actor.PersonID {
			return workflow.Denied()
		}
		if c.RejectionCount >= workflow.RejectionThreshold {
			return workflow.Violation("rejection_threshold", "case has been permanently dismissed")
		}
		if c.Status != workflow.CaseDraft {
			return workflow.Conflict()
		}
		return guardedExec(ctx, tx,
			`UPDATE cases SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`,
			workflow.CaseCadetReview, caseID, workflow.CaseDraft)
	})
}

// UpdateDraft saves edits to a rejected case before resubmission. Only the
// creator may edit, and only while the case sits in draft.
func (r *CaseRepository) UpdateDraft(ctx context.Context, actor models.Actor, caseID int64, title, description, statement string) error {
	if title == "" {
		return workflow.Invalid("title", "must not be empty")
	}
	if description == "" {
		return workflow.Invalid("description", "must not be empty")
	}
	return inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		c, err := getCase(ctx, tx, caseID)
		if err != nil {
			return err
		}
		if c.CreatedByID != actor.PersonID {
			return workflow.Denied()
		}
		if c.Status != workflow.CaseDraft {
			return workflow.Conflict()
		}
		err = guardedExec(ctx, tx,
			`UPDATE cases SET title = ?, description = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`,
			title, description, caseID, workflow.CaseDraft)
		if err != nil {
			return err
		}
		if statement != "" {
			stmt := `UPDATE complainants SET statement = ? WHERE case_id = ? AND person_id = ? AND is_primary = 1`
			if _, err = tx.ExecContext(ctx, stmt, statement, caseID, actor.PersonID); err != nil {
				return errors.Wrap(err, "update complainant statement")
			}
		}
		return nil
	})
}

// Review applies one intake-gate decision. Approval advances the phase; a
// rejection with a mandatory reason sends the case back to draft, or
// dismisses it permanently once the rejection threshold is reached. Every
// call appends an immutable audit entry.
func (r *CaseRepository) Review(
	ctx context.Context,
	actor models.Actor,
	caseID int64,
	decision workflow.ReviewDecision,
	rejectionReason string,
) (*models.Case, error) {
	if decision != workflow.ReviewApproved && decision != workflow.ReviewRejected {
		return nil, workflow.Invalid("decision", "must be approved or rejected")
	}
	if decision == workflow.ReviewRejected && rejectionReason == "" {
		return nil, workflow.Invalid("rejection_reason", "must not be empty")
	}

	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		c, err := getCase(ctx, tx, caseID)
		if err != nil {
			return err
		}

		if err = authorizeReview(c.Status, actor.Role); err != nil {
			return err
		}

		next := c.Status
		rejectionCount := c.RejectionCount
		assignColumn := "cadet_id"
		if c.Status == workflow.CaseOfficerReview {
			assignColumn = "officer_id"
		}

		if decision == workflow.ReviewApproved {
			if c.Status == workflow.CaseCadetReview {
				next = workflow.CaseOfficerReview
			} else {
				next = workflow.CaseOpen
			}
		} else {
			// Only complaint-originated reviews count towards the
			// dismissal threshold.
			if c.FormationType == workflow.FormationComplaint {
				rejectionCount++
			}
			next = workflow.CaseDraft
			if rejectionCount >= workflow.RejectionThreshold {
				next = workflow.CaseRejected
			}
		}

		err = guardedExec(ctx, tx,
			`UPDATE cases SET status = ?, rejection_count = ?, `+assignColumn+` = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND status = ?`,
			next, rejectionCount, actor.MemberID, caseID, c.Status)
		if err != nil {
			return err
		}

		stmt := `INSERT INTO case_reviews (case_id, reviewer_id, decision, reason) VALUES (?, ?, ?, ?)`
		if _, err = tx.ExecContext(ctx, stmt, caseID, actor.MemberID, decision, rejectionReason); err != nil {
			return errors.Wrap(err, "insert case review")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, caseID)
}

// authorizeReview maps the reviewer's capabilities onto the case phase. A
// reviewer whose phase has already passed gets a state conflict; a reviewer
// who never reviews this phase gets a permission denial.
func authorizeReview(status workflow.CaseStatus, role workflow.Role) error {
	switch status {
	case workflow.CaseCadetReview:
		if !role.Has(workflow.CapReviewCadetPhase) {
			return workflow.Denied()
		}
	case workflow.CaseOfficerReview:
		if !role.Has(workflow.CapReviewOfficerPhase) {
			if role.Has(workflow.CapReviewCadetPhase) {
				return workflow.Conflict()
			}
			return workflow.Denied()
		}
	default:
		if role.Has(workflow.CapReviewCadetPhase) || role.Has(workflow.CapReviewOfficerPhase) {
			return workflow.Conflict()
		}
		return workflow.Denied()
	}
	return nil
}

func (r *CaseRepository) Get(ctx context.Context, caseID int64) (*models.Case, error) {
	var c models.Case
	if err := r.dbs.ReadOnly.GetContext(ctx, &c, caseQuery+` WHERE id = ?`, caseID); err != nil {
		return nil, notFound(err, "read case")
	}
	return &c, nil
}

const caseQuery = `SELECT id, case_number, title, description, status, crime_level, formation_type,
	location, occurred_at, created_by, cadet_id, officer_id, detective_id, sergeant_id,
	rejection_count, created_at, updated_at
FROM cases`

// getCase reads a case inside the write transaction so that the following
// status guard observes the same snapshot.
func getCase(ctx context.Context, tx *sqlx.Tx, caseID int64) (*models.Case, error) {
	var c models.Case
	if err := tx.GetContext(ctx, &c, caseQuery+` WHERE id = ?`, caseID); err != nil {
		return nil, notFound(err, "read case")
	}
	return &c, nil
}

// advanceCase walks the case through the given milestones, skipping any that
// are not reachable from the current status. Used by downstream pipelines
// whose milestones drive the lifecycle.
func advanceCase(ctx context.Context, tx *sqlx.Tx, caseID int64, milestones ...workflow.CaseStatus) error {
	c, err := getCase(ctx, tx, caseID)
	if err != nil {
		return err
	}
	current := c.Status
	for _, next := range milestones {
		if current.CanTransition(next) {
			current = next
		}
	}
	if current == c.Status {
		return nil
	}
	return guardedExec(ctx, tx,
		`UPDATE cases SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`,
		current, caseID, c.Status)
}
