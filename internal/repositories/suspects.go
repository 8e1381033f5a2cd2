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

type SuspectRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewSuspectRepository(dbs *sqlite.Database, logger *slog.Logger) *SuspectRepository {
	return &SuspectRepository{
		dbs:    dbs,
		logger: logger.With("source", "SuspectRepository"),
	}
}

// Add attaches a person as a suspect of a case in pursuit status. Requires
// detective rank or above; the case must not be closed or rejected. Adding
// the first suspect to an open case moves it under investigation.
func (r *SuspectRepository) Add(ctx context.Context, actor models.Actor, caseID, personID int64, reason string) (*models.Suspect, error) {
	if reason == "" {
		return nil, workflow.Invalid("reason", "must not be empty")
	}
	if !actor.Role.AtLeast(workflow.RoleDetective) {
		return nil, workflow.Denied()
	}

	var suspectID int64
	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		c, err := getCase(ctx, tx, caseID)
		if err != nil {
			return err
		}
		if c.Status == workflow.CaseClosed || c.Status == workflow.CaseRejected {
			return workflow.Conflict()
		}

		stmt := `INSERT INTO suspects (case_id, person_id, status, reason) VALUES (?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, stmt, caseID, personID, workflow.SuspectUnderPursuit, reason)
		if err != nil {
			return errors.Wrap(err, "insert suspect")
		}
		if suspectID, err = res.LastInsertId(); err != nil {
			return errors.Wrap(err, "suspect id")
		}

		return advanceCase(ctx, tx, caseID, workflow.CaseUnderInvestigation)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, suspectID)
}

// ChangeStatus moves a suspect along the pursuit pipeline. Escalating to
// intensive pursuit recomputes the public reward from the crime level and
// danger score; an arrest requires prior sergeant approval.
func (r *SuspectRepository) ChangeStatus(
	ctx context.Context,
	actor models.Actor,
	suspectID int64,
	newStatus workflow.SuspectStatus,
	dangerScore *int,
) (*models.Suspect, error) {
	if !actor.Role.AtLeast(workflow.RoleDetective) {
		return nil, workflow.Denied()
	}
	if dangerScore != nil && (*dangerScore < 0 || *dangerScore > workflow.MaxDangerScore) {
		return nil, workflow.Invalid("danger_score", "must be between 0 and 10")
	}

	err := inTx(ctx, r.dbs.ReadWrite, func(tx *sqlx.Tx) error {
		s, err := getSuspect(ctx, tx, suspectID)
		if err != nil {
			return err
		}
		if !s.Status.CanTransition(newStatus) {
			return workflow.Conflict()
		}
		if newStatus == workflow.SuspectArrested && !s.ApprovedBySergeant {
			return workflow.Violation("arrest_approval", "arrest requires sergeant approval of the suspect list")
		}

		danger := s.DangerScore
		if dangerScore != nil {
			danger = *dangerScore
		}
		reward := int64(0)
		if newStatus == workflow.SuspectIntensivePursuit {
			var level workflow.CrimeLevel
			if err = tx.GetContext(ctx, &level, `SELECT crime_level FROM cases WHERE id = ?`, s.CaseID); err != nil {
				return errors.Wrap(err, "read crime level")
			}
			reward = workflow.RewardAmount(level, danger)
		}

		return guardedExec(ctx, tx,
			`UPDATE suspects SET status = ?, danger_score = ?, reward_amount = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND status = ?`,
			newStatus, danger, reward, suspectID, s.Status)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, suspectID)
}

func (r *SuspectRepository) Get(ctx context.Context, suspectID int64) (*models.Suspect, error) {
	var s models.Suspect
	if err := r.dbs.ReadOnly.GetContext(ctx, &s, suspectQuery+` WHERE id = ?`, suspectID); err != nil {
		return nil, notFound(err, "read suspect")
	}
	return &s, nil
}

const suspectQuery = `SELECT id, case_id, person_id, status, reason, danger_score, reward_amount,
	approved_by_sergeant, arrest_warrant_issued, released, created_at, updated_at
FROM suspects`

func getSuspect(ctx context.Context, tx *sqlx.Tx, suspectID int64) (*models.Suspect, error) {
	var s models.Suspect
	if err := tx.GetContext(ctx, &s, suspectQuery+` WHERE id = ?`, suspectID); err != nil {
		return nil, notFound(err, "read suspect")
	}
	return &s, nil
}

// MostWanted lists intensive-pursuit suspects for the public board, highest
// reward first.
func (r *SuspectRepository) MostWanted(ctx context.Context) ([]models.MostWantedEntry, error) {
	var entries []models.MostWantedEntry
	stmt := `SELECT s.id AS suspect_id, p.full_name, c.case_number, c.crime_level, s.danger_score, s.reward_amount
	FROM suspects s
	JOIN persons p ON p.id = s.person_id
	JOIN cases c ON c.id = s.case_id
	WHERE s.status = ? AND s.released = 0
	ORDER BY s.reward_amount DESC, s.id`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &entries, stmt, workflow.SuspectIntensivePursuit); err != nil {
		return nil, errors.Wrap(err, "read most wanted")
	}
	return entries, nil
}
