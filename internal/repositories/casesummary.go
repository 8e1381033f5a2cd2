package repositories

import (
	"context"

	"github.com/jlaasonen/precinct/internal/errors"
	"github.com/jlaasonen/precinct/internal/models"
)

// Summary assembles the read-only case aggregation: case, complainants,
// review audit trail, assigned members, suspects, interrogations, captain
// decisions, and trials. It runs on the read-only pool and never mutates
// state.
func (r *CaseRepository) Summary(ctx context.Context, caseID int64) (*models.CaseSummary, error) {
	c, err := r.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}
	summary := models.CaseSummary{Case: *c}

	stmt := `SELECT id, case_id, person_id, statement, is_primary FROM complainants WHERE case_id = ? ORDER BY id`
	if err = r.dbs.ReadOnly.SelectContext(ctx, &summary.Complainants, stmt, caseID); err != nil {
		return nil, errors.Wrap(err, "read complainants")
	}

	stmt = `SELECT id, case_id, reviewer_id, decision, reason, created_at FROM case_reviews
	WHERE case_id = ? ORDER BY id`
	if err = r.dbs.ReadOnly.SelectContext(ctx, &summary.Reviews, stmt, caseID); err != nil {
		return nil, errors.Wrap(err, "read case reviews")
	}

	stmt = `SELECT m.id, m.person_id, m.badge_number, m.role FROM members m
	JOIN cases c ON m.id IN (c.cadet_id, c.officer_id, c.detective_id, c.sergeant_id)
	WHERE c.id = ?
	ORDER BY m.id`
	if err = r.dbs.ReadOnly.SelectContext(ctx, &summary.AssignedMembers, stmt, caseID); err != nil {
		return nil, errors.Wrap(err, "read assigned members")
	}

	stmt = `SELECT id, case_id, person_id, status, reason, danger_score, reward_amount,
		approved_by_sergeant, arrest_warrant_issued, released, created_at, updated_at
	FROM suspects WHERE case_id = ? ORDER BY id`
	if err = r.dbs.ReadOnly.SelectContext(ctx, &summary.Suspects, stmt, caseID); err != nil {
		return nil, errors.Wrap(err, "read suspects")
	}

	stmt = `SELECT i.id, i.suspect_id, i.detective_id, i.sergeant_id, i.detective_guilt_rating,
		i.sergeant_guilt_rating, i.detective_notes, i.sergeant_notes, i.status, i.created_at, i.updated_at
	FROM interrogations i
	JOIN suspects s ON s.id = i.suspect_id
	WHERE s.case_id = ? ORDER BY i.id`
	if err = r.dbs.ReadOnly.SelectContext(ctx, &summary.Interrogations, stmt, caseID); err != nil {
		return nil, errors.Wrap(err, "read interrogations")
	}

	stmt = `SELECT d.id, d.interrogation_id, d.captain_id, d.decision, d.reasoning,
		d.requires_chief_approval, d.created_at
	FROM captain_decisions d
	JOIN interrogations i ON i.id = d.interrogation_id
	JOIN suspects s ON s.id = i.suspect_id
	WHERE s.case_id = ? ORDER BY d.id`
	if err = r.dbs.ReadOnly.SelectContext(ctx, &summary.Decisions, stmt, caseID); err != nil {
		return nil, errors.Wrap(err, "read captain decisions")
	}

	stmt = `SELECT id, case_id, suspect_id, judge_id, captain_notes, status, verdict_decision,
		verdict_reasoning, punishment_title, punishment_description, created_at, completed_at
	FROM trials WHERE case_id = ? ORDER BY id`
	if err = r.dbs.ReadOnly.SelectContext(ctx, &summary.Trials, stmt, caseID); err != nil {
		return nil, errors.Wrap(err, "read trials")
	}

	return &summary, nil
}
