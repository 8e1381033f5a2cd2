package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jlaasonen/precinct/internal/errors"
	"github.com/jlaasonen/precinct/internal/models"
	"github.com/jlaasonen/precinct/internal/sqlite"
	"github.com/jlaasonen/precinct/internal/workflow"
)

type MemberRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewMemberRepository(dbs *sqlite.Database, logger *slog.Logger) *MemberRepository {
	return &MemberRepository{
		dbs:    dbs,
		logger: logger.With("source", "MemberRepository"),
	}
}

func (r *MemberRepository) Get(ctx context.Context, id int64) (*models.Member, error) {
	var member models.Member
	stmt := `SELECT id, person_id, badge_number, role FROM members WHERE id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &member, stmt, id); err != nil {
		return nil, notFound(err, "read member")
	}
	return &member, nil
}

func (r *MemberRepository) GetByBadge(ctx context.Context, badgeNumber string) (*models.Member, error) {
	var member models.Member
	stmt := `SELECT id, person_id, badge_number, role FROM members WHERE badge_number = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &member, stmt, badgeNumber); err != nil {
		return nil, notFound(err, "read member by badge")
	}
	return &member, nil
}

// Enlist adds a person to the roster with the given rank.
func (r *MemberRepository) Enlist(ctx context.Context, personID int64, badgeNumber string, role workflow.Role) (int64, error) {
	stmt := `INSERT INTO members (person_id, badge_number, role) VALUES (?, ?, ?)`
	res, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, personID, badgeNumber, role)
	if err != nil {
		return 0, errors.Wrap(err, "insert member")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "member id")
	}
	return id, nil
}

// ResolveActor resolves the caller identity for capability checks. The role
// set is supplied once per request here, at the authorization boundary; a
// person without a roster entry acts as a citizen.
func (r *MemberRepository) ResolveActor(ctx context.Context, personID int64) (models.Actor, error) {
	actor := models.Actor{PersonID: personID, MemberID: 0, Role: workflow.RoleCitizen}

	var member models.Member
	stmt := `SELECT id, person_id, badge_number, role FROM members WHERE person_id = ?`
	err := r.dbs.ReadOnly.GetContext(ctx, &member, stmt, personID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return actor, nil
		}
		return models.Actor{}, errors.Wrap(err, "resolve actor")
	}

	actor.MemberID = member.ID
	actor.Role = member.Role
	return actor, nil
}

// RequireRole loads a member and checks it holds the expected rank.
func (r *MemberRepository) RequireRole(ctx context.Context, memberID int64, role workflow.Role) (*models.Member, error) {
	member, err := r.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.Role != role {
		return nil, workflow.Invalid("member", "member does not hold the required rank")
	}
	return member, nil
}
