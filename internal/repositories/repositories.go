// Package repositories persists every workflow transition. Each operation is
// a single atomic read-validate-write unit: it reads current status, checks
// the requester capability and precondition, and writes the new status plus
// any audit entry in one transaction on the single-writer connection.
// Preconditions are re-checked with status guards in UPDATE statements so a
// lost race surfaces as a state conflict instead of a double-applied
// transition.
package repositories

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/jlaasonen/precinct/internal/errors"
	"github.com/jlaasonen/precinct/internal/workflow"
)

// inTx runs fn inside a transaction on the read-write connection, rolling
// back on error.
func inTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		// Rollback is a no-op after a successful commit.
		_ = tx.Rollback()
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

// guardedExec executes a status-guarded update and converts "no rows
// affected" into a state conflict. The caller has already confirmed the row
// exists, so zero rows means the precondition went stale.
func guardedExec(ctx context.Context, tx *sqlx.Tx, query string, args ...any) error {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "execute guarded update")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if affected == 0 {
		return workflow.Conflict()
	}
	return nil
}

// notFound translates sql.ErrNoRows into the domain not-found error.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(workflow.ErrNotFound, what)
	}
	return errors.Wrap(err, what)
}
