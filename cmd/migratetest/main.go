package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/jlaasonen/precinct/internal/errors"
	"github.com/jlaasonen/precinct/internal/sqlite"
	"github.com/jlaasonen/precinct/internal/testhelpers"
)

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	var (
		err       error
		start     = time.Now()
		ctx       context.Context
		sqliteURL string
		ok        bool
		cancel    context.CancelFunc
	)
	ctx = context.Background()
	ctx, cancel = context.WithTimeout(ctx, 5*time.Second) //nolint:mnd // 5 seconds

	if sqliteURL, ok = os.LookupEnv("PRECINCT_SQLITE_URL"); !ok {
		logger.LogAttrs(ctx, slog.LevelError, "PRECINCT_SQLITE_URL not set")
		os.Exit(1)
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, sqliteURL, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating database",
			slog.String("url", sqliteURL), errors.SlogError(err))
		os.Exit(1)
	}

	// Fetch the number of registered persons as a simple migration check.
	row := db.ReadWrite.QueryRowContext(ctx, `SELECT COUNT(*) FROM persons`)
	var count int
	if err = row.Scan(&count); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error fetching person count", errors.SlogError(err))
		os.Exit(1)
	}
	if count == 0 {
		logger.LogAttrs(ctx, slog.LevelError, "no persons found, something is likely wrong")
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "person count", slog.Int("count", count))

	logger.LogAttrs(ctx, slog.LevelInfo, "Migration test successful 🙌", slog.Duration("duration", time.Since(start)))
	cancel()
	os.Exit(0)
}
