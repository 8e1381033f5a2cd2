package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"

	"github.com/jlaasonen/precinct/internal/envstruct"
	"github.com/jlaasonen/precinct/internal/errors"
	"github.com/jlaasonen/precinct/internal/logging"
	"github.com/jlaasonen/precinct/internal/payment"
	"github.com/jlaasonen/precinct/internal/pprofserver"
	"github.com/jlaasonen/precinct/internal/repositories"
	"github.com/jlaasonen/precinct/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager

	persons        *repositories.PersonRepository
	members        *repositories.MemberRepository
	cases          *repositories.CaseRepository
	suspects       *repositories.SuspectRepository
	tips           *repositories.TipRepository
	submissions    *repositories.SubmissionRepository
	interrogations *repositories.InterrogationRepository
	trials         *repositories.TrialRepository
	bail           *repositories.BailRepository
}

type config struct {
	Addr              string        `env:"PRECINCT_ADDR" envDefault:"localhost:4000"`
	SQLiteURL         string        `env:"PRECINCT_SQLITE_URL" envDefault:"./precinct.sqlite"`
	PprofPort         string        `env:"PRECINCT_PPROF_PORT" envDefault:":6060"`
	PaymentGatewayURL string        `env:"PRECINCT_PAYMENT_GATEWAY_URL" envDefault:"https://sandbox.zarinpal.com"`
	SessionLifetime   time.Duration `env:"PRECINCT_SESSION_LIFETIME" envDefault:"12h"`
}

func main() {
	ctx := context.Background()
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})))

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server exited", errors.SlogError(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	// A .env file is a development convenience, not a requirement.
	_ = godotenv.Load()

	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse configuration")
	}

	// pprof listens on localhost only so that it's not open to the world.
	pprofserver.Launch(cfg.PprofPort, logger)

	dbs, err := sqlite.NewDatabase(ctx, cfg.SQLiteURL, logger)
	if err != nil {
		return errors.Wrap(err, "connect database")
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to database", slog.String("url", cfg.SQLiteURL))

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite.DB, 24*time.Hour)
	sessionManager.Lifetime = cfg.SessionLifetime

	gateway := payment.NewRedirectGateway(cfg.PaymentGatewayURL)

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		persons:        repositories.NewPersonRepository(dbs, logger),
		members:        repositories.NewMemberRepository(dbs, logger),
		cases:          repositories.NewCaseRepository(dbs, logger),
		suspects:       repositories.NewSuspectRepository(dbs, logger),
		tips:           repositories.NewTipRepository(dbs, logger),
		submissions:    repositories.NewSubmissionRepository(dbs, logger),
		interrogations: repositories.NewInterrogationRepository(dbs, logger),
		trials:         repositories.NewTrialRepository(dbs, logger),
		bail:           repositories.NewBailRepository(dbs, gateway, logger),
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}
