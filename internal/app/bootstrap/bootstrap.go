package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	candidateservice "civica/contexts/election-operations/candidate-service"
	candidatepostgres "civica/contexts/election-operations/candidate-service/adapters/postgres"
	electionservice "civica/contexts/election-operations/election-service"
	electionpostgres "civica/contexts/election-operations/election-service/adapters/postgres"
	electionworkers "civica/contexts/election-operations/election-service/application/workers"
	adminservice "civica/contexts/identity-access/admin-service"
	adminpostgres "civica/contexts/identity-access/admin-service/adapters/postgres"
	voterservice "civica/contexts/identity-access/voter-service"
	voterpostgres "civica/contexts/identity-access/voter-service/adapters/postgres"
	dashboardservice "civica/contexts/internal-ops/dashboard-service"
	dashboardpostgres "civica/contexts/internal-ops/dashboard-service/adapters/postgres"
	voteledger "civica/contexts/voting-core/vote-ledger"
	votepostgres "civica/contexts/voting-core/vote-ledger/adapters/postgres"
	voteledgerworkers "civica/contexts/voting-core/vote-ledger/application/workers"
	"civica/internal/platform/config"
	"civica/internal/platform/db"
	"civica/internal/platform/httpserver"
	"civica/internal/platform/messaging"
	"civica/internal/platform/tokens"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres   *db.Postgres
	relay      voteledgerworkers.OutboxRelay
	reconciler electionworkers.StatusReconciler
	schedule   string
	logger     *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.ServiceName, "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := migrateAll(pg); err != nil {
		_ = pg.Close()
		return nil, err
	}

	bus := messaging.NewBus(logger)
	issuer := tokens.NewIssuer(cfg.TokenSecret, cfg.VoterTokenTTL, cfg.AdminTokenTTL)
	modules := buildModules(pg, bus, cfg, logger)

	server := httpserver.New(
		modules.voters,
		modules.admins,
		modules.elections,
		modules.candidates,
		modules.votes,
		modules.dashboard,
		issuer,
		logger,
		httpserver.Options{
			Addr:              normalizeAddr(cfg.HTTPPort),
			CORSOrigins:       cfg.CORSOrigins,
			DevelopmentErrors: cfg.DevelopmentErrors,
		},
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.ServiceName, "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := migrateAll(pg); err != nil {
		_ = pg.Close()
		return nil, err
	}

	bus := messaging.NewBus(logger)
	voteRepo := votepostgres.NewRepository(pg.DB, logger)
	electionRepo := electionpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		relay: voteledgerworkers.OutboxRelay{
			Outbox:    voteRepo,
			Publisher: bus,
			Clock:     votepostgres.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		reconciler: electionworkers.StatusReconciler{
			Elections: electionRepo,
			Clock:     electionpostgres.SystemClock{},
			Logger:    logger,
		},
		schedule: cfg.WorkerSchedule,
		logger:   logger,
	}, nil
}

type moduleSet struct {
	voters     voterservice.Module
	admins     adminservice.Module
	elections  electionservice.Module
	candidates candidateservice.Module
	votes      voteledger.Module
	dashboard  dashboardservice.Module
}

func buildModules(pg *db.Postgres, bus *messaging.Bus, cfg config.Config, logger *slog.Logger) moduleSet {
	voterRepo := voterpostgres.NewRepository(pg.DB, logger)
	adminRepo := adminpostgres.NewRepository(pg.DB, logger)
	electionRepo := electionpostgres.NewRepository(pg.DB, logger)
	candidateRepo := candidatepostgres.NewRepository(pg.DB, logger)
	voteRepo := votepostgres.NewRepository(pg.DB, logger)
	statsRepo := dashboardpostgres.NewRepository(pg.DB, logger)

	return moduleSet{
		voters: voterservice.NewModule(voterservice.Dependencies{
			Voters: voterRepo,
			Clock:  voterpostgres.SystemClock{},
			IDGen:  voterpostgres.UUIDGenerator{},
			Logger: logger,
		}),
		admins: adminservice.NewModule(adminservice.Dependencies{
			Admins:           adminRepo,
			Clock:            adminpostgres.SystemClock{},
			IDGen:            adminpostgres.UUIDGenerator{},
			MaxLoginAttempts: cfg.AdminMaxLoginAttempts,
			LockDuration:     cfg.AdminLockDuration,
			Logger:           logger,
		}),
		elections: electionservice.NewModule(electionservice.Dependencies{
			Elections: electionRepo,
			Tallies:   electionRepo,
			Clock:     electionpostgres.SystemClock{},
			IDGen:     electionpostgres.UUIDGenerator{},
			TieBreak:  cfg.ResultTieBreak,
			Logger:    logger,
		}),
		candidates: candidateservice.NewModule(candidateservice.Dependencies{
			Candidates: candidateRepo,
			Elections:  candidateRepo,
			Clock:      candidatepostgres.SystemClock{},
			IDGen:      candidatepostgres.UUIDGenerator{},
			Logger:     logger,
		}),
		votes: voteledger.NewModule(voteledger.Dependencies{
			Votes:       voteRepo,
			Projections: voteRepo,
			Outbox:      voteRepo,
			Publisher:   bus,
			Clock:       votepostgres.SystemClock{},
			IDGen:       votepostgres.UUIDGenerator{},
			BatchSize:   cfg.OutboxBatchSize,
			Logger:      logger,
		}),
		dashboard: dashboardservice.NewModule(dashboardservice.Dependencies{
			Stats: statsRepo,
			Clock: dashboardpostgres.SystemClock{},
		}),
	}
}

// migrateAll applies every adapter-owned model. Voter history and vote
// uniqueness constraints are created here, so both processes run it.
func migrateAll(pg *db.Postgres) error {
	var models []any
	models = append(models, voterpostgres.Models()...)
	models = append(models, adminpostgres.Models()...)
	models = append(models, electionpostgres.Models()...)
	models = append(models, candidatepostgres.Models()...)
	models = append(models, votepostgres.Models()...)
	return pg.Migrate(models...)
}

func newLogger(service string, process string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With("service", service, "process", process)
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

// Relay exposes the outbox relay for the cron runner in cmd/worker.
func (w *WorkerApp) Relay() voteledgerworkers.OutboxRelay {
	return w.relay
}

// Reconciler exposes the election status reconciler for the cron runner.
func (w *WorkerApp) Reconciler() electionworkers.StatusReconciler {
	return w.reconciler
}

func (w *WorkerApp) Schedule() string {
	return w.schedule
}

func (w *WorkerApp) Logger() *slog.Logger {
	return w.logger
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
