package voteledger

import (
	"log/slog"

	httpadapter "civica/contexts/voting-core/vote-ledger/adapters/http"
	"civica/contexts/voting-core/vote-ledger/adapters/memory"
	"civica/contexts/voting-core/vote-ledger/application/commands"
	"civica/contexts/voting-core/vote-ledger/application/queries"
	"civica/contexts/voting-core/vote-ledger/application/workers"
	"civica/contexts/voting-core/vote-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Cast    commands.CastUseCase
	Status  commands.StatusUseCase
	Queries queries.VoteQueries
	Relay   workers.OutboxRelay
	Store   *memory.Store
}

type Dependencies struct {
	Votes       ports.VoteRepository
	Projections ports.ProjectionReader
	Outbox      ports.OutboxRepository
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	BatchSize   int
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	cast := commands.CastUseCase{
		Votes:       deps.Votes,
		Projections: deps.Projections,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Logger:      deps.Logger,
	}
	status := commands.StatusUseCase{
		Votes:  deps.Votes,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	voteQueries := queries.VoteQueries{
		Votes:       deps.Votes,
		Projections: deps.Projections,
	}
	relay := workers.OutboxRelay{
		Outbox:    deps.Outbox,
		Publisher: deps.Publisher,
		Clock:     deps.Clock,
		BatchSize: deps.BatchSize,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Cast: cast, Status: status, Queries: voteQueries, Logger: deps.Logger},
		Cast:    cast,
		Status:  status,
		Queries: voteQueries,
		Relay:   relay,
	}
}

func NewInMemoryModule(logger *slog.Logger, publisher ports.EventPublisher) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Votes:       store,
		Projections: store,
		Outbox:      store,
		Publisher:   publisher,
		Clock:       store,
		IDGen:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
