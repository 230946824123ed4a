package electionservice

import (
	"log/slog"

	httpadapter "civica/contexts/election-operations/election-service/adapters/http"
	"civica/contexts/election-operations/election-service/adapters/memory"
	"civica/contexts/election-operations/election-service/application/commands"
	"civica/contexts/election-operations/election-service/application/queries"
	"civica/contexts/election-operations/election-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	UseCase commands.ElectionUseCase
	Queries queries.ElectionQueries
	Store   *memory.Store
}

type Dependencies struct {
	Elections ports.ElectionRepository
	Tallies   ports.TallyReader
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	TieBreak  string
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	useCase := commands.ElectionUseCase{
		Elections: deps.Elections,
		Tallies:   deps.Tallies,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		TieBreak:  deps.TieBreak,
		Logger:    deps.Logger,
	}
	electionQueries := queries.ElectionQueries{
		Elections: deps.Elections,
		Tallies:   deps.Tallies,
		Clock:     deps.Clock,
	}
	return Module{
		Handler: httpadapter.Handler{UseCase: useCase, Queries: electionQueries, Logger: deps.Logger},
		UseCase: useCase,
		Queries: electionQueries,
	}
}

func NewInMemoryModule(logger *slog.Logger, tieBreak string) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Elections: store,
		Tallies:   store,
		Clock:     store,
		IDGen:     store,
		TieBreak:  tieBreak,
		Logger:    logger,
	})
	module.Store = store
	return module
}
