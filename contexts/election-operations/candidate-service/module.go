package candidateservice

import (
	"log/slog"

	httpadapter "civica/contexts/election-operations/candidate-service/adapters/http"
	"civica/contexts/election-operations/candidate-service/adapters/memory"
	"civica/contexts/election-operations/candidate-service/application"
	"civica/contexts/election-operations/candidate-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Candidates ports.CandidateRepository
	Elections  ports.ElectionReader
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Candidates: deps.Candidates,
		Elections:  deps.Elections,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Candidates: store,
		Elections:  store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
