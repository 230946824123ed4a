package voterservice

import (
	"log/slog"

	httpadapter "civica/contexts/identity-access/voter-service/adapters/http"
	"civica/contexts/identity-access/voter-service/adapters/memory"
	"civica/contexts/identity-access/voter-service/application"
	"civica/contexts/identity-access/voter-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Voters   ports.VoterRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	HashCost int
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Voters:   deps.Voters,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		HashCost: deps.HashCost,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger, hashCost int) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Voters:   store,
		Clock:    store,
		IDGen:    store,
		HashCost: hashCost,
		Logger:   logger,
	})
	module.Store = store
	return module
}
