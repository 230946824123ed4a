package adminservice

import (
	"log/slog"
	"time"

	httpadapter "civica/contexts/identity-access/admin-service/adapters/http"
	"civica/contexts/identity-access/admin-service/adapters/memory"
	"civica/contexts/identity-access/admin-service/application"
	"civica/contexts/identity-access/admin-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Admins           ports.AdminRepository
	Clock            ports.Clock
	IDGen            ports.IDGenerator
	MaxLoginAttempts int
	LockDuration     time.Duration
	HashCost         int
	Logger           *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Admins:           deps.Admins,
		Clock:            deps.Clock,
		IDGen:            deps.IDGen,
		MaxLoginAttempts: deps.MaxLoginAttempts,
		LockDuration:     deps.LockDuration,
		HashCost:         deps.HashCost,
		Logger:           deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger, hashCost int) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Admins:   store,
		Clock:    store,
		IDGen:    store,
		HashCost: hashCost,
		Logger:   logger,
	})
	module.Store = store
	return module
}
