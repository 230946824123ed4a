package dashboardservice

import (
	httpadapter "civica/contexts/internal-ops/dashboard-service/adapters/http"
	"civica/contexts/internal-ops/dashboard-service/adapters/memory"
	"civica/contexts/internal-ops/dashboard-service/application"
	"civica/contexts/internal-ops/dashboard-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Stats ports.StatsRepository
	Clock ports.Clock
}

func NewModule(deps Dependencies) Module {
	service := application.Service{Stats: deps.Stats, Clock: deps.Clock}
	return Module{
		Handler: httpadapter.Handler{Service: service},
		Service: service,
	}
}

func NewInMemoryModule() Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{Stats: store, Clock: store})
	module.Store = store
	return module
}
