package audit

import (
	"go.uber.org/fx"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/audit/repository"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/audit/service"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
