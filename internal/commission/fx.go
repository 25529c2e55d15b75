package commission

import (
	"go.uber.org/fx"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/commission/service"
)

var Module = fx.Module("commission.service",
	fx.Provide(service.NewService),
)
