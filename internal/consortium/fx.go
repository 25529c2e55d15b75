package consortium

import (
	"go.uber.org/fx"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/consortium/service"
)

var Module = fx.Module("consortium.service",
	fx.Provide(service.NewService),
)
