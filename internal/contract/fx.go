package contract

import (
	"go.uber.org/fx"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/contract/service"
)

var Module = fx.Module("contract.service",
	fx.Provide(service.NewService),
)
