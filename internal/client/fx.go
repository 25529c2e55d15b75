package client

import (
	"go.uber.org/fx"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/client/service"
)

var Module = fx.Module("client.service",
	fx.Provide(service.NewService),
)
