package template

import (
	"go.uber.org/fx"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/template/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/template/service"
	"github.com/thekiqdev/CredCar-Finance-sub001/pkg/repository"
)

var Module = fx.Module("template.service",
	fx.Provide(repository.ProvideStore[domain.ContractTemplate]),
	fx.Provide(service.NewService),
)
