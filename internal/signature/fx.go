package signature

import (
	"go.uber.org/fx"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/signature/render"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/signature/service"
)

var Module = fx.Module("signature.service",
	fx.Provide(service.NewService),
	fx.Provide(render.NewHTMLRenderer),
	fx.Provide(func(r *render.HTMLRenderer) render.Renderer { return r }),
)
