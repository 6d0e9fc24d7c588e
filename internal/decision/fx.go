package decision

import (
	"github.com/clearlead/decisio/internal/decision/repository"
	"github.com/clearlead/decisio/internal/decision/service"
	"go.uber.org/fx"
)

var Module = fx.Module("decision.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
