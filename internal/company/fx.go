package company

import (
	"github.com/clearlead/decisio/internal/company/repository"
	"github.com/clearlead/decisio/internal/company/service"
	"go.uber.org/fx"
)

var Module = fx.Module("company.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
