package user

import (
	"github.com/clearlead/decisio/internal/user/repository"
	"github.com/clearlead/decisio/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
