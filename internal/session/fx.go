package session

import (
	"github.com/clearlead/decisio/internal/session/service"
	"github.com/clearlead/decisio/internal/session/store"
	"go.uber.org/fx"
)

var Module = fx.Module("session.service",
	fx.Provide(store.New),
	fx.Provide(service.NewService),
)
