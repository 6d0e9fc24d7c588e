package main

import (
	"github.com/clearlead/decisio/internal/clock"
	"github.com/clearlead/decisio/internal/config"
	"github.com/clearlead/decisio/internal/logger"
	"github.com/clearlead/decisio/internal/server"
	"github.com/clearlead/decisio/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		db.Module,
		clock.Module,
		server.Module,
	)
	app.Run()
}
