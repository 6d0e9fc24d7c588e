package db

import (
	"github.com/clearlead/decisio/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database and installs the otel plugin.
func Open(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := gdb.Use(otelgorm.NewPlugin()); err != nil {
		log.Warn("otelgorm plugin not installed", zap.Error(err))
	}

	log.Info("database opened", zap.String("type", cfg.DB.Type))
	return gdb, nil
}

var Module = fx.Module("db",
	fx.Provide(Open),
)
