package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevel()

// New builds a structured zap.Logger using the provided level (info, warn, debug, error).
func New(lvl string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if lvl == "" {
		lvl = "info"
	}

	if err := level.UnmarshalText([]byte(lvl)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", lvl, err)
	}
	cfg.Level = level

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}

// SetLevel adjusts the level of every logger built by New at runtime.
func SetLevel(lvl string) error {
	return level.UnmarshalText([]byte(lvl))
}
