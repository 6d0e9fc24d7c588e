package logger

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Watch adjusts the log level at runtime when a decisio.yaml next to the
// binary changes. A missing file disables the watcher.
func Watch(log *zap.Logger) {
	v := viper.New()
	v.SetConfigName("decisio")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		lvl := strings.ToLower(strings.TrimSpace(v.GetString("log_level")))
		if lvl == "" {
			return
		}
		if err := SetLevel(lvl); err != nil {
			log.Warn("ignoring invalid log level from config file",
				zap.String("file", e.Name), zap.String("level", lvl))
			return
		}
		log.Info("log level updated", zap.String("level", lvl))
	})
	v.WatchConfig()
}
