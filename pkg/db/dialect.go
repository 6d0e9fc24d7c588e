package db

import (
	"fmt"

	"github.com/clearlead/decisio/internal/config"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Dialect maps the configured database type to a gorm dialector. Sqlite is
// the default: the local store must work with no external infrastructure.
func Dialect(cfg config.Config) (gorm.Dialector, error) {
	switch cfg.DB.Type {
	case "sqlite", "":
		path := cfg.DB.Path
		if path == "" {
			path = "decisio.db"
		}
		return sqlite.Open(path), nil
	case "postgres":
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DB.Host,
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Name,
			cfg.DB.Port,
			cfg.DB.SSLMode,
		)), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DB.Type)
	}
}
