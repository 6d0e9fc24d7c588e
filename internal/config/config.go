package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	LogLevel string

	Cloud  CloudConfig
	DB     DBConfig
	Oracle OracleConfig
	Redis  RedisConfig

	OtelEnabled  bool
	OTLPEndpoint string

	SeedEnabled bool
}

// CloudConfig points at the hosted tabular backend (PostgREST-style REST).
type CloudConfig struct {
	BaseURL string
	APIKey  string
}

// DBConfig configures the local store database. Sqlite is the default and
// keeps the service fully functional with no external infrastructure.
type DBConfig struct {
	Type     string
	Path     string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// OracleConfig points at the LLM scoring backend.
type OracleConfig struct {
	BaseURL     string
	APIKey      string
	StepModel   string
	ReportModel string
	Timeout     time.Duration
}

// RedisConfig enables the redis-backed session store when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load reads configuration from environment variables and an optional .env
// file. Defaults are chosen so the service runs locally with zero setup.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_SERVICE", "decisio")
	v.SetDefault("APP_VERSION", "0.1.0")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("CLOUD_BASE_URL", "")
	v.SetDefault("CLOUD_API_KEY", "")

	v.SetDefault("DATABASE_TYPE", "sqlite")
	v.SetDefault("DATABASE_PATH", "decisio.db")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_NAME", "decisio")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "")
	v.SetDefault("DATABASE_SSLMODE", "disable")

	v.SetDefault("ORACLE_BASE_URL", "https://generativelanguage.googleapis.com")
	v.SetDefault("ORACLE_API_KEY", "")
	v.SetDefault("ORACLE_STEP_MODEL", "gemini-3-flash-preview")
	v.SetDefault("ORACLE_REPORT_MODEL", "gemini-3-pro-preview")
	v.SetDefault("ORACLE_TIMEOUT_SECONDS", 60)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTLP_ENDPOINT", "localhost:4317")

	v.SetDefault("SEED_ENABLED", true)

	return Config{
		AppName:     v.GetString("APP_SERVICE"),
		AppVersion:  v.GetString("APP_VERSION"),
		Environment: v.GetString("ENVIRONMENT"),
		HTTPAddr:    v.GetString("HTTP_ADDR"),
		LogLevel:    strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		Cloud: CloudConfig{
			BaseURL: strings.TrimRight(strings.TrimSpace(v.GetString("CLOUD_BASE_URL")), "/"),
			APIKey:  strings.TrimSpace(v.GetString("CLOUD_API_KEY")),
		},
		DB: DBConfig{
			Type:     strings.ToLower(v.GetString("DATABASE_TYPE")),
			Path:     v.GetString("DATABASE_PATH"),
			Host:     v.GetString("DATABASE_HOST"),
			Port:     v.GetString("DATABASE_PORT"),
			Name:     v.GetString("DATABASE_NAME"),
			User:     v.GetString("DATABASE_USER"),
			Password: v.GetString("DATABASE_PASSWORD"),
			SSLMode:  v.GetString("DATABASE_SSLMODE"),
		},
		Oracle: OracleConfig{
			BaseURL:     strings.TrimRight(strings.TrimSpace(v.GetString("ORACLE_BASE_URL")), "/"),
			APIKey:      strings.TrimSpace(v.GetString("ORACLE_API_KEY")),
			StepModel:   v.GetString("ORACLE_STEP_MODEL"),
			ReportModel: v.GetString("ORACLE_REPORT_MODEL"),
			Timeout:     time.Duration(v.GetInt("ORACLE_TIMEOUT_SECONDS")) * time.Second,
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(v.GetString("REDIS_ADDR")),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		OtelEnabled:  v.GetBool("OTEL_ENABLED"),
		OTLPEndpoint: v.GetString("OTLP_ENDPOINT"),
		SeedEnabled:  v.GetBool("SEED_ENABLED"),
	}
}

// CloudConfigured reports whether a remote backend is configured at all.
// Without it every repository operation settles on the local store.
func (c Config) CloudConfigured() bool {
	return c.Cloud.BaseURL != ""
}
