// Package config loads and validates application configuration.
// Values come from environment variables, optionally layered over a YAML
// file named by CONFIG_PATH. Environment variables always win.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `yaml:"port" env:"PORT" env-default:"8080"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL      string `yaml:"database_url" env:"DATABASE_URL"`
	DatabaseMaxConns int32  `yaml:"database_max_conns" env:"DATABASE_MAX_CONNS" env-default:"10"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	// LogFormat is json or text.
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`

	// CORSOrigins is the list of allowed cross-origin request origins, read
	// from the comma-separated CORS_ORIGINS.
	CORSOrigins    []string `yaml:"-"`
	RawCORSOrigins string   `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"http://localhost:5173"`

	// AuthJWTSecret is the HS256 key bearer tokens are signed with. Required.
	AuthJWTSecret string `yaml:"auth_jwt_secret" env:"AUTH_JWT_SECRET"`
	// AuthJWTIssuer, when set, must match the iss claim of every token.
	AuthJWTIssuer string `yaml:"auth_jwt_issuer" env:"AUTH_JWT_ISSUER"`

	// CalendarTimezone is the IANA zone used to bucket item timestamps into days.
	CalendarTimezone string `yaml:"calendar_timezone" env:"CALENDAR_TIMEZONE" env-default:"UTC"`
	// CalendarCacheSize is the number of resolved calendars kept in memory. 0 disables the cache.
	CalendarCacheSize int `yaml:"calendar_cache_size" env:"CALENDAR_CACHE_SIZE" env-default:"256"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"MAX_BODY_BYTES" env-default:"1048576"`

	// MigrateOnStart applies pending migrations before the server starts.
	MigrateOnStart bool `yaml:"migrate_on_start" env:"MIGRATE_ON_START" env-default:"true"`
}

// Load reads configuration and returns a validated Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}

	cfg.CORSOrigins = splitCSV(cfg.RawCORSOrigins)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Location returns the calendar time zone. Load has already checked that it exists.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.CalendarTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.AuthJWTSecret == "" {
		missing = append(missing, "AUTH_JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("config: LOG_FORMAT %q must be json or text", c.LogFormat)
	}
	if _, err := time.LoadLocation(c.CalendarTimezone); err != nil {
		return fmt.Errorf("config: CALENDAR_TIMEZONE: %w", err)
	}
	if c.DatabaseMaxConns < 1 {
		return fmt.Errorf("config: DATABASE_MAX_CONNS must be positive, got %d", c.DatabaseMaxConns)
	}
	if c.CalendarCacheSize < 0 {
		return fmt.Errorf("config: CALENDAR_CACHE_SIZE must not be negative, got %d", c.CalendarCacheSize)
	}
	if c.MaxBodyBytes < 1 {
		return fmt.Errorf("config: MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
