// Package config loads service configuration from the environment.
// Database settings are hard requirements; mail-provider settings are
// only warned about so the service can come up without them.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultResendURL is the Resend API endpoint for sending emails.
const DefaultResendURL = "https://api.resend.com/emails"

// Postgres holds the structured connection parameters for the postgres
// driver. The DSN is assembled by the repository, not here.
type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

// Config is the full runtime configuration of the service.
type Config struct {
	Port        string
	LogLevel    slog.Level
	CORSOrigins []string

	DBDriver   string // "postgres" or "sqlite"
	Postgres   Postgres
	SQLitePath string

	ResendAPIKey  string
	ResendFromAdr string
	ResendAPIURL  string
}

// Load reads configuration from the environment, after loading a .env
// file if one is present. It returns an error when database settings
// are incomplete and logs a warning when mail-provider settings are.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional; real env always wins in prod

	cfg := &Config{
		Port:     envOrDefault("PORT", "8080"),
		LogLevel: parseLogLevel(os.Getenv("LOG_LEVEL")),
		CORSOrigins: splitOrigins(envOrDefault("CORS_ORIGINS",
			"http://localhost:3000,https://waitinglist-total.vercel.app")),
		DBDriver:      envOrDefault("DB_DRIVER", "postgres"),
		SQLitePath:    envOrDefault("DATABASE_PATH", "waitlist.db"),
		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		ResendFromAdr: os.Getenv("RESEND_FROM_EMAIL"),
		ResendAPIURL:  envOrDefault("RESEND_API_URL", DefaultResendURL),
	}

	switch cfg.DBDriver {
	case "postgres":
		cfg.Postgres = Postgres{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     envOrDefault("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Database: os.Getenv("POSTGRES_DB"),
			SSLMode:  envOrDefault("POSTGRES_SSLMODE", "require"),
		}
		if missing := missingPostgresKeys(cfg.Postgres); len(missing) > 0 {
			return nil, fmt.Errorf("missing required environment variables: %s",
				strings.Join(missing, ", "))
		}
	case "sqlite":
		// DATABASE_PATH has a default; nothing else required.
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want postgres or sqlite)", cfg.DBDriver)
	}

	if cfg.ResendAPIKey == "" || cfg.ResendFromAdr == "" {
		slog.Warn("RESEND_API_KEY or RESEND_FROM_EMAIL is missing; confirmation emails will fail")
	}

	return cfg, nil
}

func missingPostgresKeys(p Postgres) []string {
	var missing []string
	for key, val := range map[string]string{
		"POSTGRES_HOST":     p.Host,
		"POSTGRES_USER":     p.User,
		"POSTGRES_PASSWORD": p.Password,
		"POSTGRES_DB":       p.Database,
	} {
		if val == "" {
			missing = append(missing, key)
		}
	}
	// Map iteration order is random; keep the error message stable.
	sort.Strings(missing)
	return missing
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
