package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AdamBeresnev/sinuca-bracket/internal/bracket"
	"github.com/joho/godotenv"
)

type OAuthProvider struct {
	Key         string
	Secret      string
	CallbackURL string
}

func (p OAuthProvider) Enabled() bool {
	return p.Key != "" && p.Secret != ""
}

type Config struct {
	Addr           string
	DBDriver       string
	DatabaseURL    string
	MigrationsPath string
	TournamentID   string

	AdminPassphrase     string
	AdminPassphraseHash string
	AdminEmails         []string

	AdvancePolicy   bracket.AdvancePolicy
	CORSOrigins     []string
	SessionLifetime time.Duration

	Discord OAuthProvider
	Google  OAuthProvider
}

// Load reads the configuration from the environment. A .env file is picked up
// when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:                getEnv("ADDR", ":8080"),
		DBDriver:            getEnv("DB_DRIVER", "sqlite3"),
		TournamentID:        getEnv("TOURNAMENT_ID", bracket.DefaultTournamentID),
		AdminPassphrase:     os.Getenv("ADMIN_PASSPHRASE"),
		AdminPassphraseHash: os.Getenv("ADMIN_PASSPHRASE_HASH"),
		AdminEmails:         splitList(os.Getenv("ADMIN_EMAILS")),
		AdvancePolicy:       bracket.AdvancePolicy(getEnv("ADVANCE_POLICY", string(bracket.AdvanceGated))),
		CORSOrigins:         splitList(os.Getenv("CORS_ORIGINS")),
		Discord: OAuthProvider{
			Key:         os.Getenv("DISCORD_KEY"),
			Secret:      os.Getenv("DISCORD_SECRET"),
			CallbackURL: os.Getenv("DISCORD_CALLBACK_URL"),
		},
		Google: OAuthProvider{
			Key:         os.Getenv("GOOGLE_KEY"),
			Secret:      os.Getenv("GOOGLE_SECRET"),
			CallbackURL: os.Getenv("GOOGLE_CALLBACK_URL"),
		},
	}

	switch cfg.DBDriver {
	case "sqlite3":
		cfg.DatabaseURL = getEnv("DATABASE_URL", "sinuca.db?_journal_mode=WAL")
	case "postgres":
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	cfg.MigrationsPath = getEnv("MIGRATIONS_PATH", "file://migrations/"+cfg.DBDriver)

	if !cfg.AdvancePolicy.Valid() {
		return nil, fmt.Errorf("invalid ADVANCE_POLICY %q, expected gated or free", cfg.AdvancePolicy)
	}

	lifetime, err := time.ParseDuration(getEnv("SESSION_LIFETIME", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_LIFETIME: %w", err)
	}
	cfg.SessionLifetime = lifetime

	if cfg.AdminPassphrase == "" && cfg.AdminPassphraseHash == "" && !cfg.Discord.Enabled() && !cfg.Google.Enabled() {
		return nil, fmt.Errorf("no admin login configured, set ADMIN_PASSPHRASE or ADMIN_PASSPHRASE_HASH")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
