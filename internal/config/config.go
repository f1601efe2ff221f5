// /internal/config/config.go
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken          string        `env:"DISCORD_TOKEN,required,notEmpty"`
	StoragePath           string        `env:"STORAGE_PATH" envDefault:"datastore.json"`
	DeveloperID           string        `env:"DEVELOPER_ID"`
	InitSlashCommands     bool          `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	DiscordGuildBlacklist []string      `env:"DISCORD_GUILD_BLACKLIST" envSeparator:","`
	MetricsAddr           string        `env:"METRICS_ADDR" envDefault:":8787"`
	SentryDSN             string        `env:"SENTRY_DSN"`
	Environment           string        `env:"ENVIRONMENT" envDefault:"production"`
	PageIdleTimeout       time.Duration `env:"PAGE_IDLE_TIMEOUT" envDefault:"60s"`
	PagePromptTimeout     time.Duration `env:"PAGE_PROMPT_TIMEOUT" envDefault:"15s"`
	FooterBrand           string        `env:"FOOTER_BRAND" envDefault:"© Dreamwxve 2024"`
}

// New loads .env when present and parses the environment into a Config.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}
	return Parse()
}

// Parse reads the current environment without touching .env files.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PageIdleTimeout <= 0 {
		return nil, fmt.Errorf("PAGE_IDLE_TIMEOUT must be positive, got %s", cfg.PageIdleTimeout)
	}
	if cfg.PagePromptTimeout <= 0 {
		return nil, fmt.Errorf("PAGE_PROMPT_TIMEOUT must be positive, got %s", cfg.PagePromptTimeout)
	}
	return &cfg, nil
}

// IsDeveloper reports whether userID is the configured developer.
func IsDeveloper(cfg *Config, userID string) bool {
	return cfg != nil && cfg.DeveloperID != "" && cfg.DeveloperID == userID
}
