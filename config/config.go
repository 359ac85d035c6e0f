// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const (
	DevEnv = "dev"
	ProEnv = "pro"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

type Config struct {
	Environment string `env:"ENV" envDefault:"pro"`
	// Address is the plain HTTP listen address. Empty outside dev means
	// HTTPS on :443 with certificates from Let's Encrypt.
	Address       string `env:"ADDRESS_LISTEN"`
	WhitelistHost string `env:"WHITELIST_HOST"`
	AutocertCache string `env:"AUTOCERT_CACHE" envDefault:"/var/www/.cache"`

	SessionSecret string `env:"SESSION_SECRET"`
	MaxSessions   int    `env:"MAX_SESSIONS" envDefault:"10000"`
	// AdminPasswordHash is a bcrypt hash. Empty keeps the demo login that
	// asks for no credentials.
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	DBDriver string `env:"DB_DRIVER" envDefault:"memory"`
	DBURL    string `env:"DB_URL"`

	SiteTitle string `env:"SITE_TITLE"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Environment == DevEnv && cfg.Address == "" {
		cfg.Address = ":8080"
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Environment != DevEnv && c.Environment != ProEnv {
		return fmt.Errorf("ENV must be %q or %q, got %q", DevEnv, ProEnv, c.Environment)
	}
	if c.DBDriver != DriverMemory && c.DBDriver != DriverSQLite {
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverMemory, DriverSQLite, c.DBDriver)
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("MAX_SESSIONS must be positive, got %d", c.MaxSessions)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

func (c Config) Dev() bool {
	return c.Environment == DevEnv
}

// DemoLogin reports whether login needs no password.
func (c Config) DemoLogin() bool {
	return c.AdminPasswordHash == ""
}

// AutoTLS reports whether the server terminates TLS itself.
func (c Config) AutoTLS() bool {
	return c.Address == ""
}
