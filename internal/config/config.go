// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/crewlink/crew-schedule-scraper/internal/infrastructure/timeutil"
)

// TenantPlaceholder is replaced by the normalized tenant code in PORTAL_BASE_URL.
const TenantPlaceholder = "{tenant}"

// Requests issued per scrape: one login plus one fetch per month.
const requestsPerScrape = 4

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Portal    PortalConfig
	CORS      CORSConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
	App       AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"75s"`

	// PlatformPort is honored when SERVER_PORT is unset
	PlatformPort int `env:"PORT"`
}

// PortalConfig holds settings for the upstream crew portal.
type PortalConfig struct {
	// BaseURL is the tenant base address template; {tenant} is replaced by the subdomain
	BaseURL string `env:"PORTAL_BASE_URL" envDefault:"https://{tenant}.flica.net"`

	// RequestTimeout bounds every single upstream request
	RequestTimeout time.Duration `env:"PORTAL_REQUEST_TIMEOUT" envDefault:"15s"`

	// UserAgent is sent with every upstream request
	UserAgent string `env:"PORTAL_USER_AGENT" envDefault:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"`

	// Timezone decides which calendar month is "current"
	Timezone string `env:"PORTAL_TIMEZONE" envDefault:"UTC"`

	// TenantsFile optionally points to per-tenant overrides (.json, .json5, .yaml, .yml)
	TenantsFile string `env:"PORTAL_TENANTS_FILE"`

	// Defaults applies to every tenant without an override
	Defaults TenantProfile
}

// CORSConfig holds cross-origin settings for browser callers.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// TelemetryConfig holds tracing settings. Tracing is disabled when the endpoint is empty.
type TelemetryConfig struct {
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"crew-schedule-scraper"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if _, ok := os.LookupEnv("SERVER_PORT"); !ok && cfg.Server.PlatformPort != 0 {
		cfg.Server.Port = cfg.Server.PlatformPort
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	// Validate server port
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	// Validate timeouts are positive
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Portal.RequestTimeout <= 0 || cfg.Portal.RequestTimeout > time.Minute {
		return fmt.Errorf("PORTAL_REQUEST_TIMEOUT must be between 0s and 1m, got %s", cfg.Portal.RequestTimeout)
	}

	// The response is written after login and every monthly fetch have finished
	if budget := requestsPerScrape * cfg.Portal.RequestTimeout; cfg.Server.WriteTimeout <= budget {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT (%s) should be greater than %d x PORTAL_REQUEST_TIMEOUT (%s)",
			cfg.Server.WriteTimeout, requestsPerScrape, budget)
	}

	// Validate portal address template
	if !strings.HasPrefix(cfg.Portal.BaseURL, "http://") && !strings.HasPrefix(cfg.Portal.BaseURL, "https://") {
		return fmt.Errorf("PORTAL_BASE_URL must be an http(s) URL, got %q", cfg.Portal.BaseURL)
	}

	if _, err := timeutil.GetLocation(cfg.Portal.Timezone); err != nil {
		return fmt.Errorf("PORTAL_TIMEZONE is not a valid IANA timezone: %q", cfg.Portal.Timezone)
	}

	if err := cfg.Portal.Defaults.Validate(); err != nil {
		return err
	}

	// Validate log level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	// Validate log format
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	// Validate app environment
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// Location returns the configured portal time zone. validate guarantees it loads.
func (p PortalConfig) Location() *time.Location {
	loc, err := timeutil.GetLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
