package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	// DefaultWorkspaceTTL is how long an idle calculator workspace is kept
	DefaultWorkspaceTTL = 30 * 24 * time.Hour
	// ThemeLight and ThemeDark are the accepted DEFAULT_THEME values
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	LogLevel    string
	// Remote libsql database (Turso). Local SQLite is used when empty.
	TursoDatabaseURL string
	TursoAuthToken   string
	// Workspaces
	WorkspaceTTL    time.Duration
	CleanupSchedule string
	Timezone        string
	// UI
	DefaultLocale  string
	DefaultTheme   string
	AllowedOrigins []string
	AppURL         string
	SecureCookies  bool

	// Defaulted lists the variables that fell back to their default value
	Defaulted []string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	// Ignore the error: a missing .env file is fine when the environment is set directly.
	_ = godotenv.Load()

	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}

	cfg.ServerPort = cfg.getEnv("SERVER_PORT", "8080")
	cfg.DBPath = cfg.getEnv("DB_PATH", "db/app.db")
	cfg.Environment = cfg.getEnv("ENVIRONMENT", "development")
	cfg.LogLevel = cfg.getEnv("LOG_LEVEL", "info")
	cfg.TursoDatabaseURL = os.Getenv("TURSO_DATABASE_URL")
	cfg.TursoAuthToken = os.Getenv("TURSO_AUTH_TOKEN")
	cfg.CleanupSchedule = cfg.getEnv("CLEANUP_SCHEDULE", "@hourly")
	cfg.Timezone = cfg.getEnv("TIMEZONE", "America/Bogota")
	cfg.DefaultLocale = cfg.getEnv("DEFAULT_LOCALE", "es")
	cfg.DefaultTheme = cfg.getEnv("DEFAULT_THEME", ThemeLight)
	cfg.AllowedOrigins = strings.Split(cfg.getEnv("ALLOWED_ORIGINS", "*"), ",")
	cfg.AppURL = cfg.getEnv("APP_URL", "http://localhost:8080")
	cfg.SecureCookies = getEnvBool("SECURE_COOKIES", cfg.IsProduction())

	ttl, err := cfg.getEnvDuration("WORKSPACE_TTL", DefaultWorkspaceTTL)
	if err != nil {
		return nil, err
	}
	cfg.WorkspaceTTL = ttl

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are usable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.ServerPort == "" {
		return errors.New("SERVER_PORT must be provided")
	}

	if c.DBPath == "" && c.TursoDatabaseURL == "" {
		return errors.New("DB_PATH or TURSO_DATABASE_URL must be provided")
	}

	if c.TursoDatabaseURL != "" && c.TursoAuthToken == "" && c.Environment == "production" {
		return errors.New("TURSO_AUTH_TOKEN must be provided with TURSO_DATABASE_URL in production")
	}

	if c.WorkspaceTTL <= 0 {
		return errors.New("WORKSPACE_TTL must be positive")
	}

	switch c.DefaultTheme {
	case ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("DEFAULT_THEME must be %q or %q, got %q", ThemeLight, ThemeDark, c.DefaultTheme)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q is not a valid location: %w", c.Timezone, err)
	}

	return nil
}

// Location returns the configured time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		c.Defaulted = append(c.Defaulted, key)
		return defaultValue
	}
	return value
}

func (c *Config) getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		c.Defaulted = append(c.Defaulted, key)
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}
