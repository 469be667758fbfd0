package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the reviewpulse server.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	AI        AIConfig
	Admin     AdminConfig
	Analytics AnalyticsConfig
}

type ServerConfig struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// IsProduction reports whether the server runs with production hardening.
func (s ServerConfig) IsProduction() bool {
	return s.Env == "production"
}

type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	Name            string        `env:"DATABASE_NAME" envDefault:"feedback"`
	MaxConns        int           `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	MinConns        int           `env:"DATABASE_MIN_CONNS" envDefault:"2"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"DATABASE_CONN_MAX_IDLE_TIME" envDefault:"30m"`
}

// Driver derives the storage backend from the URL scheme.
// Returns "" when no database is configured.
func (d DatabaseConfig) Driver() string {
	switch {
	case d.URL == "":
		return ""
	case strings.HasPrefix(d.URL, "mongodb://"), strings.HasPrefix(d.URL, "mongodb+srv://"):
		return DriverMongo
	case strings.HasPrefix(d.URL, "postgres://"), strings.HasPrefix(d.URL, "postgresql://"):
		return DriverPostgres
	default:
		return "unknown"
	}
}

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongodb"
)

type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

type AIConfig struct {
	Provider  string        `env:"AI_PROVIDER" envDefault:"openai"`
	Timeout   time.Duration `env:"AI_TIMEOUT" envDefault:"20s"`
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Gemini    GeminiConfig
	Ollama    OllamaConfig
	VLLM      VLLMConfig
}

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	Model   string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	BaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
}

type AnthropicConfig struct {
	APIKey  string `env:"ANTHROPIC_API_KEY"`
	Model   string `env:"ANTHROPIC_MODEL" envDefault:"claude-3-5-haiku-latest"`
	BaseURL string `env:"ANTHROPIC_BASE_URL" envDefault:"https://api.anthropic.com"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
}

type OllamaConfig struct {
	BaseURL string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434/v1"`
	Model   string `env:"OLLAMA_MODEL" envDefault:"llama3"`
}

type VLLMConfig struct {
	BaseURL string `env:"VLLM_BASE_URL" envDefault:"http://localhost:8000/v1"`
	Model   string `env:"VLLM_MODEL"`
}

type AdminConfig struct {
	Password          string        `env:"ADMIN_PASSWORD"`
	PasswordHash      string        `env:"ADMIN_PASSWORD_HASH"`
	SessionSecret     string        `env:"SESSION_SECRET"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	MaxAttemptsPerMin int           `env:"AUTH_MAX_ATTEMPTS_PER_MIN" envDefault:"10"`
}

type AnalyticsConfig struct {
	CacheTTL time.Duration `env:"ANALYTICS_CACHE_TTL" envDefault:"30s"`
	Timezone string        `env:"ANALYTICS_TIMEZONE" envDefault:"Local"`
}

// Location resolves the configured analytics time zone.
func (a AnalyticsConfig) Location() (*time.Location, error) {
	if a.Timezone == "" || a.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(a.Timezone)
}

// DevAdminPassword is used outside production when ADMIN_PASSWORD is unset.
const DevAdminPassword = "admin"

const minSessionSecretLen = 32

var validProviders = map[string]bool{
	"openai":    true,
	"anthropic": true,
	"gemini":    true,
	"ollama":    true,
	"vllm":      true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Load reads configuration from environment variables (and a .env file in the
// working directory, if present) and returns a validated Config.
// Returns an error with a descriptive message if any value is invalid.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if !validLogLevels[c.Server.LogLevel] {
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", c.Server.LogLevel)
	}

	if c.Database.Driver() == "unknown" {
		return fmt.Errorf("DATABASE_URL must start with postgres://, postgresql://, mongodb:// or mongodb+srv://")
	}
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("DATABASE_MAX_CONNS must be positive, got %d", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DATABASE_MIN_CONNS must be between 0 and DATABASE_MAX_CONNS, got %d", c.Database.MinConns)
	}

	if c.Database.ConnMaxLifetime < 0 || c.Database.ConnMaxIdleTime < 0 {
		return errors.New("DATABASE_CONN_MAX_LIFETIME and DATABASE_CONN_MAX_IDLE_TIME must not be negative")
	}

	if !validProviders[c.AI.Provider] {
		return fmt.Errorf("AI_PROVIDER must be one of openai, anthropic, gemini, ollama, vllm; got %q", c.AI.Provider)
	}
	if c.AI.Timeout <= 0 {
		return errors.New("AI_TIMEOUT must be positive")
	}
	if c.AI.Provider == "vllm" && c.AI.VLLM.Model == "" {
		return errors.New("VLLM_MODEL is required when AI_PROVIDER is vllm")
	}

	if c.Admin.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.Admin.MaxAttemptsPerMin < 0 {
		return fmt.Errorf("AUTH_MAX_ATTEMPTS_PER_MIN must not be negative, got %d", c.Admin.MaxAttemptsPerMin)
	}
	if c.Server.IsProduction() {
		if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
			return errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required in production")
		}
		if len(c.Admin.SessionSecret) < minSessionSecretLen {
			return fmt.Errorf("SESSION_SECRET must be at least %d bytes in production", minSessionSecretLen)
		}
	} else if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		c.Admin.Password = DevAdminPassword
	}

	if c.Analytics.CacheTTL < 0 {
		return errors.New("ANALYTICS_CACHE_TTL must not be negative")
	}
	if _, err := c.Analytics.Location(); err != nil {
		return fmt.Errorf("ANALYTICS_TIMEZONE is invalid: %w", err)
	}

	return nil
}
