// Package config loads application settings from YAML, .env and environment
// variables.
package config

import (
	"time"

	"github.com/mmynk/copywriter/internal/generator"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr              string        `yaml:"addr"                env:"SERVER_ADDR"                env-default:":8080"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"SERVER_READ_HEADER_TIMEOUT" env-default:"10s"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"        env:"SERVER_IDLE_TIMEOUT"        env-default:"60s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"    env:"SERVER_SHUTDOWN_TIMEOUT"    env-default:"10s"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"DB_PATH" env-default:"./data/site.db"`
}

// SessionConfig holds session cookie settings.
type SessionConfig struct {
	Secret       string        `yaml:"secret"        env:"SESSION_SECRET"`
	CookieName   string        `yaml:"cookie_name"   env:"SESSION_COOKIE_NAME"   env-default:"copywriter_session"`
	CookieSecure bool          `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE" env-default:"false"`
	TTL          time.Duration `yaml:"ttl"           env:"SESSION_TTL"           env-default:"0s"`
}

// OpenAIConfig holds the text-generation service settings.
type OpenAIConfig struct {
	APIKey  string        `yaml:"api_key"  env:"OPENAI_API_KEY"`
	BaseURL string        `yaml:"base_url" env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
	Model   string        `yaml:"model"    env:"OPENAI_MODEL"    env-default:"gpt-3.5-turbo"`
	Timeout time.Duration `yaml:"timeout"  env:"OPENAI_TIMEOUT"  env-default:"0s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Generator converts the OpenAI section into the generator's settings.
func (c OpenAIConfig) Generator() generator.Config {
	return generator.Config{
		APIKey:  c.APIKey,
		BaseURL: c.BaseURL,
		Model:   c.Model,
		Timeout: c.Timeout,
	}
}
