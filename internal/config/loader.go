package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// A .env file in the working directory is loaded first if present; it never
// overrides variables already set in the environment.
// The YAML file path is CONFIG_PATH (fallback "./config.yaml"). If the file
// does not exist and CONFIG_PATH was not set explicitly, configuration comes
// from ENV + defaults only.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

// LoadStorage reads configuration like Load but only validates the database
// and log sections, for commands that never serve requests.
func LoadStorage() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateStorage(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

func read() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}

	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	return &cfg, nil
}
