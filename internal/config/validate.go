package config

import (
	"errors"
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks cross-field constraints cleanenv cannot express.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Session.Secret) == "" {
		errs = append(errs, errors.New("session.secret is required"))
	} else if len(c.Session.Secret) < 16 {
		errs = append(errs, errors.New("session.secret must be at least 16 characters"))
	}
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("session.cookie_name is required"))
	}
	if c.Session.TTL < 0 {
		errs = append(errs, errors.New("session.ttl must not be negative"))
	}

	if strings.TrimSpace(c.OpenAI.APIKey) == "" {
		errs = append(errs, errors.New("openai.api_key is required"))
	}
	if c.OpenAI.Timeout < 0 {
		errs = append(errs, errors.New("openai.timeout must not be negative"))
	}

	errs = append(errs, c.ValidateStorage())

	return errors.Join(errs...)
}

// ValidateStorage checks only the database and log sections.
func (c *Config) ValidateStorage() error {
	var errs []error

	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Errorf("log.level %q must be one of debug, info, warn, error", c.Log.Level))
	}

	return errors.Join(errs...)
}
