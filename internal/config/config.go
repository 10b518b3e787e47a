package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the Substack credentials and defaults the transport layer
// needs. The conversion core never reads it.
type Config struct {
	Substack struct {
		Subdomain string `yaml:"subdomain"`
		UserID    int    `yaml:"user_id"`
	} `yaml:"substack"`

	// SID is the substack.sid session cookie. It is secret, so it only
	// comes from the environment, never from the YAML file.
	SID string `yaml:"-"`
}

// Load reads configuration in layers: .env if present, then the YAML file
// if present, then environment variable overrides. A missing YAML file is
// not an error; missing required values are reported by Validate.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if sid := os.Getenv("SUBSTACK_SID"); sid != "" {
		cfg.SID = sid
	}
	if sub := os.Getenv("SUBSTACK_SUBDOMAIN"); sub != "" {
		cfg.Substack.Subdomain = sub
	}
	if uid := os.Getenv("SUBSTACK_USER_ID"); uid != "" {
		n, err := strconv.Atoi(uid)
		if err != nil {
			return nil, fmt.Errorf("SUBSTACK_USER_ID must be a number, got %q", uid)
		}
		cfg.Substack.UserID = n
	}

	return &cfg, nil
}

// Validate checks that everything needed to talk to the API is present.
func (c *Config) Validate() error {
	if c.SID == "" {
		return fmt.Errorf("SUBSTACK_SID not set: set it to your substack.sid cookie value")
	}
	if c.Substack.Subdomain == "" {
		return fmt.Errorf("SUBSTACK_SUBDOMAIN not set (example: export SUBSTACK_SUBDOMAIN=mynewsletter)")
	}
	if c.Substack.UserID == 0 {
		return fmt.Errorf("SUBSTACK_USER_ID not set: find your user ID in Substack network requests")
	}
	return nil
}
