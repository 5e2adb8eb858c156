package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/sohelranaweb/hotelier-server/internal/core"
)

// Config is the server configuration file. Secrets are deliberately absent:
// the signing secret and the Stripe key come from the process environment
// (ACCESS_TOKEN_SECRET, STRIPE_SECRET_KEY).
type Config struct {
	Addr   string       `yaml:"addr"`
	Store  StoreConfig  `yaml:"store"`
	Auth   AuthConfig   `yaml:"auth"`
	Stripe StripeConfig `yaml:"stripe"`

	// Badges seeds the membership packages at startup. Badges are reference
	// data; they have no write endpoint.
	Badges []core.Badge `yaml:"badges"`
}

type StoreConfig struct {
	// Path is the badger database directory. Empty means in-memory only.
	Path string `yaml:"path"`
}

type AuthConfig struct {
	// TokenTTL is the lifetime of issued session tokens.
	TokenTTL time.Duration `yaml:"token_ttl"`
}

type StripeConfig struct {
	// BaseURL overrides the Stripe API host, for tests and mock servers.
	BaseURL string `yaml:"base_url"`
}

// Load reads and parses the configuration file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":5000"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 1 * time.Hour
	}
}

func (c *Config) Validate() error {
	if c.Auth.TokenTTL < 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}
	seen := make(map[string]struct{})
	for idx, b := range c.Badges {
		if b.PackageName == "" {
			return fmt.Errorf("badge at index %d has empty package_name", idx)
		}
		if _, dup := seen[b.PackageName]; dup {
			return fmt.Errorf("duplicate badge package %q", b.PackageName)
		}
		seen[b.PackageName] = struct{}{}
	}
	return nil
}
