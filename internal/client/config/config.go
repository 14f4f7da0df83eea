package config

import (
	"time"
)

// Environment selects one of the built-in server environments.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Endpoints describes one server environment.
type Endpoints struct {
	BaseURL     string
	WebURL      string
	Description string
}

// environments is the static map of known server environments. It is
// consulted once at client construction.
var environments = map[Environment]Endpoints{
	EnvDevelopment: {
		BaseURL:     "http://127.0.0.1:8080/api",
		WebURL:      "http://127.0.0.1:8080",
		Description: "local development server",
	},
	EnvProduction: {
		BaseURL:     "https://api.sangam.app/api",
		WebURL:      "https://sangam.app",
		Description: "production server",
	},
}

// Config holds runtime settings for the Sangam client.
//
// Fields:
//   - Environment: which server environment to talk to.
//   - RequestTimeout: per-request HTTP deadline.
//   - StoreDSN: path of the local credential store database.
type Config struct {
	Environment    Environment
	RequestTimeout time.Duration
	StoreDSN       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Environment = EnvDevelopment
	c.RequestTimeout = 15 * time.Second
	c.StoreDSN = "sangam.db"
}

// Endpoints resolves the environment to its endpoint set. Unknown
// environments fall back to development.
func (c *Config) Endpoints() Endpoints {
	if e, ok := environments[c.Environment]; ok {
		return e
	}
	return environments[EnvDevelopment]
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
