package config

import "time"

// Config holds runtime settings for the EasyFlow CLI.
//
// Fields:
//   - BaseURL: scheme://host[:port] of the backend API gateway.
//   - APIKey: shared key attached to every request as X-Api-Key.
//   - DatabaseDSN: SQLite DSN for the local session store.
//   - RefreshInterval: period of the silent session refresh loop.
//   - RequestTimeout: per-request timeout of the HTTP client.
//
// Units: RefreshInterval and RequestTimeout are time.Duration values.
type Config struct {
	BaseURL         string
	APIKey          string
	DatabaseDSN     string
	RefreshInterval time.Duration
	RequestTimeout  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.APIKey = ""
	c.DatabaseDSN = "easyflow.db"
	c.RefreshInterval = 5 * time.Minute
	c.RequestTimeout = 30 * time.Second
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
