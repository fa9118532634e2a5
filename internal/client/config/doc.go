// Package config loads runtime configuration for the EasyFlow CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API gateway
//	-k string   API key sent as X-Api-Key
//	-d string   SQLite DSN of the local session store
//	-i int      session refresh interval (seconds)
//	-t int      per-request HTTP timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "5m" or integer nanoseconds:
//
//	{
//	  "base_url": "https://api.easyflow.example",
//	  "api_key": "dev-key",
//	  "database_dsn": "easyflow.db",
//	  "refresh_interval": "5m",
//	  "request_timeout": "30s"
//	}
//
// Primary API
//
//   - type Config                     — holds the gateway and session settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
