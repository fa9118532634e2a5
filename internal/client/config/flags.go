package config

import (
	"flag"
	"os"
	"time"

	"github.com/easyflowhq/easyflow/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API gateway (default from Config)
//	-k string   API key sent as X-Api-Key (default from Config)
//	-d string   SQLite DSN of the local session store (default from Config)
//	-i int      session refresh interval in seconds (default from Config)
//	-t int      per-request HTTP timeout in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-d", "-i", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the backend API gateway")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "API key sent as X-Api-Key")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "SQLite DSN of the local session store")
	refreshInterval := fs.Int("i", int(cfg.RefreshInterval.Seconds()), "session refresh interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "per-request HTTP timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RefreshInterval = time.Duration(*refreshInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
