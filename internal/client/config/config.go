// Package config holds runtime settings for the client CLI.
package config

import "time"

// Config holds runtime settings for the client.
//
// Units: OnlineCheckInterval and QueueRetention are time.Durations.
type Config struct {
	// ServerBaseURL is the base URL of the backend REST API.
	ServerBaseURL string
	// DatabasePath is the path of the local SQLite database holding the
	// response cache and the outbox.
	DatabasePath string
	// OnlineCheckInterval is how often the client probes server reachability.
	OnlineCheckInterval time.Duration
	// QueueRetention is how long a deferred write stays replayable before it
	// is discarded as stale.
	QueueRetention time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000"
	c.DatabasePath = "communityhub.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.QueueRetention = 24 * time.Hour
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
