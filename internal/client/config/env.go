package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config with values from environment variables.
func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv("SERVER_BASE_URL"); ok {
		cfg.ServerBaseURL = v
	}
	if v, ok := os.LookupEnv("CLIENT_DATABASE_PATH"); ok {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv("ONLINE_CHECK_INTERVAL"); ok {
		if sec, err := strconv.Atoi(v); err == nil {
			cfg.OnlineCheckInterval = time.Duration(sec) * time.Second
		}
	}
	if v, ok := os.LookupEnv("QUEUE_RETENTION"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.QueueRetention = d
		}
	}
}
