package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if cfg.EndpointAddr != ":8080" {
		t.Fatalf("unexpected default address: %q", cfg.EndpointAddr)
	}
	if cfg.AccessTokenValidityDuration != 15*time.Minute {
		t.Fatalf("unexpected access token validity: %v", cfg.AccessTokenValidityDuration)
	}
	if cfg.RefreshTokenValidityDuration != 7*24*time.Hour {
		t.Fatalf("unexpected refresh token validity: %v", cfg.RefreshTokenValidityDuration)
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		t.Fatalf("access and refresh secrets must differ")
	}
}

func TestParseEnv_Overlays(t *testing.T) {
	t.Setenv("ADDRESS", ":9999")
	t.Setenv("DATABASE_DSN", "postgres://env")
	t.Setenv("ACCESS_TOKEN_VALIDITY", "5m")
	t.Setenv("SECURE_COOKIES", "true")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	if cfg.EndpointAddr != ":9999" {
		t.Fatalf("ADDRESS not applied: %q", cfg.EndpointAddr)
	}
	if cfg.DatabaseDSN != "postgres://env" {
		t.Fatalf("DATABASE_DSN not applied: %q", cfg.DatabaseDSN)
	}
	if cfg.AccessTokenValidityDuration != 5*time.Minute {
		t.Fatalf("ACCESS_TOKEN_VALIDITY not applied: %v", cfg.AccessTokenValidityDuration)
	}
	if !cfg.SecureCookies {
		t.Fatalf("SECURE_COOKIES not applied")
	}
}

func TestParseEnv_MalformedDurationIgnored(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_VALIDITY", "not-a-duration")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	if cfg.AccessTokenValidityDuration != 15*time.Minute {
		t.Fatalf("malformed duration must keep the default, got %v", cfg.AccessTokenValidityDuration)
	}
}
