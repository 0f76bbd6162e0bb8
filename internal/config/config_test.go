package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.JWTIssuer != "gridbet" {
		t.Fatalf("unexpected JWTIssuer: %q", cfg.JWTIssuer)
	}
	if cfg.JWTTokenTTL != 24*time.Hour {
		t.Fatalf("unexpected JWTTokenTTL: %s", cfg.JWTTokenTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_ProdRequiresJWTSecret(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APP_ENV=prod without JWT_SECRET")
	}
}

func TestLoad_RaceFeedRequiresBaseURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("RACEFEED_ENABLED", "true")
	t.Setenv("RACEFEED_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when RACEFEED_ENABLED=true without RACEFEED_BASE_URL")
	}
}

func TestLoad_RaceFeedConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("RACEFEED_ENABLED", "true")
	t.Setenv("RACEFEED_BASE_URL", "https://feed.example.com/v1")
	t.Setenv("RACEFEED_TIMEOUT", "5s")
	t.Setenv("RACEFEED_MAX_RETRIES", "3")
	t.Setenv("RACEFEED_CIRCUIT_FAILURE_COUNT", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.RaceFeedBaseURL != "https://feed.example.com/v1" {
		t.Fatalf("unexpected RaceFeedBaseURL: %q", cfg.RaceFeedBaseURL)
	}
	if cfg.RaceFeedTimeout != 5*time.Second {
		t.Fatalf("unexpected RaceFeedTimeout: %s", cfg.RaceFeedTimeout)
	}
	if cfg.RaceFeedMaxRetries != 3 {
		t.Fatalf("unexpected RaceFeedMaxRetries: %d", cfg.RaceFeedMaxRetries)
	}
	if cfg.RaceFeedCircuitFailureCount != 7 {
		t.Fatalf("unexpected RaceFeedCircuitFailureCount: %d", cfg.RaceFeedCircuitFailureCount)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}
