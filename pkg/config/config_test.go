package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if !cfg.App.IsProd() || cfg.App.IsDev() {
		t.Fatal("expected production environment checks to hold")
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}
	if cfg.Session.TTL != 720*time.Hour {
		t.Fatalf("unexpected session TTL: %v", cfg.Session.TTL)
	}
	if cfg.Collections.RecentlyViewedCap != 10 {
		t.Fatalf("expected recently viewed cap default 10, got %d", cfg.Collections.RecentlyViewedCap)
	}
	if cfg.Upstream.Timeout != 10*time.Second {
		t.Fatalf("unexpected upstream timeout: %v", cfg.Upstream.Timeout)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsRelativeUpstreamURL(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvUpstreamURL, "catalog.internal/api")

	if _, err := Load(); err == nil {
		t.Fatal("expected relative upstream url to be rejected")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvJWTSecret, "secret")
	t.Setenv(EnvJWTIssuer, "shopfront")
	t.Setenv(EnvUpstreamURL, "https://catalog.internal/api")
}
