package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestEnvOr(t *testing.T) {
	// Unset key returns fallback
	os.Unsetenv("TEST_ENVOR_KEY")
	if got := envOr("TEST_ENVOR_KEY", "default"); got != "default" {
		t.Errorf("envOr unset key = %q, want %q", got, "default")
	}

	// Set key returns value
	os.Setenv("TEST_ENVOR_KEY", "custom")
	defer os.Unsetenv("TEST_ENVOR_KEY")
	if got := envOr("TEST_ENVOR_KEY", "default"); got != "custom" {
		t.Errorf("envOr set key = %q, want %q", got, "custom")
	}

	// Empty string returns fallback
	os.Setenv("TEST_ENVOR_KEY", "")
	if got := envOr("TEST_ENVOR_KEY", "fallback"); got != "fallback" {
		t.Errorf("envOr empty key = %q, want %q", got, "fallback")
	}
}

func TestDurationOr(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 30 * time.Second},
		{"5s", 5 * time.Second},
		{"1m30s", 90 * time.Second},
		{"soon", 30 * time.Second},
		{"-1s", 30 * time.Second},
	}
	for _, tt := range tests {
		t.Setenv("TEST_DURATION_KEY", tt.value)
		if got := durationOr("TEST_DURATION_KEY", 30*time.Second); got != tt.want {
			t.Errorf("durationOr(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	// Clear all relevant env vars
	for _, k := range []string{"PORT", "FRONTEND_ORIGIN", "LOG_LEVEL", "SMARDEX_SUBGRAPH_API_KEY", "SUBGRAPH_TIMEOUT", "INFISICAL_CLIENT_ID", "INFISICAL_CLIENT_SECRET"} {
		os.Unsetenv(k)
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.FrontendOrigin != "*" {
		t.Errorf("FrontendOrigin = %q, want %q", cfg.FrontendOrigin, "*")
	}
	if cfg.SubgraphAPIKey != "" {
		t.Errorf("SubgraphAPIKey = %q, want empty", cfg.SubgraphAPIKey)
	}
	if cfg.SubgraphTimeout != 30*time.Second {
		t.Errorf("SubgraphTimeout = %v, want 30s", cfg.SubgraphTimeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want INFO", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FRONTEND_ORIGIN", "http://localhost:3000")
	t.Setenv("SMARDEX_SUBGRAPH_API_KEY", "test-key")
	t.Setenv("SUBGRAPH_TIMEOUT", "10s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.FrontendOrigin != "http://localhost:3000" {
		t.Errorf("FrontendOrigin = %q, want %q", cfg.FrontendOrigin, "http://localhost:3000")
	}
	if cfg.SubgraphAPIKey != "test-key" {
		t.Errorf("SubgraphAPIKey = %q, want %q", cfg.SubgraphAPIKey, "test-key")
	}
	if cfg.SubgraphTimeout != 10*time.Second {
		t.Errorf("SubgraphTimeout = %v, want 10s", cfg.SubgraphTimeout)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want DEBUG", cfg.LogLevel)
	}
}
