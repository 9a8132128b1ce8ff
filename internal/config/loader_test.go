package config_test

import (
	"strings"
	"testing"

	"github.com/solvegrid/solvegrid/internal/config"
)

func TestLoadFromReader_EmptyConfigUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Transport != config.TransportStdio {
		t.Errorf("default transport = %q, want stdio", cfg.Server.Transport)
	}
	if cfg.Upstream.BaseURL == "" {
		t.Error("default upstream base_url should not be empty")
	}
	if cfg.Upstream.TimeoutSeconds != 30 {
		t.Errorf("default timeout_seconds = %d, want 30", cfg.Upstream.TimeoutSeconds)
	}
	if cfg.Tools.MaxRecentDays != 90 {
		t.Errorf("default max_recent_days = %d, want 90", cfg.Tools.MaxRecentDays)
	}
}

func TestLoadFromReader_OverridesLayerOverDefaults(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: debug
tools:
  max_recent_days: 30
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.LogLevel != config.LogDebug {
		t.Errorf("log_level = %q, want debug", cfg.Server.LogLevel)
	}
	if cfg.Tools.MaxRecentDays != 30 {
		t.Errorf("max_recent_days = %d, want 30", cfg.Tools.MaxRecentDays)
	}
	// Untouched sections keep their defaults.
	if cfg.Upstream.UserAgent == "" {
		t.Error("upstream.user_agent default should survive a partial config")
	}
}

func TestLoadFromReader_UnknownKeysRejected(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_levle: debug
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: verbose
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for invalid log level, got nil")
	}
	if !strings.Contains(err.Error(), "log_level") {
		t.Errorf("error should mention log_level, got: %v", err)
	}
}

func TestValidate_InvalidTransport(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  transport: websocket
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for invalid transport, got nil")
	}
	if !strings.Contains(err.Error(), "transport") {
		t.Errorf("error should mention transport, got: %v", err)
	}
}

func TestValidate_StreamableHTTPRequiresListenAddr(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  transport: streamable-http
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for streamable-http without listen_addr, got nil")
	}
	if !strings.Contains(err.Error(), "listen_addr") {
		t.Errorf("error should mention listen_addr, got: %v", err)
	}
}

func TestValidate_PlaceholdersRequired(t *testing.T) {
	t.Parallel()
	yaml := `
upstream:
  puzzles_path: /v3/puzzles.json
  detail_path: /v6/game/daily.json
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for missing placeholders, got nil")
	}
	for _, want := range []string{"{start}", "{end}", "{date}"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention the %s placeholder, got: %v", want, err)
		}
	}
}

func TestValidate_JoinsAllFailures(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: loud
  transport: carrier-pigeon
upstream:
  timeout_seconds: -1
tools:
  max_recent_days: 0
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"log_level", "transport", "timeout_seconds", "max_recent_days"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error should mention %s, got: %v", want, err)
		}
	}
}
