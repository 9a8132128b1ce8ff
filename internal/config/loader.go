package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, layered over [Default], and
// validates the result. Useful in tests where configs are constructed from
// string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Server
	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if cfg.Server.Transport != "" && !cfg.Server.Transport.IsValid() {
		errs = append(errs, fmt.Errorf("server.transport %q is invalid; valid values: stdio, streamable-http", cfg.Server.Transport))
	}
	if cfg.Server.Transport == TransportStreamableHTTP && cfg.Server.ListenAddr == "" {
		errs = append(errs, errors.New("server.listen_addr is required when transport is streamable-http"))
	}

	// Upstream
	if cfg.Upstream.BaseURL == "" {
		errs = append(errs, errors.New("upstream.base_url must not be empty"))
	}
	if cfg.Upstream.StatsPath == "" {
		errs = append(errs, errors.New("upstream.stats_path must not be empty"))
	}
	for _, ph := range []string{"{start}", "{end}"} {
		if !strings.Contains(cfg.Upstream.PuzzlesPath, ph) {
			errs = append(errs, fmt.Errorf("upstream.puzzles_path %q must contain the %s placeholder", cfg.Upstream.PuzzlesPath, ph))
		}
	}
	if !strings.Contains(cfg.Upstream.DetailPath, "{date}") {
		errs = append(errs, fmt.Errorf("upstream.detail_path %q must contain the {date} placeholder", cfg.Upstream.DetailPath))
	}
	if cfg.Upstream.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("upstream.timeout_seconds must be positive, got %d", cfg.Upstream.TimeoutSeconds))
	}

	// Tools
	if cfg.Tools.MaxRecentDays < 1 {
		errs = append(errs, fmt.Errorf("tools.max_recent_days must be ≥ 1, got %d", cfg.Tools.MaxRecentDays))
	}

	return errors.Join(errs...)
}
