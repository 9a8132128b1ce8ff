// Package config provides the configuration schema and loader for the
// Solvegrid MCP server.
package config

// LogLevel controls log verbosity for the Solvegrid server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Transport selects how the MCP server is exposed to its host runtime.
type Transport string

const (
	// TransportStdio serves a single MCP session over stdin/stdout. This is
	// the default and matches how MCP hosts typically launch tool servers.
	TransportStdio Transport = "stdio"

	// TransportStreamableHTTP serves MCP over the streamable-HTTP transport
	// on Server.ListenAddr. The same listener also exposes /metrics,
	// /healthz, and /readyz.
	TransportStreamableHTTP Transport = "streamable-http"
)

// IsValid reports whether t is a recognised transport.
func (t Transport) IsValid() bool {
	return t == TransportStdio || t == TransportStreamableHTTP
}

// Config is the root configuration structure for Solvegrid.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Tools    ToolsConfig    `yaml:"tools"`
}

// ServerConfig holds transport and logging settings for the server process.
type ServerConfig struct {
	// LogLevel controls verbosity. Logs go to stderr; stdout is reserved
	// for the stdio MCP transport.
	LogLevel LogLevel `yaml:"log_level"`

	// Transport selects the MCP transport ("stdio" or "streamable-http").
	Transport Transport `yaml:"transport"`

	// ListenAddr is the TCP address for the streamable-http transport and
	// the metrics/health endpoints (e.g., ":8080"). Required when Transport
	// is "streamable-http"; when set under the stdio transport the address
	// still serves /metrics, /healthz, and /readyz.
	ListenAddr string `yaml:"listen_addr"`
}

// UpstreamConfig describes the NYT crossword statistics API. The exact
// endpoint paths are account- and version-specific and may change without
// notice, so the full mapping lives in configuration with defaults that
// match the live service.
type UpstreamConfig struct {
	// BaseURL is the root of the crossword API.
	BaseURL string `yaml:"base_url"`

	// StatsPath is the aggregate stats-and-streaks endpoint path.
	StatsPath string `yaml:"stats_path"`

	// PuzzlesPath is the calendar listing endpoint path. It must contain
	// the {start} and {end} placeholders, replaced with ISO dates bounding
	// the requested window.
	PuzzlesPath string `yaml:"puzzles_path"`

	// DetailPath is the single-puzzle detail endpoint path. It must contain
	// the {date} placeholder, replaced with the requested ISO date.
	DetailPath string `yaml:"detail_path"`

	// UserAgent is sent on every upstream request.
	UserAgent string `yaml:"user_agent"`

	// TimeoutSeconds bounds each upstream request. A timed-out request
	// fails the tool invocation; there are no retries.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// ToolsConfig holds limits applied to tool arguments.
type ToolsConfig struct {
	// MaxRecentDays caps the days argument of get_recent_solves.
	MaxRecentDays int `yaml:"max_recent_days"`
}

// Default returns a Config populated with the defaults for the live NYT
// service. A zero-configuration process serves MCP over stdio with these
// values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			LogLevel:  LogInfo,
			Transport: TransportStdio,
		},
		Upstream: UpstreamConfig{
			BaseURL:        "https://www.nytimes.com/svc/crosswords",
			StatsPath:      "/v3/stats-and-streaks.json",
			PuzzlesPath:    "/v3/puzzles.json?publish_type=daily&date_start={start}&date_end={end}",
			DetailPath:     "/v6/game/daily/{date}.json",
			UserAgent:      "solvegrid personal stats",
			TimeoutSeconds: 30,
		},
		Tools: ToolsConfig{
			MaxRecentDays: 90,
		},
	}
}
