// Command solvegrid is an MCP server exposing read-only query tools over a
// personal NYT Crossword statistics account.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/solvegrid/solvegrid/internal/config"
	"github.com/solvegrid/solvegrid/internal/health"
	"github.com/solvegrid/solvegrid/internal/mcpserver"
	"github.com/solvegrid/solvegrid/internal/nyt"
	"github.com/solvegrid/solvegrid/internal/observe"
	"github.com/solvegrid/solvegrid/internal/stats"
)

const version = "1.0.0"

// cookieEnv is the environment variable holding the NYT session cookie.
const cookieEnv = "NYT_COOKIE"

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// An optional .env file may carry the session cookie during development.
	_ = godotenv.Load()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = config.Default()
		} else {
			fmt.Fprintf(os.Stderr, "solvegrid: %v\n", err)
			return 1
		}
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	// Logs go to stderr; stdout belongs to the stdio MCP transport.
	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	slog.Info("solvegrid starting",
		"version", version,
		"transport", cfg.Server.Transport,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	// ── Credential ────────────────────────────────────────────────────────────
	cookie := os.Getenv(cookieEnv)
	if cookie == "" {
		slog.Error("missing credential", "env", cookieEnv)
		fmt.Fprintf(os.Stderr, "solvegrid: the %s environment variable must be set\n", cookieEnv)
		return 1
	}

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Observability ─────────────────────────────────────────────────────────
	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "solvegrid",
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	// ── Upstream client and query layer ───────────────────────────────────────
	upstream, err := nyt.New(cookie,
		nyt.WithBaseURL(cfg.Upstream.BaseURL),
		nyt.WithEndpoints(cfg.Upstream.StatsPath, cfg.Upstream.PuzzlesPath, cfg.Upstream.DetailPath),
		nyt.WithUserAgent(cfg.Upstream.UserAgent),
		nyt.WithTimeout(time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		slog.Error("failed to create upstream client", "err", err)
		return 1
	}

	statsClient := stats.New(upstream, stats.WithMaxRecentDays(cfg.Tools.MaxRecentDays))
	server := mcpserver.New(statsClient, version, observe.DefaultMetrics())

	// ── Serve ─────────────────────────────────────────────────────────────────
	if err := serve(ctx, cfg, server, statsClient); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("serve error", "err", err)
		return 1
	}

	slog.Info("goodbye")
	return 0
}

// serve runs the configured MCP transport, plus the HTTP listener for
// metrics and health endpoints when an address is configured, until ctx is
// cancelled or a component fails.
func serve(ctx context.Context, cfg *config.Config, server *mcpserver.Server, statsClient *stats.Client) error {
	g, gctx := errgroup.WithContext(ctx)

	if cfg.Server.ListenAddr != "" {
		mux := http.NewServeMux()

		checker := health.New(health.Checker{
			Name: "upstream",
			Check: func(ctx context.Context) error {
				_, err := statsClient.SolveStats(ctx)
				return err
			},
		})
		mux.HandleFunc("GET /healthz", checker.Healthz)
		mux.HandleFunc("GET /readyz", checker.Readyz)
		mux.Handle("GET /metrics", promhttp.Handler())

		if cfg.Server.Transport == config.TransportStreamableHTTP {
			mux.Handle("/mcp", server.HTTPHandler())
		}

		httpServer := &http.Server{
			Addr:    cfg.Server.ListenAddr,
			Handler: observe.Middleware(observe.DefaultMetrics())(mux),
		}

		g.Go(func() error {
			slog.Info("http listener ready", "addr", cfg.Server.ListenAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
	}

	if cfg.Server.Transport != config.TransportStreamableHTTP {
		g.Go(func() error {
			slog.Info("serving MCP over stdio")
			return server.Run(gctx, &mcpsdk.StdioTransport{})
		})
	}

	return g.Wait()
}

// newLogger builds the process-wide text logger writing to stderr.
func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
