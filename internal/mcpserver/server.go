// Package mcpserver exposes the crossword statistics queries as MCP tools
// using the official MCP Go SDK (github.com/modelcontextprotocol/go-sdk).
//
// Three tools are registered:
//   - "get_solve_stats"     — account-wide solving summary.
//   - "get_recent_solves"   — per-day results for a recent window.
//   - "get_puzzle_details"  — full record for a single puzzle date.
//
// Handler errors surface to the host as failed tool results with a
// human-readable message; no partial results are ever returned.
package mcpserver

import (
	"context"
	"net/http"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/solvegrid/solvegrid/internal/observe"
	"github.com/solvegrid/solvegrid/internal/stats"
)

// Server wraps an MCP server with the three stats tools registered.
type Server struct {
	mcp     *mcpsdk.Server
	stats   *stats.Client
	metrics *observe.Metrics
}

// New creates a Server backed by the given stats client. version is reported
// to the MCP host during initialisation. metrics may be nil, in which case
// [observe.DefaultMetrics] is used.
func New(sc *stats.Client, version string, metrics *observe.Metrics) *Server {
	if metrics == nil {
		metrics = observe.DefaultMetrics()
	}
	s := &Server{
		mcp: mcpsdk.NewServer(
			&mcpsdk.Implementation{Name: "solvegrid", Version: version},
			nil,
		),
		stats:   sc,
		metrics: metrics,
	}

	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name: "get_solve_stats",
		Description: "Get overall NYT crossword solving statistics for the account: " +
			"total puzzles solved, current and best streaks, and average solve time.",
	}, s.getSolveStats)

	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name: "get_recent_solves",
		Description: "Get per-day crossword results for the most recent days, " +
			"ordered most recent first.",
	}, s.getRecentSolves)

	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name: "get_puzzle_details",
		Description: "Get the full record for the crossword published on a specific " +
			"date: completion status, solve time, hint usage, and puzzle metadata.",
	}, s.getPuzzleDetails)

	return s
}

// Run serves a single MCP session over t and blocks until the session ends
// or ctx is cancelled. For the stdio transport pass [mcpsdk.StdioTransport].
func (s *Server) Run(ctx context.Context, t mcpsdk.Transport) error {
	return s.mcp.Run(ctx, t)
}

// HTTPHandler returns the streamable-HTTP handler for this server, suitable
// for mounting on a mux alongside /metrics and the health endpoints.
func (s *Server) HTTPHandler() http.Handler {
	return mcpsdk.NewStreamableHTTPHandler(
		func(*http.Request) *mcpsdk.Server { return s.mcp },
		nil,
	)
}
