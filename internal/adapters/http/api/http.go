// Package api serves the finished leaderboards of a run over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/okian/clubrecords/internal/domain/catalog"
	"github.com/okian/clubrecords/internal/domain/leaderboard"
	"github.com/okian/clubrecords/internal/domain/types"
	"github.com/okian/clubrecords/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Boards is the read side of an aggregator. Handlers only read, so the
// aggregator must be complete before the server starts.
type Boards interface {
	Keys() []leaderboard.Key
	Board(key leaderboard.Key) (*leaderboard.Board, bool)
	Catalog() *catalog.Catalog
}

// Entry mirrors one rendered leaderboard row.
type Entry = types.Entry

// Server wires HTTP routes for the leaderboard API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	leaderboardHandler *LeaderboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(boards Boards, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		leaderboardHandler: NewLeaderboardHandler(boards),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/leaderboards", MetricsMiddleware(s.leaderboardHandler.HandleList, "leaderboards"))
	mux.HandleFunc("/leaderboards/", MetricsMiddleware(s.leaderboardHandler.HandleGet, "leaderboard"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
