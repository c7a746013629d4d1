// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sreevallabh04/gitalong/internal/domain/model"
	"github.com/sreevallabh04/gitalong/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// UpsertProfile registers or replaces a developer profile.
	UpsertProfile(ctx context.Context, p model.Profile) (bool, error)

	// Recommend produces a ranked recommendation page.
	Recommend(ctx context.Context, userID string, exclude []string, limit int, includeAnalytics bool) (types.Page, error)

	// DefaultLimit is the page size used when a request omits one.
	DefaultLimit() int

	// Swipe ingestion primitives.
	SeenAndRecord(ctx context.Context, id string) bool
	Unrecord(ctx context.Context, id string)
	Enqueue(ctx context.Context, rec model.Interaction) bool
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	profileHandler         *ProfileHandler
	recommendationsHandler *RecommendationsHandler
	swipeHandler           *SwipeHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		profileHandler:         NewProfileHandler(deps),
		recommendationsHandler: NewRecommendationsHandler(deps),
		swipeHandler:           NewSwipeHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/users/profile", MetricsMiddleware(s.profileHandler.HandleUpsertProfile, "users_profile"))
	mux.HandleFunc("/recommendations", MetricsMiddleware(s.recommendationsHandler.HandleRecommendations, "recommendations"))
	mux.HandleFunc("/swipe", MetricsMiddleware(s.swipeHandler.HandleSwipe, "swipe"))
	mux.HandleFunc("/analytics/stats", MetricsMiddleware(s.statsHandler.HandleStats, "analytics_stats"))
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
