// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sreevallabh04/gitalong/internal/adapters/repository"
	"github.com/sreevallabh04/gitalong/internal/domain/ranking"
)

// RecommendationsHandler handles recommendation page requests.
type RecommendationsHandler struct {
	deps Dependencies
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps Dependencies) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps}
}

// recommendationRequest mirrors the OpenAPI schema for POST /recommendations.
// MaxRecommendations is a pointer so an explicit 0 (empty page) can be told
// apart from an omitted field (server default).
type recommendationRequest struct {
	UserID             string   `json:"user_id"`
	ExcludeUserIDs     []string `json:"exclude_user_ids"`
	MaxRecommendations *int     `json:"max_recommendations"`
	IncludeAnalytics   bool     `json:"include_analytics"`
}

func (r recommendationRequest) validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("missing user_id")
	}
	return nil
}

// HandleRecommendations handles POST /recommendations requests.
func (h *RecommendationsHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommendations"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	limit := h.deps.DefaultLimit()
	if req.MaxRecommendations != nil {
		limit = *req.MaxRecommendations
	}

	page, err := h.deps.Recommend(r.Context(), req.UserID, req.ExcludeUserIDs, limit, req.IncludeAnalytics)
	if err != nil {
		switch {
		case errors.Is(err, ranking.ErrInvalidLimit):
			writeError(w, http.StatusBadRequest, "invalid_limit", Wrap(op, err))
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, page)
}
