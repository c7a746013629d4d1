// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sreevallabh04/gitalong/internal/domain/model"
)

// ProfileHandler handles profile registration requests.
type ProfileHandler struct {
	deps Dependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps Dependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

type profileResponse struct {
	Status string `json:"status"`
	UserID string `json:"user_id"`
}

// HandleUpsertProfile handles POST /users/profile requests. The body is the
// full profile document; an existing profile with the same id is replaced.
func (h *ProfileHandler) HandleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	const op = "api.upsert_profile"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var p model.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(p.ID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing id")))
		return
	}
	if _, err := h.deps.UpsertProfile(r.Context(), p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Status: "profile_received", UserID: p.ID})
}
