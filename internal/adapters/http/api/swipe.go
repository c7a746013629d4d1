// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sreevallabh04/gitalong/internal/domain/model"
)

// SwipeHandler handles swipe ingestion requests.
type SwipeHandler struct {
	deps Dependencies
}

// NewSwipeHandler creates a new swipe handler.
func NewSwipeHandler(deps Dependencies) *SwipeHandler {
	return &SwipeHandler{deps: deps}
}

// swipeRequest mirrors the OpenAPI schema for POST /swipe. EventID is
// optional; omitting it disables idempotent retry for that swipe.
type swipeRequest struct {
	EventID   string `json:"event_id"`
	SwiperID  string `json:"swiper_id"`
	TargetID  string `json:"target_id"`
	Direction string `json:"direction"`
}

func (s swipeRequest) validate() error {
	switch {
	case strings.TrimSpace(s.SwiperID) == "":
		return errors.New("missing swiper_id")
	case strings.TrimSpace(s.TargetID) == "":
		return errors.New("missing target_id")
	case !model.Direction(s.Direction).Valid():
		return errors.New(`direction must be "accept" or "reject"`)
	}
	return nil
}

type ackResponse struct {
	Status    string `json:"status"`
	EventID   string `json:"event_id"`
	Duplicate bool   `json:"duplicate"`
}

// HandleSwipe handles POST /swipe requests. Swipes are ingested
// asynchronously: the handler acknowledges once the event is queued.
func (h *SwipeHandler) HandleSwipe(w http.ResponseWriter, r *http.Request) {
	const op = "api.swipe"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req swipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.EventID == "" {
		req.EventID = uuid.NewString()
	}

	// Idempotency check, mark as seen first.
	if h.deps.SeenAndRecord(r.Context(), req.EventID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", EventID: req.EventID, Duplicate: true})
		return
	}

	rec := model.Interaction{
		EventID:   req.EventID,
		ActorID:   req.SwiperID,
		TargetID:  req.TargetID,
		Direction: model.Direction(req.Direction),
		TS:        time.Now().UTC(),
	}
	if ok := h.deps.Enqueue(r.Context(), rec); !ok {
		// Roll back the "seen" status so the client can retry.
		h.deps.Unrecord(r.Context(), req.EventID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", EventID: req.EventID, Duplicate: false})
}
