package signals

import (
	"math"

	"github.com/sreevallabh04/gitalong/internal/domain/model"
)

// HistoryIndex is a pre-built view of the swipe history for one ranking
// call: the accept set of each actor and the accepter set of each target.
// Building it once per call keeps candidate scoring O(1) instead of
// rescanning the full history per pair.
type HistoryIndex struct {
	acceptedBy  map[string]map[string]struct{} // actor -> targets they accepted
	acceptersOf map[string]map[string]struct{} // target -> actors who accepted them
}

// NewHistoryIndex indexes history by actor and by target, accepts only.
func NewHistoryIndex(history []model.Interaction) *HistoryIndex {
	idx := &HistoryIndex{
		acceptedBy:  make(map[string]map[string]struct{}),
		acceptersOf: make(map[string]map[string]struct{}),
	}
	for _, rec := range history {
		if rec.Direction != model.DirectionAccept {
			continue
		}
		if idx.acceptedBy[rec.ActorID] == nil {
			idx.acceptedBy[rec.ActorID] = make(map[string]struct{})
		}
		idx.acceptedBy[rec.ActorID][rec.TargetID] = struct{}{}
		if idx.acceptersOf[rec.TargetID] == nil {
			idx.acceptersOf[rec.TargetID] = make(map[string]struct{})
		}
		idx.acceptersOf[rec.TargetID][rec.ActorID] = struct{}{}
	}
	return idx
}

// AcceptedBy returns the set of identities actorID has accepted.
func (idx *HistoryIndex) AcceptedBy(actorID string) map[string]struct{} {
	return idx.acceptedBy[actorID]
}

// CollaborativeScore estimates compatibility from swipe-history overlap:
// how many identities the requester accepted also accepted the candidate.
//
// A requester with no accepts yet scores the neutral 0.5. A positive overlap
// c maps to min(c/5, 1); zero overlap maps to the fixed 0.3 penalty. This is
// a neighborhood-overlap heuristic, not a factorization model, and the
// divisor is kept exactly as the shipped behavior.
func (c *Calculator) CollaborativeScore(requesterID, candidateID string, idx *HistoryIndex) float64 {
	accepted := idx.acceptedBy[requesterID]
	if len(accepted) == 0 {
		return neutralScore
	}

	accepters := idx.acceptersOf[candidateID]
	common := 0
	for id := range accepted {
		if _, ok := accepters[id]; ok {
			common++
		}
	}
	if common > 0 {
		return math.Min(float64(common)/overlapDivisor, 1)
	}
	return noOverlapPenalty
}
