package ranking

import (
	"fmt"
	"strings"

	"github.com/sreevallabh04/gitalong/internal/domain/model"
	"github.com/sreevallabh04/gitalong/internal/domain/signals"
	"github.com/sreevallabh04/gitalong/internal/domain/types"
)

// maxReasons caps the justification list per recommendation.
const maxReasons = 3

// maxSharedTechNamed bounds how many shared technologies a reason names.
const maxSharedTechNamed = 3

// fallbackReason applies when no threshold triggers.
const fallbackReason = "Good potential for collaboration"

// Thresholds gates which justification strings a score profile earns.
type Thresholds struct {
	Tech          float64 // shared-technology reason
	BioHigh       float64 // "highly similar interests"
	BioMid        float64 // "similar background"
	Activity      float64
	Collaborative float64
}

// DefaultThresholds returns the shipped justification thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Tech:          0.7,
		BioHigh:       0.8,
		BioMid:        0.6,
		Activity:      0.7,
		Collaborative: 0.6,
	}
}

// reasons builds the human-readable justification list, highest-signal
// first, capped at maxReasons, with a generic fallback when nothing fires.
func (r *Ranker) reasons(s types.Scores, requester, candidate model.Profile) []string {
	reasons := make([]string, 0, maxReasons)

	if s.TechOverlap > r.thresholds.Tech {
		if shared := signals.SharedTech(requester.TechStack, candidate.TechStack, maxSharedTechNamed); len(shared) > 0 {
			reasons = append(reasons, fmt.Sprintf("Shared expertise in %s", strings.Join(shared, ", ")))
		}
	}

	switch {
	case s.BioSimilarity > r.thresholds.BioHigh:
		reasons = append(reasons, "Highly similar interests and goals")
	case s.BioSimilarity > r.thresholds.BioMid:
		reasons = append(reasons, "Similar background and interests")
	}

	if s.Activity > r.thresholds.Activity {
		reasons = append(reasons, "Similar GitHub activity levels")
	}

	if s.Collaborative > r.thresholds.Collaborative {
		reasons = append(reasons, "Liked by developers with similar preferences")
	}

	if requester.Role != candidate.Role {
		if requester.Role == model.RoleContributor && candidate.Role == model.RoleMaintainer {
			reasons = append(reasons, "Perfect match: you're looking to contribute, they need contributors")
		} else {
			reasons = append(reasons, "Complementary roles for collaboration")
		}
	}

	if len(reasons) == 0 {
		reasons = append(reasons, fallbackReason)
	}
	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return reasons
}
