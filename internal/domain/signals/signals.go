// Package signals implements the four independent compatibility signals that
// feed the overall match score: tech-stack overlap, bio semantic similarity,
// activity similarity, and collaborative filtering over swipe history.
//
// Every signal is a total function over well-formed input and returns a value
// in [0, 1]. Missing optional data (stats, bio, tech stack) maps to a neutral
// or zero score, never to an error; the one exception is bio similarity,
// which can fail when the embedding provider does.
package signals

import (
	"github.com/sreevallabh04/gitalong/internal/domain/embedding"
)

// Default signal configuration constants.
const (
	// defaultTechWeight applies to technologies absent from the weight table.
	defaultTechWeight = 0.5
	// techNormFactor scales the max-based overlap denominator.
	techNormFactor = 0.9
	// repoSimilarityWeight and activityBoostWeight split the activity score.
	repoSimilarityWeight = 0.7
	activityBoostWeight  = 0.3
	// contributionCap is the combined contribution count that saturates the
	// activity boost.
	contributionCap = 500
	// neutralScore is returned when a signal has no information to go on.
	neutralScore = 0.5
	// noOverlapPenalty is the collaborative score when the requester has
	// preferences but none of them accepted the candidate. Mild negative:
	// absence of overlap is weaker evidence than active disagreement.
	noOverlapPenalty = 0.3
	// overlapDivisor converts a shared-accepter count into a score.
	// Kept as observed in the shipped heuristic.
	overlapDivisor = 5
)

// DefaultTechWeights is the per-technology weight table used when none is
// configured. Keys are lower-case; lookups normalize the same way.
func DefaultTechWeights() map[string]float64 {
	return map[string]float64{
		"javascript": 0.9, "typescript": 0.9, "python": 0.9,
		"react": 0.8, "flutter": 0.8, "node.js": 0.8,
		"docker": 0.7, "kubernetes": 0.7, "aws": 0.7,
		"go": 0.6, "rust": 0.6, "swift": 0.6,
	}
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithTechWeightsFromConfig sets per-technology weights from a configuration
// map. Keys are normalized to lower case; non-positive weights are dropped.
// An empty map keeps the built-in table.
func WithTechWeightsFromConfig(weights map[string]float64, defaultWeight float64) Option {
	return func(c *Calculator) {
		if len(weights) > 0 {
			c.techWeights = normalizeWeights(weights)
		}
		if defaultWeight > 0 {
			c.defaultTechWeight = defaultWeight
		}
	}
}

// WithContributionCap sets the combined contribution count that saturates
// the activity boost term.
func WithContributionCap(cap int) Option {
	return func(c *Calculator) {
		if cap > 0 {
			c.contributionCap = float64(cap)
		}
	}
}

// WithEmbeddingCache sets the cache consulted by the bio similarity signal.
func WithEmbeddingCache(cache *embedding.Cache) Option {
	return func(c *Calculator) {
		if cache != nil {
			c.embeddings = cache
		}
	}
}

// Calculator computes the four signals. It is stateless apart from the
// shared embedding cache and safe for concurrent use.
type Calculator struct {
	techWeights       map[string]float64
	defaultTechWeight float64
	contributionCap   float64
	embeddings        *embedding.Cache
}

// NewCalculator creates a calculator with configuration options.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		techWeights:       DefaultTechWeights(),
		defaultTechWeight: defaultTechWeight,
		contributionCap:   contributionCap,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func normalizeWeights(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for tech, w := range in {
		if w > 0 {
			out[lower(tech)] = w
		}
	}
	return out
}
