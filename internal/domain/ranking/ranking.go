// Package ranking combines the four compatibility signals into an overall
// score, orders candidates, and produces the bounded recommendation page.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sreevallabh04/gitalong/internal/domain/model"
	"github.com/sreevallabh04/gitalong/internal/domain/signals"
	"github.com/sreevallabh04/gitalong/internal/domain/types"
	"github.com/sreevallabh04/gitalong/pkg/logger"
	"github.com/sreevallabh04/gitalong/pkg/metrics"
)

// Page size bounds. Limits above MaxLimit fail validation instead of being
// clamped, so callers always get exactly what they asked for.
const (
	DefaultLimit = 20
	MaxLimit     = 50
)

// Sentinel kinds for ranking errors.
var (
	ErrInvalidLimit = errors.New("invalid recommendation limit")
)

// Default aggregation weights. Tech stack carries the most signal.
const (
	defaultTechWeight     = 0.35
	defaultBioWeight      = 0.25
	defaultActivityWeight = 0.20
	defaultCollabWeight   = 0.20
)

// Weights holds the per-signal aggregation weights.
type Weights struct {
	Tech          float64
	Bio           float64
	Activity      float64
	Collaborative float64
}

// DefaultWeights returns the shipped aggregation weights.
func DefaultWeights() Weights {
	return Weights{
		Tech:          defaultTechWeight,
		Bio:           defaultBioWeight,
		Activity:      defaultActivityWeight,
		Collaborative: defaultCollabWeight,
	}
}

// Overall applies w to the four signal values.
func (w Weights) Overall(tech, bio, activity, collab float64) float64 {
	return w.Tech*tech + w.Bio*bio + w.Activity*activity + w.Collaborative*collab
}

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithWeights sets the aggregation weights.
func WithWeights(w Weights) Option {
	return func(r *Ranker) {
		r.weights = w
	}
}

// WithThresholds sets the justification thresholds.
func WithThresholds(t Thresholds) Option {
	return func(r *Ranker) {
		r.thresholds = t
	}
}

// WithLogger sets a custom logger for the ranker.
func WithLogger(l logger.Logger) Option {
	return func(r *Ranker) {
		if l != nil {
			r.logger = l
		}
	}
}

// Ranker scores and orders candidates for a requester. Safe for concurrent
// use; all mutable state lives in the calculator's embedding cache.
type Ranker struct {
	calc       *signals.Calculator
	weights    Weights
	thresholds Thresholds
	logger     logger.Logger
}

// New creates a Ranker over the given calculator.
func New(calc *signals.Calculator, opts ...Option) *Ranker {
	r := &Ranker{
		calc:       calc,
		weights:    DefaultWeights(),
		thresholds: DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("ranking")
	}
	return r
}

// Rank scores every candidate (minus exclusions and the requester itself),
// sorts by overall score descending with identity as the deterministic
// tie-break, and truncates to limit.
//
// limit 0 yields an empty page without error; limit < 0 or > MaxLimit is
// ErrInvalidLimit. A candidate whose bio cannot be encoded is skipped with a
// warning so one bad profile does not lose the rest of the page; a
// requester-side encode failure fails the whole call. Cancelling ctx stops
// the scan between candidates; vectors already cached stay valid.
func (r *Ranker) Rank(ctx context.Context, requester model.Profile, candidates []model.Profile, history []model.Interaction, exclude map[string]struct{}, limit int) ([]types.Recommendation, error) {
	if limit < 0 || limit > MaxLimit {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrInvalidLimit, limit, MaxLimit)
	}
	if limit == 0 {
		return []types.Recommendation{}, nil
	}

	if err := r.calc.Warm(ctx, requester); err != nil {
		return nil, err
	}

	idx := signals.NewHistoryIndex(history)
	recs := make([]types.Recommendation, 0, len(candidates))

	for _, candidate := range candidates {
		if candidate.ID == requester.ID {
			continue
		}
		if _, skip := exclude[candidate.ID]; skip {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("ranking abandoned: %w", err)
		}

		tech := r.calc.TechOverlap(requester.TechStack, candidate.TechStack)
		bio, err := r.calc.BioSimilarity(ctx, requester, candidate)
		if err != nil {
			// Requester's vector is already warm, so this failure is the
			// candidate's; drop them and keep the page.
			r.logger.Warn(ctx, "skipping candidate: bio embedding failed",
				logger.String("candidate", candidate.ID),
				logger.Error(err),
			)
			metrics.RecordCandidateSkipped()
			continue
		}
		activity := r.calc.ActivityScore(requester.Stats, candidate.Stats)
		collab := r.calc.CollaborativeScore(requester.ID, candidate.ID, idx)

		scores := types.Scores{
			TechOverlap:   tech,
			BioSimilarity: bio,
			Activity:      activity,
			Collaborative: collab,
			Overall:       r.weights.Overall(tech, bio, activity, collab),
		}
		recs = append(recs, types.Recommendation{
			TargetUserID: candidate.ID,
			Scores:       scores,
			Reasons:      r.reasons(scores, requester, candidate),
		})
		metrics.RecordCandidateScored()
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Scores.Overall != recs[j].Scores.Overall {
			return recs[i].Scores.Overall > recs[j].Scores.Overall
		}
		return recs[i].TargetUserID < recs[j].TargetUserID
	})

	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}
