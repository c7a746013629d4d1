// Package service provides the core matching service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/sreevallabh04/gitalong/internal/adapters/embedder"
	swipequeue "github.com/sreevallabh04/gitalong/internal/adapters/mq/queue"
	workerpool "github.com/sreevallabh04/gitalong/internal/adapters/mq/worker"
	"github.com/sreevallabh04/gitalong/internal/adapters/repository"
	"github.com/sreevallabh04/gitalong/internal/domain/dedupe"
	"github.com/sreevallabh04/gitalong/internal/domain/embedding"
	"github.com/sreevallabh04/gitalong/internal/domain/model"
	"github.com/sreevallabh04/gitalong/internal/domain/ranking"
	"github.com/sreevallabh04/gitalong/internal/domain/signals"
	"github.com/sreevallabh04/gitalong/internal/domain/types"
	"github.com/sreevallabh04/gitalong/pkg/logger"
	"github.com/sreevallabh04/gitalong/pkg/metrics"
)

// ErrUnknownRequester is returned when a recommendation is requested for a
// profile that was never registered.
var ErrUnknownRequester = errors.New("unknown requester")

// Confidence levels reported in page analytics.
const (
	confidenceHigh       = "high"
	confidenceMedium     = "medium"
	highConfidencePageSz = 5
)

// Service implements the API dependencies for the matching system.
type Service struct {
	mu sync.RWMutex

	// Core components
	profiles     repository.ProfileStore
	interactions repository.InteractionStore
	deduper      dedupe.Deduper
	swipeQueue   swipequeue.Queue
	embedCache   *embedding.Cache
	ranker       *ranking.Ranker
	workerPool   *workerpool.Pool

	// Configuration
	workerCount       int
	queueSize         int
	dedupeSize        int
	techWeights       map[string]float64
	defaultTechWeight float64
	contributionCap   int
	signalWeights     ranking.Weights
	thresholds        ranking.Thresholds
	defaultLimit      int
	provider          embedding.Provider

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of swipe worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the swipe queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the swipe deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTechWeights sets the per-technology weights used by the tech
// overlap signal. An empty map keeps the built-in table.
func WithTechWeights(weights map[string]float64) Option {
	return func(s *Service) {
		if len(weights) > 0 {
			s.techWeights = weights
		}
	}
}

// WithDefaultTechWeight sets the weight for technologies absent from the
// weight table.
func WithDefaultTechWeight(weight float64) Option {
	return func(s *Service) {
		s.defaultTechWeight = weight
	}
}

// WithContributionCap sets the contribution count at which the activity
// boost saturates.
func WithContributionCap(cap int) Option {
	return func(s *Service) {
		if cap > 0 {
			s.contributionCap = cap
		}
	}
}

// WithSignalWeights sets the blend of per-signal scores into the overall
// score.
func WithSignalWeights(w ranking.Weights) Option {
	return func(s *Service) {
		s.signalWeights = w
	}
}

// WithThresholds sets the score thresholds for reason generation.
func WithThresholds(t ranking.Thresholds) Option {
	return func(s *Service) {
		s.thresholds = t
	}
}

// WithDefaultLimit sets the page size used when callers do not request one.
func WithDefaultLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.defaultLimit = limit
		}
	}
}

// WithEmbeddingProvider sets the bio embedding backend. Defaults to the
// local deterministic encoder when unset.
func WithEmbeddingProvider(p embedding.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.provider = p
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:       runtime.NumCPU() * 2,
		queueSize:         100000,
		dedupeSize:        50000,
		techWeights:       signals.DefaultTechWeights(),
		defaultTechWeight: 0.5,
		contributionCap:   500,
		signalWeights:     ranking.DefaultWeights(),
		thresholds:        ranking.DefaultThresholds(),
		defaultLimit:      ranking.DefaultLimit,
		logger:            nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting matching service...")

	s.profiles = repository.NewMemoryProfileStore()
	s.interactions = repository.NewMemoryInteractionStore()
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.swipeQueue = swipequeue.NewInMemoryQueue(
		swipequeue.WithCapacity(s.queueSize),
	)

	if s.provider == nil {
		s.provider = embedder.NewLocal()
	}
	s.embedCache = embedding.NewCache(s.provider)

	calc := signals.NewCalculator(
		signals.WithTechWeightsFromConfig(s.techWeights, s.defaultTechWeight),
		signals.WithContributionCap(s.contributionCap),
		signals.WithEmbeddingCache(s.embedCache),
	)
	s.ranker = ranking.New(calc,
		ranking.WithWeights(s.signalWeights),
		ranking.WithThresholds(s.thresholds),
		ranking.WithLogger(s.logger),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.swipeQueue, s.interactions)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "matching service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.String("embedder", s.provider.Model()),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(ctx, "stopping matching service...")

	if s.workerPool != nil {
		s.workerPool.Stop(ctx)
	}
	if s.swipeQueue != nil {
		_ = s.swipeQueue.Close()
	}
	if closer, ok := s.provider.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.started = false
	s.logger.Info(ctx, "matching service stopped")
}

// UpsertProfile stores or replaces a developer profile. Any cached bio
// embedding for the user is dropped so the next recommendation re-encodes it.
func (s *Service) UpsertProfile(ctx context.Context, p model.Profile) (bool, error) {
	replaced, err := s.profiles.Upsert(ctx, p)
	if err != nil {
		return false, fmt.Errorf("upsert profile: %w", err)
	}
	s.embedCache.Invalidate(p.ID)
	metrics.UpdateCachedEmbeddings(s.embedCache.Len())

	s.logger.Debug(ctx, "profile upserted",
		logger.String("userID", p.ID),
		logger.Any("replaced", replaced),
	)
	return replaced, nil
}

// GetProfile returns the stored profile for id.
func (s *Service) GetProfile(ctx context.Context, id string) (model.Profile, error) {
	return s.profiles.Get(ctx, id)
}

// Recommend produces the ranked recommendation page for userID.
// exclude lists candidate IDs the caller wants filtered out. limit is passed
// through as-is: 0 yields an empty page, out-of-range values surface
// ranking.ErrInvalidLimit.
func (s *Service) Recommend(ctx context.Context, userID string, exclude []string, limit int, includeAnalytics bool) (types.Page, error) {
	start := time.Now()

	requester, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Keep the store sentinel in the chain so transports can map it.
			return types.Page{}, fmt.Errorf("%w: %s: %w", ErrUnknownRequester, userID, err)
		}
		return types.Page{}, fmt.Errorf("load requester: %w", err)
	}

	excluding := make(map[string]struct{}, len(exclude)+1)
	excluding[userID] = struct{}{}
	for _, id := range exclude {
		excluding[id] = struct{}{}
	}

	candidates, err := s.profiles.ListCandidates(ctx, excluding)
	if err != nil {
		return types.Page{}, fmt.Errorf("list candidates: %w", err)
	}

	history, err := s.interactions.History(ctx)
	if err != nil {
		return types.Page{}, fmt.Errorf("load history: %w", err)
	}

	recs, err := s.ranker.Rank(ctx, requester, candidates, history, nil, limit)
	if err != nil {
		return types.Page{}, err
	}

	page := types.Page{
		UserID:          userID,
		Recommendations: recs,
	}
	if includeAnalytics {
		page.Analytics = buildAnalytics(len(candidates), recs)
	}

	metrics.RecordRecommendationServed()
	metrics.RecordRankingLatency(float64(time.Since(start).Milliseconds()))

	return page, nil
}

// buildAnalytics summarizes a produced page. Averages cover the returned
// page only, not the full candidate pool.
func buildAnalytics(poolSize int, recs []types.Recommendation) *types.Analytics {
	a := &types.Analytics{
		CandidatePoolSize: poolSize,
		Confidence:        confidenceMedium,
	}
	if len(recs) > highConfidencePageSz {
		a.Confidence = confidenceHigh
	}
	if len(recs) == 0 {
		return a
	}
	var tech, bio float64
	for _, r := range recs {
		tech += r.Scores.TechOverlap
		bio += r.Scores.BioSimilarity
	}
	a.AvgTechScore = tech / float64(len(recs))
	a.AvgBioScore = bio / float64(len(recs))
	return a
}

// DefaultLimit returns the configured default page size.
func (s *Service) DefaultLimit() int {
	return s.defaultLimit
}

// SeenAndRecord atomically checks if a swipe event id was seen and records
// it if not. Returns true if the event was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordSwipeDuplicate()
	}
	return seen
}

// Unrecord removes a swipe event ID from the seen list, allowing a retry
// after a failed enqueue.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Enqueue submits a swipe for asynchronous ingestion. Returns false on
// backpressure.
func (s *Service) Enqueue(ctx context.Context, rec model.Interaction) bool {
	ok := s.swipeQueue.Enqueue(ctx, rec)
	if ok {
		metrics.UpdateQueueSize(s.swipeQueue.Len(ctx))
	}
	return ok
}

// InvalidateEmbedding drops the cached bio vector for userID.
func (s *Service) InvalidateEmbedding(userID string) {
	s.embedCache.Invalidate(userID)
	metrics.UpdateCachedEmbeddings(s.embedCache.Len())
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":      s.started,
		"worker_count": s.workerCount,
		"queue_size":   s.queueSize,
		"dedupe_size":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.swipeQueue.Len(ctx)
		totalUsers := s.profiles.Count(ctx)
		totalSwipes, accepts := s.interactions.Count(ctx)

		acceptRate := 0.0
		if totalSwipes > 0 {
			acceptRate = float64(accepts) / float64(totalSwipes)
		}

		stats["queue_length"] = queueLen
		stats["total_users"] = totalUsers
		stats["total_swipes"] = totalSwipes
		stats["accept_rate"] = acceptRate
		stats["cached_embeddings"] = s.embedCache.Len()
		stats["embedding_model"] = s.provider.Model()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalUsers(totalUsers)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
