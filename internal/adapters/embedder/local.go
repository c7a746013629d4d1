// Package embedder provides embedding.Provider implementations: a local
// deterministic encoder and a Gemini-backed one.
package embedder

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/sreevallabh04/gitalong/internal/domain/embedding"
)

// Default local encoder configuration constants.
const (
	defaultDimensions = 384
	defaultMinLatency = 5 * time.Millisecond
	defaultMaxLatency = 20 * time.Millisecond
	defaultRandomSeed = 42
	localModelName    = "local-hash-v1"
)

// Option applies a configuration option to the Local encoder.
type Option func(*Local)

// WithDimensions sets the vector length.
func WithDimensions(n int) Option {
	return func(l *Local) {
		if n > 0 {
			l.dimensions = n
		}
	}
}

// WithLatencyRange sets the simulated model latency range.
func WithLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(l *Local) {
		if minLatency > 0 && maxLatency > minLatency {
			l.minLatency = minLatency
			l.maxLatency = maxLatency
		}
	}
}

// Local is a deterministic token-hash encoder that stands in for an external
// sentence-embedding model. Identical texts always map to identical vectors,
// and texts sharing vocabulary land close in cosine space, which is enough
// for the similarity heuristics and for tests. Latency is simulated to model
// the external service, honoring ctx for cancellation.
type Local struct {
	dimensions int
	minLatency time.Duration
	maxLatency time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewLocal creates a local encoder with configuration options.
func NewLocal(opts ...Option) *Local {
	l := &Local{
		dimensions: defaultDimensions,
		minLatency: defaultMinLatency,
		maxLatency: defaultMaxLatency,
		rng:        rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic seed for reproducible latency
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Encode produces a unit-length vector for text.
func (l *Local) Encode(ctx context.Context, text string) (embedding.Vector, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", embedding.ErrEncodeFailed)
	}

	// Simulate encoder latency
	l.mu.Lock()
	latency := l.minLatency + time.Duration(l.rng.Int63n(int64(l.maxLatency-l.minLatency)))
	l.mu.Unlock()
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", embedding.ErrEncodeFailed, ctx.Err())
	case <-time.After(latency):
	}

	vec := make([]float64, l.dimensions)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,:;!?()[]{}\"'")
		if token == "" {
			continue
		}
		h := fnv.New64a()
		_, _ = h.Write([]byte(token))
		sum := h.Sum64()
		idx := int(sum % uint64(l.dimensions))
		sign := 1.0
		if (sum>>32)&1 == 1 {
			sign = -1.0
		}
		vec[idx] += sign
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return nil, fmt.Errorf("%w: no encodable tokens", embedding.ErrEncodeFailed)
	}
	norm = math.Sqrt(norm)

	out := make(embedding.Vector, l.dimensions)
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out, nil
}

// Dimensions returns the vector length.
func (l *Local) Dimensions() int {
	return l.dimensions
}

// Model identifies the encoder.
func (l *Local) Model() string {
	return localModelName
}
