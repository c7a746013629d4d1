// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Heuristic weights and thresholds live here as data, not in scoring logic.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// DefaultLimit is the page size when a request omits max_recommendations.
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit bounds DefaultLimit during validation. The per-request page
	// ceiling is fixed in the ranking package, not configurable here.
	MaxLimit int `koanf:"max_limit"`

	// SwipeQueueSize bounds the in-memory swipe ingestion queue.
	SwipeQueueSize int `koanf:"swipe_queue_size"`

	// WorkerCount sets the number of swipe ingestion workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the swipe-event idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// TechWeights maps technology labels to their overlap weights.
	TechWeights map[string]float64 `koanf:"tech_weights"`

	// DefaultTechWeight is used for technologies not in TechWeights.
	DefaultTechWeight float64 `koanf:"default_tech_weight"`

	// Signal aggregation weights. Must be positive; they are not required to
	// sum to 1 but the defaults do.
	TechSignalWeight     float64 `koanf:"tech_signal_weight"`
	BioSignalWeight      float64 `koanf:"bio_signal_weight"`
	ActivitySignalWeight float64 `koanf:"activity_signal_weight"`
	CollabSignalWeight   float64 `koanf:"collab_signal_weight"`

	// ContributionCap saturates the activity boost term.
	ContributionCap int `koanf:"contribution_cap"`

	// Embedder selects the embedding provider: "local" or "gemini".
	Embedder string `koanf:"embedder"`

	// EmbedderDimensions sets the local encoder's vector length.
	EmbedderDimensions int `koanf:"embedder_dimensions"`

	// EmbedderLatencyMinMS and EmbedderLatencyMaxMS bound the local
	// encoder's simulated model latency.
	EmbedderLatencyMinMS int `koanf:"embedder_latency_min_ms"`
	EmbedderLatencyMaxMS int `koanf:"embedder_latency_max_ms"`

	// GeminiModel and GeminiAPIKey configure the Gemini provider.
	GeminiModel  string `koanf:"gemini_model"`
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// SeedSampleData loads the built-in sample profiles at startup.
	SeedSampleData bool `koanf:"seed_sample_data"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":8000",
		DefaultLimit:         20,
		MaxLimit:             50,
		SwipeQueueSize:       100_000,
		WorkerCount:          runtime.NumCPU() * 2,
		DedupeSize:           500_000,
		TechWeights:          nil, // engine defaults apply when empty
		DefaultTechWeight:    0.5,
		TechSignalWeight:     0.35,
		BioSignalWeight:      0.25,
		ActivitySignalWeight: 0.20,
		CollabSignalWeight:   0.20,
		ContributionCap:      500,
		Embedder:             "local",
		EmbedderDimensions:   384,
		EmbedderLatencyMinMS: 5,
		EmbedderLatencyMaxMS: 20,
		GeminiModel:          "text-embedding-004",
		SeedSampleData:       false,
	}
}
