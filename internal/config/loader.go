package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if GITALONG_CONFIG is set
//  3. env (prefix GITALONG_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("GITALONG_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: GITALONG_ADDR, GITALONG_MAX_LIMIT, ...
	// Map env keys like GITALONG_MAX_LIMIT -> max_limit (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("GITALONG_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "gitalong_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxLimit <= 0:
		return fmt.Errorf("%w: max_limit must be positive", ErrInvalidConfig)
	case c.DefaultLimit <= 0 || c.DefaultLimit > c.MaxLimit:
		return fmt.Errorf("%w: default_limit must be in [1, max_limit]", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.Embedder != "local" && c.Embedder != "gemini":
		return fmt.Errorf("%w: embedder must be local or gemini", ErrInvalidConfig)
	case c.Embedder == "gemini" && c.GeminiAPIKey == "":
		return fmt.Errorf("%w: gemini embedder requires gemini_api_key", ErrInvalidConfig)
	}
	return nil
}
