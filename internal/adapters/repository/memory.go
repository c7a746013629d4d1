package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sreevallabh04/gitalong/internal/domain/model"
	"github.com/sreevallabh04/gitalong/pkg/metrics"
)

// MemoryProfileStore is a concurrency-safe in-memory ProfileStore.
//
// Profiles are normalized on the way in: unknown roles collapse to
// "contributor" and stats stay nil when absent, so the engine never sees an
// unexpected shape.
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]model.Profile
}

// NewMemoryProfileStore creates an empty profile store.
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[string]model.Profile)}
}

// Upsert creates or replaces a profile.
func (s *MemoryProfileStore) Upsert(ctx context.Context, p model.Profile) (bool, error) {
	if strings.TrimSpace(p.ID) == "" {
		return false, fmt.Errorf("%w: empty id", ErrInvalidProfile)
	}
	normalizeProfile(&p)

	s.mu.Lock()
	_, existed := s.profiles[p.ID]
	s.profiles[p.ID] = p
	count := len(s.profiles)
	s.mu.Unlock()

	metrics.UpdateTotalUsers(count)
	return existed, nil
}

// Get returns the profile for id.
func (s *MemoryProfileStore) Get(ctx context.Context, id string) (model.Profile, error) {
	s.mu.RLock()
	p, ok := s.profiles[id]
	s.mu.RUnlock()
	if !ok {
		return model.Profile{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

// ListCandidates returns every profile except those in excluding.
func (s *MemoryProfileStore) ListCandidates(ctx context.Context, excluding map[string]struct{}) ([]model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Profile, 0, len(s.profiles))
	for id, p := range s.profiles {
		if _, skip := excluding[id]; skip {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Count returns the number of stored profiles.
func (s *MemoryProfileStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

// normalizeProfile rejects-or-normalizes loose shapes at the boundary so
// the calculators stay total functions.
func normalizeProfile(p *model.Profile) {
	if p.Role != model.RoleContributor && p.Role != model.RoleMaintainer {
		p.Role = model.RoleContributor
	}
	if p.Stats != nil {
		if p.Stats.PublicRepos < 0 {
			p.Stats.PublicRepos = 0
		}
		if p.Stats.Followers < 0 {
			p.Stats.Followers = 0
		}
		if p.Stats.Contributions < 0 {
			p.Stats.Contributions = 0
		}
	}
}

// MemoryInteractionStore is a concurrency-safe, append-only swipe log.
type MemoryInteractionStore struct {
	mu      sync.RWMutex
	records []model.Interaction
	accepts int
}

// NewMemoryInteractionStore creates an empty interaction store.
func NewMemoryInteractionStore() *MemoryInteractionStore {
	return &MemoryInteractionStore{}
}

// Append records one interaction.
func (s *MemoryInteractionStore) Append(ctx context.Context, rec model.Interaction) error {
	if !rec.Direction.Valid() {
		return fmt.Errorf("%w: direction %q", ErrInvalidInteraction, rec.Direction)
	}
	s.mu.Lock()
	s.records = append(s.records, rec)
	if rec.Direction == model.DirectionAccept {
		s.accepts++
	}
	count := len(s.records)
	s.mu.Unlock()

	metrics.UpdateTotalSwipes(count)
	return nil
}

// History returns a snapshot of the full ordered history.
func (s *MemoryInteractionStore) History(ctx context.Context) ([]model.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Interaction, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Count returns total and accepted interaction counts.
func (s *MemoryInteractionStore) Count(ctx context.Context) (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), s.accepts
}
