// Package repository defines the profile and interaction store interfaces
// and their in-memory implementations.
//
// The matching engine reads profiles and swipe history through these
// interfaces for the duration of one ranking call; it never owns them.
package repository

import (
	"context"

	"github.com/sreevallabh04/gitalong/internal/domain/model"
)

// ProfileStore provides read/write access to user profiles.
type ProfileStore interface {
	// Upsert creates or replaces a profile. Returns true when an existing
	// profile was replaced.
	Upsert(ctx context.Context, p model.Profile) (bool, error)

	// Get returns the profile for id.
	// Returns ErrNotFound if the user is unknown.
	Get(ctx context.Context, id string) (model.Profile, error)

	// ListCandidates returns every profile except those in excluding.
	// Order is unspecified; the ranker sorts deterministically.
	ListCandidates(ctx context.Context, excluding map[string]struct{}) ([]model.Profile, error)

	// Count returns the number of stored profiles.
	Count(ctx context.Context) int
}

// InteractionStore is the append-only swipe log.
type InteractionStore interface {
	// Append records one interaction. Records are never mutated or deleted.
	Append(ctx context.Context, rec model.Interaction) error

	// History returns a snapshot of the full ordered history.
	History(ctx context.Context) ([]model.Interaction, error)

	// Count returns the number of recorded interactions, and how many of
	// them are accepts.
	Count(ctx context.Context) (total, accepts int)
}
