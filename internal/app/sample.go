package service

import (
	"context"
	"fmt"

	"github.com/sreevallabh04/gitalong/internal/domain/model"
	"github.com/sreevallabh04/gitalong/pkg/logger"
)

// sampleProfiles is a tiny starter dataset for local development, so a
// freshly booted instance can serve recommendations immediately.
var sampleProfiles = []model.Profile{
	{
		ID:        "user1",
		Name:      "Alex Chen",
		Bio:       "Full-stack developer passionate about React and Node.js. Love contributing to open source projects.",
		TechStack: []string{"JavaScript", "TypeScript", "React", "Node.js", "Docker"},
		Role:      model.RoleContributor,
		Stats:     &model.ActivityStats{PublicRepos: 25, Followers: 150, Contributions: 280},
	},
	{
		ID:        "user2",
		Name:      "Sarah Kim",
		Bio:       "Mobile app developer specializing in Flutter. Looking for exciting projects to collaborate on.",
		TechStack: []string{"Dart", "Flutter", "Firebase", "Python"},
		Role:      model.RoleContributor,
		Stats:     &model.ActivityStats{PublicRepos: 18, Followers: 89, Contributions: 195},
	},
	{
		ID:        "user3",
		Name:      "Mike Rodriguez",
		Bio:       "Open source maintainer of several popular Python libraries. Always looking for contributors.",
		TechStack: []string{"Python", "Django", "PostgreSQL", "Docker", "Kubernetes"},
		Role:      model.RoleMaintainer,
		Stats:     &model.ActivityStats{PublicRepos: 42, Followers: 320, Contributions: 450},
	},
}

// SeedSampleData loads the built-in development profiles into the store.
func (s *Service) SeedSampleData(ctx context.Context) error {
	for _, p := range sampleProfiles {
		if _, err := s.profiles.Upsert(ctx, p); err != nil {
			return fmt.Errorf("seed sample profile %s: %w", p.ID, err)
		}
	}
	s.logger.Info(ctx, "populated sample data",
		logger.Int("profiles", len(sampleProfiles)),
	)
	return nil
}
