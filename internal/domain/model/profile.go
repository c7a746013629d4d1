// Package model contains domain models passed between layers.
package model

// Role classifies what a user is looking for on the platform.
type Role string

// Known roles. Anything else is normalized to RoleContributor at the
// repository boundary.
const (
	RoleContributor Role = "contributor"
	RoleMaintainer  Role = "maintainer"
)

// ActivityStats holds the structured activity counters attached to a profile.
// All fields default to zero; a missing record is represented by a nil
// *ActivityStats, which the activity signal treats as "no information".
type ActivityStats struct {
	PublicRepos   int `json:"public_repos"`
	Followers     int `json:"followers"`
	Contributions int `json:"contributions_last_year"`
}

// Profile represents a user eligible for matching.
// ID is the sole identity used for cache and repository lookups.
type Profile struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Bio          string         `json:"bio"`
	TechStack    []string       `json:"tech_stack"`
	GithubHandle string         `json:"github_handle"`
	Role         Role           `json:"role"`
	Location     string         `json:"location"`
	Stats        *ActivityStats `json:"github_stats,omitempty"`
}
