package loadgen

import "time"

// Config holds configuration for the load generator.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumProfiles int           // Number of profiles to register
	NumSwipes   int           // Number of swipes to submit
	PageSize    int           // Recommendation page size to request
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	LogFile     string        // Log file for run output
	Verbose     bool          // Enable verbose logging
}

// Profile mirrors the profile document accepted by POST /users/profile.
type Profile struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Bio       string   `json:"bio"`
	TechStack []string `json:"tech_stack"`
	Role      string   `json:"role"`
	Stats     *Stats64 `json:"github_stats,omitempty"`
}

// Stats64 mirrors the github_stats document.
type Stats64 struct {
	PublicRepos   int `json:"public_repos"`
	Followers     int `json:"followers"`
	Contributions int `json:"contributions_last_year"`
}

// Swipe mirrors the body accepted by POST /swipe.
type Swipe struct {
	EventID   string `json:"event_id"`
	SwiperID  string `json:"swiper_id"`
	TargetID  string `json:"target_id"`
	Direction string `json:"direction"`
}

// AckResponse represents the response from swipe submission.
type AckResponse struct {
	Status    string `json:"status"`
	EventID   string `json:"event_id"`
	Duplicate bool   `json:"duplicate"`
}

// Recommendation mirrors one entry of a recommendation page.
type Recommendation struct {
	TargetUserID string `json:"target_user_id"`
	Scores       struct {
		Overall float64 `json:"overall_score"`
	} `json:"scores"`
	Reasons []string `json:"match_reasons"`
}

// Page mirrors the POST /recommendations response.
type Page struct {
	UserID          string           `json:"user_id"`
	Recommendations []Recommendation `json:"recommendations"`
}

// RunStats holds load run statistics.
type RunStats struct {
	ProfilesRegistered int
	SwipesSubmitted    int
	SwipesAccepted     int
	SwipesDuplicate    int
	SwipesFailed       int
	PagesRetrieved     int
	OrderingViolations int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
