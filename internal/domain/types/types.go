// Package types contains common types used across the application
package types

// Scores breaks a recommendation's overall score down by signal.
// Every value is in [0, 1].
type Scores struct {
	TechOverlap   float64 `json:"tech_overlap_score"`
	BioSimilarity float64 `json:"bio_similarity_score"`
	Activity      float64 `json:"github_activity_score"`
	Collaborative float64 `json:"collaborative_score"`
	Overall       float64 `json:"overall_score"`
}

// Recommendation is one ranked candidate in a page.
type Recommendation struct {
	TargetUserID string   `json:"target_user_id"`
	Scores       Scores   `json:"scores"`
	Reasons      []string `json:"match_reasons"`
}

// Analytics summarizes a produced page when the caller asks for it.
type Analytics struct {
	CandidatePoolSize int     `json:"total_potential_matches"`
	AvgTechScore      float64 `json:"avg_tech_score"`
	AvgBioScore       float64 `json:"avg_bio_score"`
	Confidence        string  `json:"model_confidence"`
}

// Page is the ordered recommendation response for one requester.
type Page struct {
	UserID          string           `json:"user_id"`
	Recommendations []Recommendation `json:"recommendations"`
	Analytics       *Analytics       `json:"analytics,omitempty"`
}
