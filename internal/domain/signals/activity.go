package signals

import (
	"math"

	"github.com/sreevallabh04/gitalong/internal/domain/model"
)

// ActivityScore compares two activity-statistics records in [0, 1].
//
// A nil record on either side yields the neutral 0.5: no information, no
// bias. Otherwise the score blends a repository-count similarity term
// (rewarding comparable activity levels) with a contribution boost term
// (rewarding high absolute engagement from either party), 0.7/0.3.
func (c *Calculator) ActivityScore(statsA, statsB *model.ActivityStats) float64 {
	if statsA == nil || statsB == nil {
		return neutralScore
	}

	repoSum := float64(statsA.PublicRepos + statsB.PublicRepos)
	repoDiff := math.Abs(float64(statsA.PublicRepos - statsB.PublicRepos))
	repoSimilarity := 1 - repoDiff/math.Max(repoSum, 1)
	repoSimilarity = math.Max(0, math.Min(repoSimilarity, 1))

	boost := math.Min(float64(statsA.Contributions+statsB.Contributions)/c.contributionCap, 1)

	return repoSimilarityWeight*repoSimilarity + activityBoostWeight*boost
}
