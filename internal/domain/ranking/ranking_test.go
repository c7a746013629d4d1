package ranking_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sreevallabh04/gitalong/internal/domain/embedding"
	"github.com/sreevallabh04/gitalong/internal/domain/model"
	"github.com/sreevallabh04/gitalong/internal/domain/ranking"
	"github.com/sreevallabh04/gitalong/internal/domain/signals"
	. "github.com/smartystreets/goconvey/convey"
)

// stubProvider returns a deterministic vector per text and fails on a
// sentinel text so candidate-side encode failures can be simulated.
type stubProvider struct{}

const poisonBio = "poison: this bio cannot be encoded"

func (stubProvider) Encode(_ context.Context, text string) (embedding.Vector, error) {
	switch {
	case text == poisonBio:
		return nil, errors.New("provider rejected text")
	case strings.HasPrefix(text, "ORTHO-A"):
		return embedding.Vector{1, 0, 0, 0}, nil
	case strings.HasPrefix(text, "ORTHO-B"):
		return embedding.Vector{0, 1, 0, 0}, nil
	}
	// Fixed basis; similar texts share a prefix hash bucket.
	v := embedding.Vector{0, 0, 0, 1}
	for i, r := range text {
		v[i%3] += float32(r%13) / 13
	}
	return v, nil
}

func (stubProvider) Dimensions() int { return 4 }
func (stubProvider) Model() string   { return "stub" }

func newRanker(opts ...ranking.Option) *ranking.Ranker {
	calc := signals.NewCalculator(
		signals.WithEmbeddingCache(embedding.NewCache(stubProvider{})),
	)
	return ranking.New(calc, opts...)
}

func profile(id string, stack ...string) model.Profile {
	return model.Profile{
		ID:        id,
		Name:      "User " + id,
		Bio:       "Developer " + id + " building things in the open since forever.",
		TechStack: stack,
		Role:      model.RoleContributor,
	}
}

func TestRankLimits(t *testing.T) {
	Convey("Given a ranker and a requester with candidates", t, func() {
		r := newRanker()
		ctx := context.Background()
		requester := profile("req", "Python")
		candidates := []model.Profile{
			profile("a", "Python"),
			profile("b", "Rust"),
		}

		Convey("When limit is zero", func() {
			recs, err := r.Rank(ctx, requester, candidates, nil, nil, 0)
			So(err, ShouldBeNil)
			So(recs, ShouldBeEmpty)
		})

		Convey("When limit is negative", func() {
			_, err := r.Rank(ctx, requester, candidates, nil, nil, -1)
			So(errors.Is(err, ranking.ErrInvalidLimit), ShouldBeTrue)
		})

		Convey("When limit exceeds the maximum", func() {
			_, err := r.Rank(ctx, requester, candidates, nil, nil, ranking.MaxLimit+1)
			So(errors.Is(err, ranking.ErrInvalidLimit), ShouldBeTrue)
		})

		Convey("When limit equals the maximum", func() {
			recs, err := r.Rank(ctx, requester, candidates, nil, nil, ranking.MaxLimit)
			So(err, ShouldBeNil)
			So(len(recs), ShouldEqual, 2)
		})

		Convey("When limit is smaller than the candidate count", func() {
			recs, err := r.Rank(ctx, requester, candidates, nil, nil, 1)
			So(err, ShouldBeNil)
			So(recs, ShouldHaveLength, 1)
		})
	})
}

func TestRankOrdering(t *testing.T) {
	Convey("Given candidates with clearly different tech overlap", t, func() {
		r := newRanker()
		ctx := context.Background()
		requester := profile("req", "Python", "Docker", "Kubernetes")
		candidates := []model.Profile{
			profile("weak", "Rust"),
			profile("strong", "Python", "Docker", "Kubernetes"),
			profile("mid", "Python"),
		}

		Convey("When ranking", func() {
			recs, err := r.Rank(ctx, requester, candidates, nil, nil, 10)
			So(err, ShouldBeNil)
			So(recs, ShouldHaveLength, 3)

			Convey("Then pages come back sorted by overall score descending", func() {
				So(recs[0].TargetUserID, ShouldEqual, "strong")
				for i := 1; i < len(recs); i++ {
					So(recs[i-1].Scores.Overall, ShouldBeGreaterThanOrEqualTo, recs[i].Scores.Overall)
				}
			})

			Convey("And every score is within bounds", func() {
				for _, rec := range recs {
					So(rec.Scores.Overall, ShouldBeBetweenOrEqual, 0, 1)
					So(rec.Scores.TechOverlap, ShouldBeBetweenOrEqual, 0, 1)
					So(rec.Scores.BioSimilarity, ShouldBeBetweenOrEqual, 0, 1)
					So(rec.Scores.Activity, ShouldBeBetweenOrEqual, 0, 1)
					So(rec.Scores.Collaborative, ShouldBeBetweenOrEqual, 0, 1)
				}
			})

			Convey("And ranking again yields the identical page", func() {
				again, err := r.Rank(ctx, requester, candidates, nil, nil, 10)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, recs)
			})
		})
	})

	Convey("Given candidates that tie exactly", t, func() {
		r := newRanker()
		ctx := context.Background()
		requester := profile("req", "Python")
		// Same stack, same bio text, same (nil) stats: fully tied scores.
		tied := func(id string) model.Profile {
			p := profile(id, "Python")
			p.Bio = "Identical bio text shared by every tied candidate here."
			return p
		}
		candidates := []model.Profile{tied("zeta"), tied("alpha"), tied("mike")}

		Convey("Then ties break by candidate ID ascending", func() {
			recs, err := r.Rank(ctx, requester, candidates, nil, nil, 10)
			So(err, ShouldBeNil)
			So(recs[0].TargetUserID, ShouldEqual, "alpha")
			So(recs[1].TargetUserID, ShouldEqual, "mike")
			So(recs[2].TargetUserID, ShouldEqual, "zeta")
		})
	})
}

func TestRankExclusions(t *testing.T) {
	Convey("Given a requester present in the candidate slice", t, func() {
		r := newRanker()
		ctx := context.Background()
		requester := profile("req", "Python")
		candidates := []model.Profile{requester, profile("other", "Python")}

		Convey("Then the requester never recommends themselves", func() {
			recs, err := r.Rank(ctx, requester, candidates, nil, nil, 10)
			So(err, ShouldBeNil)
			So(recs, ShouldHaveLength, 1)
			So(recs[0].TargetUserID, ShouldEqual, "other")
		})
	})

	Convey("Given an explicit exclusion set", t, func() {
		r := newRanker()
		ctx := context.Background()
		requester := profile("req", "Python")
		candidates := []model.Profile{profile("keep", "Python"), profile("drop", "Python")}

		Convey("Then excluded candidates are filtered out", func() {
			recs, err := r.Rank(ctx, requester, candidates, nil, map[string]struct{}{"drop": {}}, 10)
			So(err, ShouldBeNil)
			So(recs, ShouldHaveLength, 1)
			So(recs[0].TargetUserID, ShouldEqual, "keep")
		})
	})
}

func TestRankEmbeddingFailures(t *testing.T) {
	Convey("Given one candidate whose bio cannot be encoded", t, func() {
		r := newRanker()
		ctx := context.Background()
		requester := profile("req", "Python")
		bad := profile("bad", "Python")
		bad.Bio = poisonBio
		candidates := []model.Profile{profile("good", "Python"), bad}

		Convey("Then the bad candidate is skipped and the page survives", func() {
			recs, err := r.Rank(ctx, requester, candidates, nil, nil, 10)
			So(err, ShouldBeNil)
			So(recs, ShouldHaveLength, 1)
			So(recs[0].TargetUserID, ShouldEqual, "good")
		})
	})

	Convey("Given a requester whose bio cannot be encoded", t, func() {
		r := newRanker()
		ctx := context.Background()
		requester := profile("req", "Python")
		requester.Bio = poisonBio

		Convey("Then the whole call fails", func() {
			_, err := r.Rank(ctx, requester, []model.Profile{profile("a", "Python")}, nil, nil, 10)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, embedding.ErrEncodeFailed), ShouldBeTrue)
		})
	})
}

func TestRankCancellation(t *testing.T) {
	Convey("Given a cancelled context", t, func() {
		r := newRanker()
		requester := profile("req", "Python")
		// Warm the requester first so cancellation hits the candidate loop.
		warmCtx := context.Background()
		_, err := r.Rank(warmCtx, requester, nil, nil, nil, 10)
		So(err, ShouldBeNil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("Then ranking stops with the context error", func() {
			_, err := r.Rank(ctx, requester, []model.Profile{profile("a", "Python")}, nil, nil, 10)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestRankReasons(t *testing.T) {
	Convey("Given a strongly matching maintainer candidate", t, func() {
		r := newRanker()
		ctx := context.Background()
		requester := profile("req", "Python", "Docker")
		maintainer := profile("maint", "Python", "Docker")
		maintainer.Role = model.RoleMaintainer
		maintainer.Stats = &model.ActivityStats{PublicRepos: 40, Contributions: 400}
		requesterWithStats := requester
		requesterWithStats.Stats = &model.ActivityStats{PublicRepos: 38, Contributions: 300}

		Convey("When ranking", func() {
			recs, err := r.Rank(ctx, requesterWithStats, []model.Profile{maintainer}, nil, nil, 10)
			So(err, ShouldBeNil)
			So(recs, ShouldHaveLength, 1)
			reasons := recs[0].Reasons

			Convey("Then at most three reasons are produced", func() {
				So(len(reasons), ShouldBeLessThanOrEqualTo, 3)
				So(len(reasons), ShouldBeGreaterThan, 0)
			})

			Convey("And the shared technologies are named first", func() {
				So(reasons[0], ShouldEqual, "Shared expertise in docker, python")
			})
		})
	})

	Convey("Given a candidate that triggers nothing", t, func() {
		r := newRanker()
		ctx := context.Background()
		requester := profile("req", "Python")
		requester.Bio = "ORTHO-A requester bio about compilers and type systems."
		stranger := profile("strange", "COBOL")
		stranger.Bio = "ORTHO-B stranger bio regarding gardening and pottery."

		Convey("Then the generic fallback reason applies", func() {
			recs, err := r.Rank(ctx, requester, []model.Profile{stranger}, nil, nil, 10)
			So(err, ShouldBeNil)
			So(recs, ShouldHaveLength, 1)
			So(recs[0].Scores.BioSimilarity, ShouldEqual, 0)
			So(recs[0].Reasons, ShouldResemble, []string{"Good potential for collaboration"})
		})
	})
}
