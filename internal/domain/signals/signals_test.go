package signals_test

import (
	"context"
	"strings"
	"testing"

	"github.com/sreevallabh04/gitalong/internal/domain/embedding"
	"github.com/sreevallabh04/gitalong/internal/domain/model"
	"github.com/sreevallabh04/gitalong/internal/domain/signals"
	. "github.com/smartystreets/goconvey/convey"
)

// charVectorProvider maps text to a small deterministic vector. Texts
// prefixed "SOUTH:" encode to the negation of the "NORTH:" encoding, giving
// a guaranteed negative cosine between the two.
type charVectorProvider struct{}

func (charVectorProvider) Encode(_ context.Context, text string) (embedding.Vector, error) {
	v := make(embedding.Vector, 4)
	sign := float32(1)
	if strings.HasPrefix(text, "SOUTH:") {
		sign = -1
		text = strings.TrimPrefix(text, "SOUTH:")
	}
	text = strings.TrimPrefix(text, "NORTH:")
	for i, r := range text {
		v[i%4] += sign * float32(r)
	}
	return v, nil
}

func (charVectorProvider) Dimensions() int { return 4 }
func (charVectorProvider) Model() string   { return "char-vector-stub" }

func TestTechOverlap(t *testing.T) {
	Convey("Given a calculator with default tech weights", t, func() {
		calc := signals.NewCalculator()

		Convey("When both stacks are empty", func() {
			So(calc.TechOverlap(nil, nil), ShouldEqual, 0)
			So(calc.TechOverlap([]string{}, []string{"Go"}), ShouldEqual, 0)
		})

		Convey("When the stacks share no technologies", func() {
			score := calc.TechOverlap([]string{"Python"}, []string{"Rust"})
			So(score, ShouldEqual, 0)
		})

		Convey("When a single heavily weighted technology overlaps fully", func() {
			// weight 0.9 normalized by 1 * 0.9
			score := calc.TechOverlap([]string{"Python"}, []string{"Python"})
			So(score, ShouldEqual, 1.0)
		})

		Convey("When labels differ only by case and spacing", func() {
			a := calc.TechOverlap([]string{"python", "REACT"}, []string{" Python ", "react"})
			b := calc.TechOverlap([]string{"Python", "React"}, []string{"Python", "React"})
			So(a, ShouldEqual, b)
		})

		Convey("When an unlisted technology overlaps", func() {
			// default weight 0.5 over 1 * 0.9
			score := calc.TechOverlap([]string{"Haskell"}, []string{"Haskell"})
			So(score, ShouldAlmostEqual, 0.5/0.9, 1e-9)
		})

		Convey("When the stacks differ in size", func() {
			small := []string{"JavaScript", "React"}
			large := []string{"JavaScript", "React", "Docker", "AWS", "Go", "Rust"}

			Convey("Then the larger stack drives the denominator", func() {
				// shared weights 0.9 + 0.8 over 6 * 0.9
				score := calc.TechOverlap(small, large)
				So(score, ShouldAlmostEqual, 1.7/5.4, 1e-9)
			})

			Convey("And the score is symmetric", func() {
				So(calc.TechOverlap(small, large), ShouldEqual, calc.TechOverlap(large, small))
			})
		})

		Convey("When duplicate labels appear in a stack", func() {
			score := calc.TechOverlap([]string{"Python", "python", "PYTHON"}, []string{"Python"})
			So(score, ShouldEqual, 1.0)
		})
	})

	Convey("Given a calculator with configured weights", t, func() {
		calc := signals.NewCalculator(
			signals.WithTechWeightsFromConfig(map[string]float64{"Elixir": 0.9}, 0.4),
		)

		Convey("Then configured keys are looked up case-insensitively", func() {
			So(calc.TechOverlap([]string{"elixir"}, []string{"ELIXIR"}), ShouldEqual, 1.0)
		})

		Convey("And unlisted technologies use the configured default weight", func() {
			score := calc.TechOverlap([]string{"Zig"}, []string{"Zig"})
			So(score, ShouldAlmostEqual, 0.4/0.9, 1e-9)
		})
	})
}

func TestSharedTech(t *testing.T) {
	Convey("Given two overlapping stacks", t, func() {
		a := []string{"TypeScript", "React", "Docker", "AWS"}
		b := []string{"docker", "aws", "react", "Rust"}

		Convey("When asking for more shared labels than exist", func() {
			shared := signals.SharedTech(a, b, 10)
			So(shared, ShouldResemble, []string{"aws", "docker", "react"})
		})

		Convey("When asking for fewer labels than exist", func() {
			shared := signals.SharedTech(a, b, 2)
			So(shared, ShouldHaveLength, 2)
			So(shared, ShouldResemble, []string{"aws", "docker"})
		})

		Convey("When nothing overlaps", func() {
			So(signals.SharedTech([]string{"Go"}, []string{"Rust"}, 3), ShouldBeEmpty)
		})
	})
}

func TestActivityScore(t *testing.T) {
	Convey("Given a calculator with the default contribution cap", t, func() {
		calc := signals.NewCalculator()

		Convey("When either side has no stats", func() {
			stats := &model.ActivityStats{PublicRepos: 10}
			So(calc.ActivityScore(nil, stats), ShouldEqual, 0.5)
			So(calc.ActivityScore(stats, nil), ShouldEqual, 0.5)
			So(calc.ActivityScore(nil, nil), ShouldEqual, 0.5)
		})

		Convey("When both sides are identical and highly active", func() {
			stats := &model.ActivityStats{PublicRepos: 40, Contributions: 300}
			// repo similarity 1, boost saturates at 600/500
			So(calc.ActivityScore(stats, stats), ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("When both sides have zero activity", func() {
			zero := &model.ActivityStats{}
			// repo similarity 1 (diff 0 over max(sum,1)), boost 0
			So(calc.ActivityScore(zero, zero), ShouldAlmostEqual, 0.7, 1e-9)
		})

		Convey("When repo counts diverge", func() {
			a := &model.ActivityStats{PublicRepos: 90}
			b := &model.ActivityStats{PublicRepos: 10}
			// similarity 1 - 80/100 = 0.2, no contributions
			So(calc.ActivityScore(a, b), ShouldAlmostEqual, 0.7*0.2, 1e-9)
		})

		Convey("When contributions are below the cap", func() {
			a := &model.ActivityStats{PublicRepos: 20, Contributions: 100}
			b := &model.ActivityStats{PublicRepos: 20, Contributions: 150}
			// similarity 1, boost 250/500
			So(calc.ActivityScore(a, b), ShouldAlmostEqual, 0.7+0.3*0.5, 1e-9)
		})
	})

	Convey("Given a calculator with a custom contribution cap", t, func() {
		calc := signals.NewCalculator(signals.WithContributionCap(100))

		Convey("Then the boost saturates at the configured cap", func() {
			a := &model.ActivityStats{PublicRepos: 5, Contributions: 60}
			b := &model.ActivityStats{PublicRepos: 5, Contributions: 60}
			So(calc.ActivityScore(a, b), ShouldAlmostEqual, 1.0, 1e-9)
		})
	})
}

func TestBioSimilarity(t *testing.T) {
	Convey("Given a calculator backed by a deterministic embedder", t, func() {
		ctx := context.Background()
		calc := signals.NewCalculator(
			signals.WithEmbeddingCache(embedding.NewCache(charVectorProvider{})),
		)
		profile := func(id, bio string) model.Profile {
			return model.Profile{ID: id, Bio: bio}
		}

		Convey("When two profiles have distinct bios", func() {
			a := profile("a", "Backend engineer who enjoys distributed systems.")
			b := profile("b", "Designer focused on mobile interfaces and motion.")

			score, err := calc.BioSimilarity(ctx, a, b)
			So(err, ShouldBeNil)

			Convey("Then the score is in range", func() {
				So(score, ShouldBeBetweenOrEqual, 0, 1)
			})

			Convey("And the score is symmetric", func() {
				flipped, err := calc.BioSimilarity(ctx, b, a)
				So(err, ShouldBeNil)
				So(flipped, ShouldEqual, score)
			})
		})

		Convey("When two profiles have identical bios", func() {
			bio := "Open source maintainer looking for contributors."
			score, err := calc.BioSimilarity(ctx, profile("a", bio), profile("b", bio))
			So(err, ShouldBeNil)
			So(score, ShouldAlmostEqual, 1.0, 1e-6)
		})

		Convey("When both profiles have empty bios", func() {
			score, err := calc.BioSimilarity(ctx, profile("a", ""), profile("b", ""))
			So(err, ShouldBeNil)

			Convey("Then both encode the placeholder and score high", func() {
				So(score, ShouldAlmostEqual, 1.0, 1e-6)
			})

			Convey("And the result is stable across calls", func() {
				again, err := calc.BioSimilarity(ctx, profile("a", ""), profile("b", ""))
				So(err, ShouldBeNil)
				So(again, ShouldEqual, score)
			})
		})

		Convey("When the bios are semantically opposed", func() {
			a := profile("a", "NORTH: always says yes to everything")
			b := profile("b", "SOUTH: always says yes to everything")

			Convey("Then the negative cosine clamps to zero", func() {
				score, err := calc.BioSimilarity(ctx, a, b)
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 0)
			})
		})
	})
}

func TestCollaborativeScore(t *testing.T) {
	Convey("Given a swipe history", t, func() {
		calc := signals.NewCalculator()
		history := []model.Interaction{
			{EventID: "e1", ActorID: "req", TargetID: "x", Direction: model.DirectionAccept},
			{EventID: "e2", ActorID: "req", TargetID: "y", Direction: model.DirectionAccept},
			{EventID: "e3", ActorID: "x", TargetID: "cand", Direction: model.DirectionAccept},
			{EventID: "e4", ActorID: "y", TargetID: "other", Direction: model.DirectionReject},
		}
		idx := signals.NewHistoryIndex(history)

		Convey("When the requester has no accepts", func() {
			So(calc.CollaborativeScore("stranger", "cand", idx), ShouldEqual, 0.5)
		})

		Convey("When one accepted identity also accepted the candidate", func() {
			So(calc.CollaborativeScore("req", "cand", idx), ShouldAlmostEqual, 0.2, 1e-9)
		})

		Convey("When no accepted identity accepted the candidate", func() {
			So(calc.CollaborativeScore("req", "nobody", idx), ShouldEqual, 0.3)
		})

		Convey("When rejects are present in the history", func() {
			Convey("Then they are ignored by the index", func() {
				// y rejected "other", so "other" has no accepters
				So(calc.CollaborativeScore("req", "other", idx), ShouldEqual, 0.3)
			})
		})
	})

	Convey("Given five or more shared accepters", t, func() {
		calc := signals.NewCalculator()
		var history []model.Interaction
		for _, via := range []string{"a", "b", "c", "d", "e", "f"} {
			history = append(history,
				model.Interaction{EventID: via + "-1", ActorID: "req", TargetID: via, Direction: model.DirectionAccept},
				model.Interaction{EventID: via + "-2", ActorID: via, TargetID: "cand", Direction: model.DirectionAccept},
			)
		}
		idx := signals.NewHistoryIndex(history)

		Convey("Then the score clamps at 1", func() {
			So(calc.CollaborativeScore("req", "cand", idx), ShouldEqual, 1.0)
		})
	})
}
