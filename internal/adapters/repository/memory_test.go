package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sreevallabh04/gitalong/internal/adapters/repository"
	"github.com/sreevallabh04/gitalong/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryProfileStore(t *testing.T) {
	Convey("Given an empty profile store", t, func() {
		store := repository.NewMemoryProfileStore()
		ctx := context.Background()

		Convey("When upserting a new profile", func() {
			replaced, err := store.Upsert(ctx, model.Profile{ID: "u1", Name: "One"})
			So(err, ShouldBeNil)
			So(replaced, ShouldBeFalse)
			So(store.Count(ctx), ShouldEqual, 1)

			Convey("And upserting it again", func() {
				replaced, err := store.Upsert(ctx, model.Profile{ID: "u1", Name: "Renamed"})
				So(err, ShouldBeNil)
				So(replaced, ShouldBeTrue)
				So(store.Count(ctx), ShouldEqual, 1)

				p, err := store.Get(ctx, "u1")
				So(err, ShouldBeNil)
				So(p.Name, ShouldEqual, "Renamed")
			})
		})

		Convey("When upserting a profile without an id", func() {
			_, err := store.Upsert(ctx, model.Profile{ID: "   "})
			So(errors.Is(err, repository.ErrInvalidProfile), ShouldBeTrue)
		})

		Convey("When getting an unknown id", func() {
			_, err := store.Get(ctx, "ghost")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When a profile arrives with a bogus role and negative stats", func() {
			_, err := store.Upsert(ctx, model.Profile{
				ID:    "u2",
				Role:  "wizard",
				Stats: &model.ActivityStats{PublicRepos: -3, Followers: -1, Contributions: -9},
			})
			So(err, ShouldBeNil)

			p, err := store.Get(ctx, "u2")
			So(err, ShouldBeNil)

			Convey("Then the role and stats are normalized", func() {
				So(p.Role, ShouldEqual, model.RoleContributor)
				So(p.Stats.PublicRepos, ShouldEqual, 0)
				So(p.Stats.Followers, ShouldEqual, 0)
				So(p.Stats.Contributions, ShouldEqual, 0)
			})
		})

		Convey("When listing candidates with exclusions", func() {
			for _, id := range []string{"a", "b", "c"} {
				_, err := store.Upsert(ctx, model.Profile{ID: id})
				So(err, ShouldBeNil)
			}

			candidates, err := store.ListCandidates(ctx, map[string]struct{}{"b": {}})
			So(err, ShouldBeNil)
			So(candidates, ShouldHaveLength, 2)
			for _, c := range candidates {
				So(c.ID, ShouldNotEqual, "b")
			}
		})
	})
}

func TestMemoryInteractionStore(t *testing.T) {
	Convey("Given an empty interaction store", t, func() {
		store := repository.NewMemoryInteractionStore()
		ctx := context.Background()

		Convey("When appending accepts and rejects", func() {
			So(store.Append(ctx, model.Interaction{EventID: "e1", ActorID: "a", TargetID: "b", Direction: model.DirectionAccept}), ShouldBeNil)
			So(store.Append(ctx, model.Interaction{EventID: "e2", ActorID: "a", TargetID: "c", Direction: model.DirectionReject}), ShouldBeNil)
			So(store.Append(ctx, model.Interaction{EventID: "e3", ActorID: "b", TargetID: "a", Direction: model.DirectionAccept}), ShouldBeNil)

			Convey("Then counts track totals and accepts", func() {
				total, accepts := store.Count(ctx)
				So(total, ShouldEqual, 3)
				So(accepts, ShouldEqual, 2)
			})

			Convey("And history preserves append order", func() {
				history, err := store.History(ctx)
				So(err, ShouldBeNil)
				So(history, ShouldHaveLength, 3)
				So(history[0].EventID, ShouldEqual, "e1")
				So(history[2].EventID, ShouldEqual, "e3")
			})

			Convey("And history is a snapshot, not a live view", func() {
				history, err := store.History(ctx)
				So(err, ShouldBeNil)
				history[0].EventID = "mutated"

				again, err := store.History(ctx)
				So(err, ShouldBeNil)
				So(again[0].EventID, ShouldEqual, "e1")
			})
		})

		Convey("When appending an unknown direction", func() {
			err := store.Append(ctx, model.Interaction{EventID: "bad", Direction: "sideways"})
			So(errors.Is(err, repository.ErrInvalidInteraction), ShouldBeTrue)

			total, _ := store.Count(ctx)
			So(total, ShouldEqual, 0)
		})
	})
}
