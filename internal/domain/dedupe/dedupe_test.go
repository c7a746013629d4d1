package dedupe_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/sreevallabh04/gitalong/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()
		ctx := context.Background()

		Convey("When recording an ID for the first time", func() {
			So(d.SeenAndRecord(ctx, "e1"), ShouldBeFalse)
			So(d.Size(), ShouldEqual, 1)

			Convey("Then recording it again reports a duplicate", func() {
				So(d.SeenAndRecord(ctx, "e1"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording an ID", func() {
			So(d.SeenAndRecord(ctx, "e1"), ShouldBeFalse)
			d.Unrecord(ctx, "e1")
			So(d.Size(), ShouldEqual, 0)

			Convey("Then it can be recorded fresh again", func() {
				So(d.SeenAndRecord(ctx, "e1"), ShouldBeFalse)
			})
		})

		Convey("When unrecording an ID that was never seen", func() {
			d.Unrecord(ctx, "ghost")
			So(d.Size(), ShouldEqual, 0)
		})
	})

	Convey("Given a deduper with a small max size", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		ctx := context.Background()

		Convey("When recording more IDs than the bound", func() {
			for i := 0; i < 5; i++ {
				So(d.SeenAndRecord(ctx, fmt.Sprintf("e%d", i)), ShouldBeFalse)
			}

			Convey("Then the size stays within the bound", func() {
				So(d.Size(), ShouldBeLessThanOrEqualTo, 3)
			})

			Convey("And the oldest IDs were evicted", func() {
				// e0 and e1 evicted; recording again is not a duplicate
				So(d.SeenAndRecord(ctx, "e0"), ShouldBeFalse)
			})

			Convey("And the newest IDs are still remembered", func() {
				So(d.SeenAndRecord(ctx, "e4"), ShouldBeTrue)
			})
		})
	})
}
