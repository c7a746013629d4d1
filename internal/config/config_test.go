package config_test

import (
	"runtime"
	"testing"

	"github.com/sreevallabh04/gitalong/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
			convey.So(cfg.DefaultLimit, convey.ShouldEqual, 20)
			convey.So(cfg.MaxLimit, convey.ShouldEqual, 50)
			convey.So(cfg.SwipeQueueSize, convey.ShouldEqual, 100_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 500_000)
			convey.So(cfg.DefaultTechWeight, convey.ShouldEqual, 0.5)
			convey.So(cfg.ContributionCap, convey.ShouldEqual, 500)
			convey.So(cfg.Embedder, convey.ShouldEqual, "local")
			convey.So(cfg.EmbedderDimensions, convey.ShouldEqual, 384)
			convey.So(cfg.GeminiModel, convey.ShouldEqual, "text-embedding-004")
		})

		convey.Convey("Then the signal weights should sum to one", func() {
			sum := cfg.TechSignalWeight + cfg.BioSignalWeight + cfg.ActivitySignalWeight + cfg.CollabSignalWeight
			convey.So(sum, convey.ShouldAlmostEqual, 1.0, 1e-9)
		})
	})
}
