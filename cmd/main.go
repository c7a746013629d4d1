package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sreevallabh04/gitalong/internal/adapters/embedder"
	"github.com/sreevallabh04/gitalong/internal/adapters/http/api"
	"github.com/sreevallabh04/gitalong/internal/adapters/http/swagger"
	app "github.com/sreevallabh04/gitalong/internal/app"
	"github.com/sreevallabh04/gitalong/internal/config"
	"github.com/sreevallabh04/gitalong/internal/domain/embedding"
	"github.com/sreevallabh04/gitalong/internal/domain/ranking"
	"github.com/sreevallabh04/gitalong/pkg/logger"
	"github.com/sreevallabh04/gitalong/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics;
	// the system metrics updater collects its own.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			logger.Error(err)
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	provider, err := buildEmbeddingProvider(ctx, cfg)
	if err != nil {
		loggerInstance.Fatal(ctx, "failed to build embedding provider", logger.Error(err))
		return
	}

	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.SwipeQueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithTechWeights(cfg.TechWeights),
		app.WithDefaultTechWeight(cfg.DefaultTechWeight),
		app.WithContributionCap(cfg.ContributionCap),
		app.WithSignalWeights(ranking.Weights{
			Tech:          cfg.TechSignalWeight,
			Bio:           cfg.BioSignalWeight,
			Activity:      cfg.ActivitySignalWeight,
			Collaborative: cfg.CollabSignalWeight,
		}),
		app.WithDefaultLimit(cfg.DefaultLimit),
		app.WithEmbeddingProvider(provider),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop(context.Background())

	if cfg.SeedSampleData {
		if err := svc.SeedSampleData(ctx); err != nil {
			loggerInstance.Error(ctx, "failed to seed sample data", logger.Error(err))
		}
	}

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// API reference under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// buildEmbeddingProvider selects the bio embedding backend from config.
func buildEmbeddingProvider(ctx context.Context, cfg *config.Config) (embedding.Provider, error) {
	if cfg.Embedder == "gemini" {
		return embedder.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	}
	return embedder.NewLocal(
		embedder.WithDimensions(cfg.EmbedderDimensions),
		embedder.WithLatencyRange(
			time.Duration(cfg.EmbedderLatencyMinMS)*time.Millisecond,
			time.Duration(cfg.EmbedderLatencyMaxMS)*time.Millisecond,
		),
	), nil
}

// startSystemMetricsUpdater periodically refreshes runtime metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater periodically refreshes service gauges.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// GetStats refreshes queue, user, and worker gauges as a side
			// effect.
			_ = svc.GetStats()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
