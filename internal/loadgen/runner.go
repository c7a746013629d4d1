package loadgen

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sreevallabh04/gitalong/pkg/logger"
)

// ingestSettleDelay gives the swipe workers time to drain the queue before
// recommendation pages are verified against the history.
const ingestSettleDelay = 2 * time.Second

// Run executes the complete load run.
func Run(ctx context.Context, config *Config) error {
	stats := &RunStats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting gitalong load run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("profiles", config.NumProfiles),
		logger.Int("swipes", config.NumSwipes),
		logger.Int("pageSize", config.PageSize),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	profiles := generateProfiles(config.NumProfiles)
	if err := registerProfiles(ctx, config, profiles, stats); err != nil {
		return fmt.Errorf("profile registration failed: %w", err)
	}
	logger.Get().Info(ctx, "registered profiles", logger.Int("count", stats.ProfilesRegistered))

	swipes := generateSwipes(profiles, config.NumSwipes)
	if err := submitSwipes(ctx, config, swipes, stats); err != nil {
		return fmt.Errorf("swipe submission failed: %w", err)
	}
	logger.Get().Info(ctx, "submitted swipes",
		logger.Int("accepted", stats.SwipesAccepted),
		logger.Int("duplicate", stats.SwipesDuplicate),
		logger.Int("failed", stats.SwipesFailed))

	logger.Get().Info(ctx, "waiting for swipe ingestion to settle")
	time.Sleep(ingestSettleDelay)

	if err := fetchAndVerifyPages(ctx, config, profiles, stats); err != nil {
		return fmt.Errorf("page verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	logger.Get().Info(ctx, "load run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	_, _ = readResponseBody(resp)

	if resp.StatusCode != statusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// fetchAndVerifyPages retrieves recommendation pages concurrently and
// checks ordering invariants on each page.
func fetchAndVerifyPages(ctx context.Context, config *Config, profiles []Profile, stats *RunStats) error {
	client := newHTTPClient(config.Timeout)

	var (
		retrieved  int64
		violations int64
	)

	idChan := make(chan string, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for userID := range idChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				page, err := fetchPage(ctx, client, config.BaseURL, userID, config.PageSize)
				if err != nil {
					logger.Get().Warn(ctx, "page fetch failed",
						logger.String("userID", userID),
						logger.Error(err))
					continue
				}
				atomic.AddInt64(&retrieved, 1)
				atomic.AddInt64(&violations, int64(countOrderingViolations(page)))
			}
		}()
	}

	go func() {
		defer close(idChan)
		for _, p := range profiles {
			select {
			case <-ctx.Done():
				return
			case idChan <- p.ID:
			}
		}
	}()

	wg.Wait()

	stats.PagesRetrieved = int(atomic.LoadInt64(&retrieved))
	stats.OrderingViolations = int(atomic.LoadInt64(&violations))

	if stats.OrderingViolations > 0 {
		return fmt.Errorf("%d ordering violations across %d pages", stats.OrderingViolations, stats.PagesRetrieved)
	}
	logger.Get().Info(ctx, "page ordering verified", logger.Int("pages", stats.PagesRetrieved))
	return nil
}

// countOrderingViolations checks that a page's recommendations are sorted
// by overall score descending, candidate ID ascending on ties, and that the
// requester never recommends themselves.
func countOrderingViolations(page Page) int {
	violations := 0
	for i, rec := range page.Recommendations {
		if rec.TargetUserID == page.UserID {
			violations++
		}
		if i == 0 {
			continue
		}
		prev := page.Recommendations[i-1]
		if prev.Scores.Overall < rec.Scores.Overall {
			violations++
		}
		if prev.Scores.Overall == rec.Scores.Overall && prev.TargetUserID > rec.TargetUserID {
			violations++
		}
	}
	return violations
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *RunStats) {
	var swipesPerSecond float64
	if stats.Duration > 0 {
		swipesPerSecond = float64(stats.SwipesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("profilesRegistered", stats.ProfilesRegistered),
		logger.Int("swipesSubmitted", stats.SwipesSubmitted),
		logger.Int("swipesAccepted", stats.SwipesAccepted),
		logger.Int("swipesDuplicate", stats.SwipesDuplicate),
		logger.Int("swipesFailed", stats.SwipesFailed),
		logger.Int("pagesRetrieved", stats.PagesRetrieved),
		logger.Int("orderingViolations", stats.OrderingViolations),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("swipesPerSecond", swipesPerSecond))
}
