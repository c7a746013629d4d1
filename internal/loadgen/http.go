package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sreevallabh04/gitalong/pkg/logger"
)

// HTTP status codes the service responds with on the happy paths.
const (
	statusOK       = 200
	statusAccepted = 202
)

// httpClient wraps http.Client with a per-request timeout.
type httpClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{
		client: &http.Client{Timeout: timeout},
	}
}

func (c *httpClient) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

func (c *httpClient) post(ctx context.Context, url string, body any) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// registerProfiles posts every profile to the service.
func registerProfiles(ctx context.Context, config *Config, profiles []Profile, stats *RunStats) error {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/users/profile"

	for _, p := range profiles {
		resp, err := client.post(ctx, url, p)
		if err != nil {
			return fmt.Errorf("failed to register profile %s: %w", p.ID, err)
		}
		_, _ = readResponseBody(resp)
		if resp.StatusCode != statusOK {
			return fmt.Errorf("profile %s rejected with status %d", p.ID, resp.StatusCode)
		}
		stats.ProfilesRegistered++
		if config.Verbose && stats.ProfilesRegistered%50 == 0 {
			logger.Get().Debug(ctx, "registration progress",
				logger.Int("registered", stats.ProfilesRegistered),
				logger.Int("total", len(profiles)))
		}
	}
	return nil
}

// submitSwipes submits swipes concurrently using a worker pool.
func submitSwipes(ctx context.Context, config *Config, swipes []Swipe, stats *RunStats) error {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/swipe"

	var (
		submitted int64
		accepted  int64
		duplicate int64
		failed    int64
	)

	swipeChan := make(chan Swipe, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for swipe := range swipeChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				n := atomic.AddInt64(&submitted, 1)
				if config.Verbose && n%500 == 0 {
					logger.Get().Debug(ctx, "swipe progress",
						logger.Any("submitted", n),
						logger.Int("total", len(swipes)))
				}
				switch submitSingleSwipe(ctx, client, url, swipe) {
				case "accepted":
					atomic.AddInt64(&accepted, 1)
				case "duplicate":
					atomic.AddInt64(&duplicate, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(swipeChan)
		for _, swipe := range swipes {
			select {
			case <-ctx.Done():
				return
			case swipeChan <- swipe:
			}
		}
	}()

	wg.Wait()

	stats.SwipesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.SwipesAccepted = int(atomic.LoadInt64(&accepted))
	stats.SwipesDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.SwipesFailed = int(atomic.LoadInt64(&failed))
	return nil
}

// submitSingleSwipe submits one swipe and classifies the outcome.
func submitSingleSwipe(ctx context.Context, client *httpClient, url string, swipe Swipe) string {
	resp, err := client.post(ctx, url, swipe)
	if err != nil {
		return "failed"
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	switch resp.StatusCode {
	case statusAccepted:
		return "accepted"
	case statusOK:
		var ack AckResponse
		if err := json.Unmarshal(body, &ack); err == nil && ack.Duplicate {
			return "duplicate"
		}
		return "duplicate"
	default:
		return "failed"
	}
}

// fetchPage requests a recommendation page for userID.
func fetchPage(ctx context.Context, client *httpClient, baseURL, userID string, pageSize int) (Page, error) {
	body := map[string]any{
		"user_id":             userID,
		"max_recommendations": pageSize,
		"include_analytics":   true,
	}
	resp, err := client.post(ctx, baseURL+"/recommendations", body)
	if err != nil {
		return Page{}, fmt.Errorf("recommendations request failed: %w", err)
	}
	data, err := readResponseBody(resp)
	if err != nil {
		return Page{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != statusOK {
		return Page{}, fmt.Errorf("recommendations returned status %d", resp.StatusCode)
	}
	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		return Page{}, fmt.Errorf("failed to decode page: %w", err)
	}
	return page, nil
}
