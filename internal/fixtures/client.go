package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"courtside/internal/metrics"

	"github.com/charmbracelet/log"
)

// NewLoader creates a new HTTP fixture loader rooted at baseURL.
func NewLoader(baseURL string, metricsSvc metrics.Metrics) *HTTPLoader {
	return &HTTPLoader{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		metrics:    metricsSvc,
		cache:      make(map[string]cacheEntry),
		now:        time.Now,
	}
}

// Ensure HTTPLoader implements the Loader interface.
var _ Loader = (*HTTPLoader)(nil)

// Fetch returns the body of the named fixture file. A single attempt is
// made per call; there is no retry or backoff. Non-2xx statuses and
// invalid JSON bodies both surface as errors, and the caller decides the
// fallback behavior.
func (l *HTTPLoader) Fetch(ctx context.Context, name string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", l.baseURL, name)

	l.mu.Lock()
	if entry, ok := l.cache[url]; ok && l.now().Sub(entry.timestamp) < cacheTTL {
		l.mu.Unlock()
		log.Debug("Serving fixture from cache", "url", url)
		l.metrics.IncFixtureCacheHits()
		return entry.data, nil
	}
	l.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debug("Fetching fixture", "url", url)
	l.metrics.IncFixtureFetches()
	resp, err := l.httpClient.Do(req)
	if err != nil {
		l.metrics.IncFixtureFetchFailures()
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		l.metrics.IncFixtureFetchFailures()
		log.Error("Received non-OK HTTP status for fixture", "status", resp.StatusCode, "url", url)
		return nil, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		l.metrics.IncFixtureFetchFailures()
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if !json.Valid(body) {
		l.metrics.IncFixtureFetchFailures()
		return nil, fmt.Errorf("fixture %s is not valid JSON", name)
	}

	l.mu.Lock()
	l.cache[url] = cacheEntry{data: body, timestamp: l.now()}
	l.mu.Unlock()

	log.Info("Fetched fixture", "name", name, "bytes", len(body))
	return body, nil
}
