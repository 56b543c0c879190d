// Package nowplaying fetches the station's "now playing" status document.
package nowplaying

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when no status URL is set.
var ErrNotConfigured = errors.New("status URL not configured")

// HistoryLimit is the number of recently played tracks kept per snapshot.
const HistoryLimit = 10

const userAgent = "liveradio/1.0 (https://github.com/llehouerou/liveradio)"

// Fetcher retrieves the current station status.
type Fetcher interface {
	Fetch(ctx context.Context) (*Status, error)
}

// Client is an HTTP client for a now-playing JSON endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

// New creates a client for the given endpoint. A non-positive timeout
// defaults to 10 seconds.
func New(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// URL returns the endpoint the client polls.
func (c *Client) URL() string {
	return c.url
}

// Fetch downloads and decodes the status document.
func (c *Client) Fetch(ctx context.Context) (*Status, error) {
	if c.url == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var status Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(status.SongHistory) > HistoryLimit {
		status.SongHistory = status.SongHistory[:HistoryLimit]
	}

	return &status, nil
}
