// Package nhle fetches daily schedules from the public NHL web API.
package nhle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/providers"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/timeutil"
)

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// Client fetches one day's schedule and maps it to domain games.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		userAgent:  resolveUserAgent(cfg.UserAgent),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string { return providerName }

// FetchGames retrieves the games scheduled on date (YYYY-MM-DD).
func (c *Client) FetchGames(ctx context.Context, date string) ([]games.Game, error) {
	if _, err := timeutil.ParseDate(date); err != nil {
		return nil, fmt.Errorf("nhle: invalid date %q: %w", date, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/schedule/"+date, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nhle: schedule %s: %w", date, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: providers.ParseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    "nhle: rate limited",
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, fmt.Errorf("nhle: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("nhle: decode schedule %s: %w", date, err)
	}

	raw := gamesForDate(payload, date)
	out := make([]games.Game, 0, len(raw))
	for _, g := range raw {
		out = append(out, mapGame(g, date))
	}
	return out, nil
}
