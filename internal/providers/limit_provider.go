package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
)

const rateLimitedName = "rate-limited"

// rateLimitedProvider wraps a GameProvider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     GameProvider
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a GameProvider that limits calls to the given interval.
// Calls block until the interval elapses to avoid exceeding upstream quotas.
func NewRateLimitedProvider(next GameProvider, interval time.Duration, logger *slog.Logger) GameProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchGames(ctx context.Context, date string) ([]games.Game, error) {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "provider unavailable")
		return nil, ErrProviderUnavailable
	}
	select {
	case <-ctx.Done():
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "rate-limited fetch canceled", logging.FieldDate, date)
		return nil, ctx.Err()
	case <-p.ticker.C:
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, rateLimitedName, "rate-limited provider fetch", logging.FieldDate, date)
	return p.next.FetchGames(ctx, date)
}

// Close stops the underlying ticker.
func (p *rateLimitedProvider) Close() {
	p.ticker.Stop()
}
