package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/cache"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/metrics"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/timeutil"
)

// cachingProvider serves settled past dates from a schedule cache and fills
// the cache on a miss. Today and future dates always go upstream.
type cachingProvider struct {
	next    GameProvider
	cache   cache.ScheduleCache
	metrics *metrics.Recorder
	logger  *slog.Logger
	loc     *time.Location
	now     func() time.Time
}

// NewCachingProvider wraps next with a read-through cache. A nil cache returns next unchanged.
func NewCachingProvider(next GameProvider, c cache.ScheduleCache, loc *time.Location, recorder *metrics.Recorder, logger *slog.Logger) GameProvider {
	if c == nil {
		return next
	}
	if loc == nil {
		loc = time.UTC
	}
	return &cachingProvider{
		next:    next,
		cache:   c,
		metrics: recorder,
		logger:  logger,
		loc:     loc,
		now:     time.Now,
	}
}

func (p *cachingProvider) FetchGames(ctx context.Context, date string) ([]games.Game, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}
	if !p.settled(date) {
		return p.next.FetchGames(ctx, date)
	}

	name := p.cache.Name()
	gs, err := p.cache.LoadGames(ctx, date)
	if err == nil {
		p.metrics.RecordCacheLookup(name, true)
		return gs, nil
	}
	p.metrics.RecordCacheLookup(name, false)
	if !errors.Is(err, cache.ErrMiss) {
		logWithProvider(ctx, p.logger, slog.LevelWarn, name, "schedule cache read failed", logging.FieldDate, date, "error", err)
	}

	gs, err = p.next.FetchGames(ctx, date)
	if err != nil {
		return nil, err
	}
	if storeErr := p.cache.StoreGames(ctx, date, gs); storeErr != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, name, "schedule cache write failed", logging.FieldDate, date, "error", storeErr)
	}
	return gs, nil
}

// Close releases resources held by the wrapped provider.
func (p *cachingProvider) Close() {
	if closer, ok := p.next.(Closer); ok {
		closer.Close()
	}
}

// settled reports whether date is strictly before today in the configured zone.
func (p *cachingProvider) settled(date string) bool {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return false
	}
	return day.Before(timeutil.Today(p.now(), p.loc))
}
