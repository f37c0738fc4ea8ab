package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/cache"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
)

// StubProvider is a test double for providers.GameProvider.
type StubProvider struct {
	Games  []games.Game
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// FetchGames returns configured games and error while tracking calls.
func (s *StubProvider) FetchGames(ctx context.Context, date string) ([]games.Game, error) {
	_ = ctx
	_ = date
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Games, s.Err
}

// CalendarProvider serves games keyed by date and fails the dates listed in Errs.
type CalendarProvider struct {
	mu    sync.Mutex
	Days  map[string][]games.Game
	Errs  map[string]error
	dates []string
}

func (c *CalendarProvider) FetchGames(ctx context.Context, date string) ([]games.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dates = append(c.dates, date)
	if err, ok := c.Errs[date]; ok {
		return nil, err
	}
	return c.Days[date], nil
}

// Requested returns the dates fetched so far, in call order.
func (c *CalendarProvider) Requested() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.dates...)
}

// StubScheduleCache is an in-memory cache.ScheduleCache.
type StubScheduleCache struct {
	mu       sync.Mutex
	Days     map[string][]games.Game
	LoadErr  error
	StoreErr error
	Stores   int
}

func (s *StubScheduleCache) Name() string { return "stub" }

func (s *StubScheduleCache) LoadGames(ctx context.Context, date string) ([]games.Game, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	gs, ok := s.Days[date]
	if !ok {
		return nil, cache.ErrMiss
	}
	return gs, nil
}

func (s *StubScheduleCache) StoreGames(ctx context.Context, date string, gs []games.Game) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stores++
	if s.StoreErr != nil {
		return s.StoreErr
	}
	if s.Days == nil {
		s.Days = make(map[string][]games.Game)
	}
	s.Days[date] = gs
	return nil
}
