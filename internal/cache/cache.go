// Package cache holds shared schedule-cache contracts and the Redis-backed cache.
package cache

import (
	"context"
	"errors"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
)

// ErrMiss is returned when no schedule is cached for a date.
var ErrMiss = errors.New("cache: miss")

// ScheduleCache stores one day's games keyed by YYYY-MM-DD date.
type ScheduleCache interface {
	Name() string
	LoadGames(ctx context.Context, date string) ([]games.Game, error)
	StoreGames(ctx context.Context, date string, gs []games.Game) error
}
