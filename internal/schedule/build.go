package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/timeutil"
)

// Fetcher returns the games scheduled on a YYYY-MM-DD date.
type Fetcher interface {
	FetchGames(ctx context.Context, date string) ([]games.Game, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, date string) ([]games.Game, error)

func (f FetcherFunc) FetchGames(ctx context.Context, date string) ([]games.Game, error) {
	return f(ctx, date)
}

// Build fetches every date in [start, end] once and returns the completed index.
// A failed date is logged and recorded as an empty list so the remaining dates
// still contribute. A canceled context stops fetching; the dates not reached
// are left empty.
func Build(ctx context.Context, fetcher Fetcher, start, end time.Time, logger *slog.Logger) *Index {
	start, end = timeutil.Day(start), timeutil.Day(end)
	mustOrdered(start, end)

	byDate := make(map[string][]games.Game)
	failed := 0
	timeutil.EachDay(start, end, func(d time.Time) {
		date := timeutil.FormatDate(d)
		if ctx.Err() != nil {
			byDate[date] = []games.Game{}
			failed++
			return
		}
		list, err := fetcher.FetchGames(ctx, date)
		if err != nil {
			logging.Warn(logging.FromContext(ctx, logger), "schedule fetch failed, treating date as empty",
				logging.FieldDate, date,
				"error", err,
			)
			list = []games.Game{}
			failed++
		}
		if list == nil {
			list = []games.Game{}
		}
		byDate[date] = list
	})

	logging.Info(logging.FromContext(ctx, logger), "schedule index built",
		"start", timeutil.FormatDate(start),
		"end", timeutil.FormatDate(end),
		"failed_dates", failed,
	)
	return NewIndex(start, end, byDate)
}
