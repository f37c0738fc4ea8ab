package testutil

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/teams"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/timeutil"
)

// MustDate parses a YYYY-MM-DD date or panics; intended for tests.
func MustDate(v string) time.Time {
	d, err := timeutil.ParseDate(v)
	if err != nil {
		panic(err)
	}
	return d
}

// GameOn returns a scheduled game between away and home on date.
func GameOn(date, away, home string) games.Game {
	a, h := teams.Normalize(away), teams.Normalize(home)
	return games.Game{
		ID:       fmt.Sprintf("test-%s-%s-%s", date, a, h),
		Provider: "test",
		Date:     date,
		AwayTeam: a,
		HomeTeam: h,
		Status:   games.StatusScheduled,
	}
}

// GameAt is GameOn with a start time.
func GameAt(date, away, home string, start time.Time) games.Game {
	g := GameOn(date, away, home)
	g.StartTime = &start
	return g
}
