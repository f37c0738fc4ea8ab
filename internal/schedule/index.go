// Package schedule indexes per-date game lists over a history window and
// answers per-team window queries against it.
package schedule

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/teams"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/timeutil"
)

// Index is a read-only arena of date -> games covering [Start, End].
// Missing dates are treated as days without games.
type Index struct {
	start time.Time
	end   time.Time
	days  map[string][]games.Game
}

// Appearance is one game played by a team, tagged with its schedule date.
type Appearance struct {
	Date time.Time
	Game games.Game
}

// NewIndex copies byDate (keyed YYYY-MM-DD) into a new index spanning [start, end].
// Entries outside the span are dropped.
func NewIndex(start, end time.Time, byDate map[string][]games.Game) *Index {
	start, end = timeutil.Day(start), timeutil.Day(end)
	mustOrdered(start, end)

	days := make(map[string][]games.Game, len(byDate))
	timeutil.EachDay(start, end, func(d time.Time) {
		key := timeutil.FormatDate(d)
		list, ok := byDate[key]
		if !ok {
			return
		}
		cp := make([]games.Game, len(list))
		copy(cp, list)
		days[key] = cp
	})
	return &Index{start: start, end: end, days: days}
}

// Start returns the first indexed date.
func (idx *Index) Start() time.Time { return idx.start }

// End returns the last indexed date.
func (idx *Index) End() time.Time { return idx.end }

// Games returns a copy of the games recorded on day.
func (idx *Index) Games(day time.Time) []games.Game {
	list := idx.days[timeutil.FormatDate(timeutil.Day(day))]
	out := make([]games.Game, len(list))
	copy(out, list)
	return out
}

// GamesPlayedBy counts games in [start, end] where team is home or away.
func (idx *Index) GamesPlayedBy(team teams.ID, start, end time.Time) int {
	n := 0
	idx.each(team, start, end, func(time.Time, games.Game) { n++ })
	return n
}

// GamesInOrderBy returns team's games in [start, end] ascending by date.
// Games sharing a date keep the order they were recorded in.
func (idx *Index) GamesInOrderBy(team teams.ID, start, end time.Time) []Appearance {
	var out []Appearance
	idx.each(team, start, end, func(d time.Time, g games.Game) {
		out = append(out, Appearance{Date: d, Game: g})
	})
	return out
}

func (idx *Index) each(team teams.ID, start, end time.Time, fn func(time.Time, games.Game)) {
	start, end = timeutil.Day(start), timeutil.Day(end)
	mustOrdered(start, end)
	if idx == nil {
		return
	}
	if start.Before(idx.start) {
		start = idx.start
	}
	if end.After(idx.end) {
		end = idx.end
	}
	timeutil.EachDay(start, end, func(d time.Time) {
		for _, g := range idx.days[timeutil.FormatDate(d)] {
			if g.Involves(team) {
				fn(d, g)
			}
		}
	})
}

func mustOrdered(start, end time.Time) {
	if start.After(end) {
		panic(fmt.Sprintf("schedule: window start %s is after end %s",
			timeutil.FormatDate(start), timeutil.FormatDate(end)))
	}
}
