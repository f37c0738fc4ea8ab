// Package fatigue derives schedule-density signals for every team playing on a date.
package fatigue

import (
	"fmt"
	"sort"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/teams"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/geo"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/schedule"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/timeutil"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/venues"
)

// Trailing window widths in days, each ending at and including the target date.
const (
	threeInFourDays = 4
	fourInSixDays   = 6
	travelDays      = 7
)

// TeamLoad is the set of density signals for one team on the target date.
// A nil TravelKm means the distance is unknown, which is distinct from zero.
type TeamLoad struct {
	Team        teams.ID `json:"team"`
	BackToBack  bool     `json:"backToBack"`
	ThreeInFour int      `json:"threeInFour"`
	FourInSix   int      `json:"fourInSix"`
	TravelKm    *float64 `json:"travelKm"`
}

// TravelKnown reports whether a travel distance could be computed.
func (l TeamLoad) TravelKnown() bool {
	return l.TravelKm != nil
}

// Loads maps each team playing on the target date to its TeamLoad.
type Loads map[teams.ID]TeamLoad

// Teams returns the teams in sorted order.
func (l Loads) Teams() []teams.ID {
	out := make([]teams.ID, 0, len(l))
	for t := range l {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Sorted returns the loads ordered by team.
func (l Loads) Sorted() []TeamLoad {
	out := make([]TeamLoad, 0, len(l))
	for _, t := range l.Teams() {
		out = append(out, l[t])
	}
	return out
}

// Get returns the load for team when it played on the target date.
func (l Loads) Get(team teams.ID) (TeamLoad, bool) {
	load, ok := l[team]
	return load, ok
}

// Lookup returns the load for a team that played on the target date. Asking
// about any other team is a caller bug and panics.
func (l Loads) Lookup(team teams.ID) TeamLoad {
	load, ok := l[team]
	if !ok {
		panic(fmt.Sprintf("fatigue: no load computed for team %q", team))
	}
	return load
}

// ComputeLoads derives back-to-back, 3-in-4, 4-in-6 and 7-day travel for every
// team in today's games. Missing data never fails the computation: gaps become
// zero counts or an unknown travel distance. A nil lookup leaves travel unknown
// for every team.
func ComputeLoads(today []games.Game, idx *schedule.Index, target time.Time, lookup venues.Lookup) Loads {
	target = timeutil.Day(target)
	yesterday := timeutil.AddDays(target, -1)

	loads := make(Loads)
	for _, team := range games.TeamsOf(today) {
		load := TeamLoad{
			Team:        team,
			BackToBack:  idx.GamesPlayedBy(team, yesterday, yesterday) > 0,
			ThreeInFour: idx.GamesPlayedBy(team, trailingStart(target, threeInFourDays), target),
			FourInSix:   idx.GamesPlayedBy(team, trailingStart(target, fourInSixDays), target),
		}
		if lookup != nil {
			load.TravelKm = travelKm(idx, team, target, lookup)
		}
		loads[team] = load
	}
	return loads
}

// travelKm sums consecutive arena-to-arena distances over the trailing week.
// Each game is placed at the home team's arena; games whose arena is unknown
// are skipped rather than counted as zero distance.
func travelKm(idx *schedule.Index, team teams.ID, target time.Time, lookup venues.Lookup) *float64 {
	window := idx.GamesInOrderBy(team, trailingStart(target, travelDays), target)
	if len(window) < 2 {
		return nil
	}

	points := make([]geo.Point, 0, len(window))
	for _, app := range window {
		if p, ok := lookup.Locate(app.Game.HomeTeam); ok {
			points = append(points, p)
		}
	}
	if len(points) < 2 {
		return nil
	}

	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].DistanceKm(points[i])
	}
	return &total
}

func trailingStart(target time.Time, days int) time.Time {
	return timeutil.AddDays(target, -(days - 1))
}
