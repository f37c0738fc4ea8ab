package games

import (
	"sort"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/teams"
)

// GameStatus mirrors the shared contract for game lifecycle states.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinal      GameStatus = "FINAL"
	StatusPostponed  GameStatus = "POSTPONED"
	StatusCanceled   GameStatus = "CANCELED"
)

// Game is one scheduled game. A game is identified by (Date, AwayTeam, HomeTeam);
// ID and Provider are upstream metadata only.
type Game struct {
	ID        string     `json:"id"`
	Provider  string     `json:"provider"`
	Date      string     `json:"date"`
	AwayTeam  teams.ID   `json:"awayTeam"`
	HomeTeam  teams.ID   `json:"homeTeam"`
	StartTime *time.Time `json:"startTime,omitempty"`
	Venue     string     `json:"venue,omitempty"`
	Status    GameStatus `json:"status"`
}

// Involves reports whether team plays in the game, home or away.
func (g Game) Involves(team teams.ID) bool {
	return g.AwayTeam == team || g.HomeTeam == team
}

// DaySchedule is the list of games scheduled on a single date.
type DaySchedule struct {
	Date  string `json:"date"`
	Games []Game `json:"games"`
}

// NewDaySchedule builds a DaySchedule payload.
func NewDaySchedule(date string, games []Game) DaySchedule {
	if games == nil {
		games = []Game{}
	}
	return DaySchedule{
		Date:  date,
		Games: games,
	}
}

// TeamsOf returns the union of away/home teams across games, sorted.
func TeamsOf(games []Game) []teams.ID {
	seen := make(map[teams.ID]struct{}, len(games)*2)
	out := make([]teams.ID, 0, len(games)*2)
	for _, g := range games {
		for _, t := range [2]teams.ID{g.AwayTeam, g.HomeTeam} {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SortByStart returns a copy of games ordered by start time. Games without a
// start time come first; ties keep their original order.
func SortByStart(games []Game) []Game {
	out := make([]Game, len(games))
	copy(out, games)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].StartTime, out[j].StartTime
		switch {
		case a == nil:
			return b != nil
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})
	return out
}
