package fatigue

import (
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/teams"
)

// Levels at which a signal counts as a flag.
const (
	HotTravelKm    = 3000.0
	HotFourInSix   = 4
	HotThreeInFour = 3
)

// Flagged reports whether any density signal reaches its flag level.
func (l TeamLoad) Flagged() bool {
	return l.BackToBack || l.ThreeInFour >= HotThreeInFour || l.FourInSix >= HotFourInSix
}

// Report is one computed view of a target date: the day's games and the load
// of every team playing in them.
type Report struct {
	RunID       string       `json:"runId"`
	Date        string       `json:"date"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Games       []games.Game `json:"games"`
	Loads       Loads        `json:"loads"`
}

// TeamLoad returns the load of team when it plays on the report date.
func (r Report) TeamLoad(team teams.ID) (TeamLoad, bool) {
	return r.Loads.Get(team)
}

// HotTeams returns, in team order, the teams carrying any density flag.
func (r Report) HotTeams() []teams.ID {
	var out []teams.ID
	for _, l := range r.Loads.Sorted() {
		if l.Flagged() {
			out = append(out, l.Team)
		}
	}
	return out
}
