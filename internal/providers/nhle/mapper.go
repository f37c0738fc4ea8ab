package nhle

import (
	"fmt"
	"strings"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/teams"
)

// gamesForDate picks the games listed under date in gameWeek, falling back to
// the top-level games list when the week holds none for that day.
func gamesForDate(resp scheduleResponse, date string) []gameResponse {
	var out []gameResponse
	for _, day := range resp.GameWeek {
		if day.Date == date {
			out = append(out, day.Games...)
		}
	}
	if len(out) == 0 {
		out = resp.Games
	}
	return out
}

func mapGame(g gameResponse, date string) games.Game {
	return games.Game{
		ID:        fmt.Sprintf("%s-%d", providerName, g.ID),
		Provider:  providerName,
		Date:      date,
		AwayTeam:  mapTeam(g.AwayTeam),
		HomeTeam:  mapTeam(g.HomeTeam),
		StartTime: parseStart(g.StartTimeUTC),
		Venue:     strings.TrimSpace(string(g.Venue)),
		Status:    mapStatus(g.GameState, g.GameScheduleState),
	}
}

func mapTeam(t teamResponse) teams.ID {
	for _, code := range []localized{t.Abbrev, t.TriCode, t.TeamAbbrev} {
		if strings.TrimSpace(string(code)) != "" {
			return teams.Normalize(string(code))
		}
	}
	return teams.Unknown
}

func parseStart(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	ts = ts.UTC()
	return &ts
}

func mapStatus(gameState, scheduleState string) games.GameStatus {
	switch strings.ToUpper(scheduleState) {
	case "PPD", "SUSP":
		return games.StatusPostponed
	case "CNCL":
		return games.StatusCanceled
	}
	switch strings.ToUpper(gameState) {
	case "LIVE", "CRIT":
		return games.StatusInProgress
	case "FINAL", "OFF":
		return games.StatusFinal
	default:
		return games.StatusScheduled
	}
}
