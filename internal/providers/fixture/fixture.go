// Package fixture serves a deterministic league calendar for local runs and tests.
package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/teams"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/timeutil"
)

const providerName = "fixture"

// League is the rotation of team codes the calendar is built from.
var League = []teams.ID{
	"ANA", "BOS", "BUF", "CGY", "CHI", "COL", "DAL", "DET",
	"EDM", "LAK", "MTL", "NYR", "OTT", "SEA", "TOR", "VAN",
}

var firstFaceoff = 23 * time.Hour // 18:00 or 19:00 Eastern

// Provider returns a round-robin schedule that varies by date but never by call.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

func (p *Provider) Name() string { return providerName }

// FetchGames returns between two and six games for date. An empty or invalid
// date means today in UTC.
func (p *Provider) FetchGames(ctx context.Context, date string) ([]games.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	day, err := timeutil.ParseDate(date)
	if err != nil {
		day = timeutil.Today(p.now(), time.UTC)
	}
	date = timeutil.FormatDate(day)
	ordinal := int(day.Unix() / 86400)

	pairs := roundPairs(ordinal % (len(League) - 1))
	count := 2 + ordinal%5
	offset := ordinal % len(pairs)

	out := make([]games.Game, 0, count)
	for i := 0; i < count; i++ {
		pair := pairs[(offset+i)%len(pairs)]
		away, home := pair[0], pair[1]
		if (ordinal+i)%2 == 1 {
			away, home = home, away
		}
		start := day.Add(firstFaceoff + time.Duration(i)*30*time.Minute)
		out = append(out, games.Game{
			ID:        fmt.Sprintf("%s-%s-%d", providerName, date, i+1),
			Provider:  providerName,
			Date:      date,
			AwayTeam:  away,
			HomeTeam:  home,
			StartTime: &start,
			Status:    games.StatusScheduled,
		})
	}
	return out, nil
}

// roundPairs returns the pairings of one round of a circle-method round robin.
func roundPairs(round int) [][2]teams.ID {
	n := len(League)
	rotated := make([]teams.ID, n)
	rotated[0] = League[0]
	for i := 1; i < n; i++ {
		rotated[i] = League[1+(i-1+round)%(n-1)]
	}
	pairs := make([][2]teams.ID, 0, n/2)
	for i := 0; i < n/2; i++ {
		pairs = append(pairs, [2]teams.ID{rotated[i], rotated[n-1-i]})
	}
	return pairs
}
