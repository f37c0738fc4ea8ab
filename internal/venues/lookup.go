// Package venues resolves a team's home arena location.
package venues

import (
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/teams"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/geo"
)

// Lookup maps a team to its home arena. A missing entry is an unknown venue, not an error.
// A nil Lookup means no venue data was supplied at all.
type Lookup map[teams.ID]geo.Point

// Locate returns the arena of team when known.
func (l Lookup) Locate(team teams.ID) (geo.Point, bool) {
	if l == nil {
		return geo.Point{}, false
	}
	p, ok := l[team]
	return p, ok
}
