package venues

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/teams"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/geo"
)

const arenasQuery = `
	SELECT team_abbr, lat, lon
	FROM arenas
	WHERE lat IS NOT NULL AND lon IS NOT NULL;
`

// SQLSource loads arenas from an "arenas" table.
type SQLSource struct {
	DB *sql.DB
}

// NewSQLSource wraps an open database handle.
func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{DB: db}
}

// Load reads every arena row into a Lookup.
func (s *SQLSource) Load(ctx context.Context) (Lookup, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("venues: db is nil")
	}

	rows, err := s.DB.QueryContext(ctx, arenasQuery)
	if err != nil {
		return nil, fmt.Errorf("venues: query arenas: %w", err)
	}
	defer rows.Close()

	out := make(Lookup)
	for rows.Next() {
		var (
			team     string
			lat, lon float64
		)
		if err := rows.Scan(&team, &lat, &lon); err != nil {
			return nil, fmt.Errorf("venues: scan arena row: %w", err)
		}
		out[teams.Normalize(team)] = geo.Point{Lat: lat, Lon: lon}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("venues: arena row iteration: %w", err)
	}
	return out, nil
}
