package venues

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/teams"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/geo"
)

const (
	colTeam = "team_abbr"
	colLat  = "lat"
	colLon  = "lon"

	// Headerless files carry the team code first and lat/lon in columns 4 and 5.
	legacyTeamCol = 0
	legacyLatCol  = 4
	legacyLonCol  = 5
)

// ErrMissingColumns is returned for a headered CSV lacking team_abbr, lat or lon.
var ErrMissingColumns = errors.New("venues: arenas csv must include team_abbr, lat, lon columns")

// LoadCSVFile reads an arenas CSV from disk.
func LoadCSVFile(path string) (Lookup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("venues: open %s: %w", path, err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV parses arenas either with a header row naming team_abbr/lat/lon
// (any order, case-insensitive) or in the headerless legacy layout.
// Rows that are short or carry non-numeric coordinates are skipped.
func ParseCSV(r io.Reader) (Lookup, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("venues: read csv: %w", err)
	}

	out := make(Lookup)
	if len(rows) == 0 {
		return out, nil
	}

	teamCol, latCol, lonCol := legacyTeamCol, legacyLatCol, legacyLonCol
	data := rows
	if cols, headered := headerColumns(rows[0]); headered {
		var ok bool
		if teamCol, ok = cols[colTeam]; !ok {
			return nil, ErrMissingColumns
		}
		if latCol, ok = cols[colLat]; !ok {
			return nil, ErrMissingColumns
		}
		if lonCol, ok = cols[colLon]; !ok {
			return nil, ErrMissingColumns
		}
		data = rows[1:]
	}

	maxCol := max(teamCol, latCol, lonCol)
	for _, row := range data {
		if len(row) <= maxCol {
			continue
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(row[latCol]), 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(row[lonCol]), 64)
		if err != nil {
			continue
		}
		out[teams.Normalize(row[teamCol])] = geo.Point{Lat: lat, Lon: lon}
	}
	return out, nil
}

func headerColumns(header []string) (map[string]int, bool) {
	cols := make(map[string]int, len(header))
	headered := false
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, seen := cols[key]; !seen {
			cols[key] = i
		}
		if key == colTeam || key == colLat || key == colLon {
			headered = true
		}
	}
	return cols, headered
}
