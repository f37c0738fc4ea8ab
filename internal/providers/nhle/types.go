package nhle

import (
	"bytes"
	"encoding/json"
)

type scheduleResponse struct {
	GameWeek []gameDayResponse `json:"gameWeek"`
	Games    []gameResponse    `json:"games"`
}

type gameDayResponse struct {
	Date  string         `json:"date"`
	Games []gameResponse `json:"games"`
}

type gameResponse struct {
	ID                int64        `json:"id"`
	Season            int          `json:"season"`
	GameType          int          `json:"gameType"`
	GameDate          string       `json:"gameDate"`
	StartTimeUTC      string       `json:"startTimeUTC"`
	GameState         string       `json:"gameState"`
	GameScheduleState string       `json:"gameScheduleState"`
	Venue             localized    `json:"venue"`
	AwayTeam          teamResponse `json:"awayTeam"`
	HomeTeam          teamResponse `json:"homeTeam"`
}

type teamResponse struct {
	ID         int       `json:"id"`
	Abbrev     localized `json:"abbrev"`
	TriCode    localized `json:"triCode"`
	TeamAbbrev localized `json:"teamAbbrev"`
}

// localized decodes either a bare string or the API's {"default": "..."} object.
type localized string

func (l *localized) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = localized(s)
		return nil
	}
	var obj struct {
		Default string `json:"default"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*l = localized(obj.Default)
	return nil
}
