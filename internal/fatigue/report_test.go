package fatigue

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/teams"
)

func TestReportTeamLoadAndHotTeams(t *testing.T) {
	r := Report{
		Date: "2026-01-20",
		Loads: Loads{
			"TOR": {Team: "TOR", BackToBack: true, ThreeInFour: 2, FourInSix: 2},
			"BOS": {Team: "BOS", ThreeInFour: 1, FourInSix: 2},
			"MTL": {Team: "MTL", ThreeInFour: 3, FourInSix: 3},
			"ANA": {Team: "ANA", ThreeInFour: 2, FourInSix: 4},
		},
	}
	if _, ok := r.TeamLoad("BOS"); !ok {
		t.Fatalf("expected BOS load")
	}
	if _, ok := r.TeamLoad("SEA"); ok {
		t.Fatalf("expected no load for SEA")
	}
	hot := r.HotTeams()
	want := []teams.ID{"ANA", "MTL", "TOR"}
	if len(hot) != len(want) {
		t.Fatalf("expected %v, got %v", want, hot)
	}
	for i := range want {
		if hot[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, hot)
		}
	}
}

func TestReportJSONKeepsUnknownTravelNull(t *testing.T) {
	km := 1200.5
	r := Report{Loads: Loads{
		"TOR": {Team: "TOR", TravelKm: &km},
		"BOS": {Team: "BOS"},
	}}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `"BOS":{"team":"BOS","backToBack":false,"threeInFour":0,"fourInSix":0,"travelKm":null}`) {
		t.Fatalf("expected null travel for BOS, got %s", body)
	}
	if !strings.Contains(body, `"travelKm":1200.5`) {
		t.Fatalf("expected TOR travel, got %s", body)
	}
}
