package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/fatigue"
)

// Thresholds at which a chip is outlined as hot.
const (
	HotTravelKm    = fatigue.HotTravelKm
	HotFourInSix   = fatigue.HotFourInSix
	HotThreeInFour = fatigue.HotThreeInFour
)

// Chip is one labelled pressure indicator drawn next to a team.
type Chip struct {
	Kind  string
	Value string
	Hot   bool
}

func (c Chip) Text() string {
	return c.Kind + ":" + c.Value
}

// Chips returns the indicators for a team, right-to-left draw order first.
// A zero TeamLoad renders as rested with unknown travel.
func Chips(load fatigue.TeamLoad) []Chip {
	b2b := "N"
	if load.BackToBack {
		b2b = "Y"
	}
	return []Chip{
		{Kind: "TRVL", Value: FormatKm(load.TravelKm), Hot: load.TravelKm != nil && *load.TravelKm >= HotTravelKm},
		{Kind: "4IN6", Value: strconv.Itoa(load.FourInSix), Hot: load.FourInSix >= HotFourInSix},
		{Kind: "3IN4", Value: strconv.Itoa(load.ThreeInFour), Hot: load.ThreeInFour >= HotThreeInFour},
		{Kind: "B2B", Value: b2b, Hot: load.BackToBack},
	}
}

// FormatKm renders a distance compactly: unknown as a dash, under 1000 as whole
// kilometres, otherwise thousands with one decimal.
func FormatKm(km *float64) string {
	if km == nil {
		return "—"
	}
	if *km < 1000 {
		return strconv.Itoa(int(math.Round(*km)))
	}
	return fmt.Sprintf("%.1fk", *km/1000.0)
}
