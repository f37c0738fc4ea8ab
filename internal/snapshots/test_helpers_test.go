package snapshots

import (
	"os"
	"testing"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func simpleSnapshot(date string) games.DaySchedule {
	return games.NewDaySchedule(date, []games.Game{
		{ID: date, Date: date, AwayTeam: "TOR", HomeTeam: "BOS"},
	})
}

func writeSimpleSnapshot(t *testing.T, w *Writer, date string) {
	t.Helper()
	if err := w.WriteGamesSnapshot(date, simpleSnapshot(date)); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", date, err)
	}
}

func requireSnapshotExists(t *testing.T, w *Writer, date string) {
	t.Helper()
	if _, err := os.Stat(GameSnapshotPath(w.BasePath(), date)); err != nil {
		t.Fatalf("expected snapshot for %s to be written: %v", date, err)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}
