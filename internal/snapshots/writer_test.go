package snapshots

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
)

func TestWriterWritesSnapshotAndManifest(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10)
	w.now = fixedClock(time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC))

	writeSimpleSnapshot(t, w, "2026-01-19")

	data, err := os.ReadFile(filepath.Join(dir, "games", "2026-01-19.json"))
	if err != nil || len(data) == 0 {
		t.Fatalf("expected snapshot file, got err %v", err)
	}

	m, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("expected manifest, got err %v", err)
	}
	assertDatesEqual(t, m.Games.Dates, []string{"2026-01-19"})
	if m.Retention.GamesDays != 10 || m.Version != 1 {
		t.Fatalf("unexpected manifest %+v", m)
	}
	if !m.Games.LastRefreshed.Equal(time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected last refreshed %v", m.Games.LastRefreshed)
	}
}

func TestWriterPrunesOutsideRetention(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 3)
	w.now = fixedClock(time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC))

	writeSimpleSnapshot(t, w, "2026-01-10")
	writeSimpleSnapshot(t, w, "2026-01-18")

	if _, err := os.Stat(GameSnapshotPath(dir, "2026-01-10")); !os.IsNotExist(err) {
		t.Fatalf("expected old snapshot to be pruned, got %v", err)
	}
	requireSnapshotExists(t, w, "2026-01-18")

	m, _ := ReadManifest(dir)
	assertDatesEqual(t, m.Games.Dates, []string{"2026-01-18"})
}

func TestWriterPreservesGameOrder(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 0)
	if w.retentionDays != defaultRetentionDays {
		t.Fatalf("expected default retention, got %d", w.retentionDays)
	}
	w.now = fixedClock(time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC))

	day := games.NewDaySchedule("2026-01-20", []games.Game{{ID: "z"}, {ID: "a"}})
	if err := w.WriteGamesSnapshot("2026-01-20", day); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	got, err := NewFSStore(dir).LoadGames("2026-01-20")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Games[0].ID != "z" || got.Games[1].ID != "a" {
		t.Fatalf("expected recorded order preserved, got %+v", got.Games)
	}
}

func TestWriterRejectsBadInput(t *testing.T) {
	var nilWriter *Writer
	if err := nilWriter.WriteGamesSnapshot("2026-01-20", games.DaySchedule{}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
	if nilWriter.BasePath() != "" {
		t.Fatalf("expected empty base path for nil writer")
	}
	w := NewWriter(t.TempDir(), 5)
	if err := w.WriteGamesSnapshot("", games.DaySchedule{}); err == nil {
		t.Fatalf("expected error for empty date")
	}
	if err := w.WriteGamesSnapshot("../../etc", games.DaySchedule{}); err == nil {
		t.Fatalf("expected error for non-date key")
	}
}

func TestWriterRewritesIdenticalSnapshotOnlyManifest(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10)
	w.now = fixedClock(time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC))
	writeSimpleSnapshot(t, w, "2026-01-19")
	path := GameSnapshotPath(dir, "2026-01-19")
	before, _ := os.Stat(path)

	writeSimpleSnapshot(t, w, "2026-01-19")
	after, _ := os.Stat(path)
	if !before.ModTime().Equal(after.ModTime()) {
		t.Fatalf("expected identical snapshot not to be rewritten")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected no leftover tmp file")
	}
}
