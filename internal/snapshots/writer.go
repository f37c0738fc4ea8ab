package snapshots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/timeutil"
)

type snapshotKind string

const (
	kindGames snapshotKind = "games"

	defaultRetentionDays = 30
)

// Writer persists per-date schedule snapshots and the manifest, pruning
// snapshots older than the retention window.
type Writer struct {
	mu            sync.Mutex
	basePath      string
	retentionDays int
	now           func() time.Time
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteGamesSnapshot writes the schedule for date (YYYY-MM-DD) and prunes old snapshots.
// Game order is preserved as recorded.
func (w *Writer) WriteGamesSnapshot(date string, snapshot games.DaySchedule) error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return fmt.Errorf("snapshot date %q: %w", date, err)
	}
	if snapshot.Date == "" {
		snapshot.Date = date
	}
	if snapshot.Games == nil {
		snapshot.Games = []games.Game{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	target := GameSnapshotPath(w.basePath, date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err != nil || !bytes.Equal(existing, data) {
		if err := writeAtomic(target, data); err != nil {
			return err
		}
	}

	return w.updateManifest(date)
}

func (w *Writer) updateManifest(date string) error {
	now := w.now()
	m, err := ReadManifest(w.basePath)
	if err != nil {
		m = defaultManifest(w.retentionDays, now)
	}

	dates, err := w.listDates()
	if err != nil {
		return err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}

	m.Games.Dates = w.pruneOldSnapshots(dates, now)
	m.Games.LastRefreshed = now.UTC()
	m.Retention.GamesDays = w.retentionDays

	return writeManifest(w.basePath, m, now)
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func (w *Writer) listDates() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(w.basePath, string(kindGames)))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var dates []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		dates = append(dates, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(dates)
	return dates, nil
}

func (w *Writer) pruneOldSnapshots(dates []string, now time.Time) []string {
	cutoff := timeutil.AddDays(timeutil.Today(now, time.UTC), -w.retentionDays)
	keep := make([]string, 0, len(dates))
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err == nil && parsed.Before(cutoff) {
			_ = os.Remove(GameSnapshotPath(w.basePath, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep
}
