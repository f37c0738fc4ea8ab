package snapshots

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/cache"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
)

func TestFSStoreMissingIsCacheMiss(t *testing.T) {
	s := NewFSStore(t.TempDir())
	if _, err := s.LoadGames("2026-01-20"); !errors.Is(err, cache.ErrMiss) {
		t.Fatalf("expected cache.ErrMiss, got %v", err)
	}
	if s.HasSnapshot("2026-01-20") {
		t.Fatalf("expected no snapshot")
	}
}

func TestFSStoreRejectsInvalidInput(t *testing.T) {
	var nilStore *FSStore
	if _, err := nilStore.LoadGames("2026-01-20"); err == nil {
		t.Fatalf("expected error for nil store")
	}
	if nilStore.HasSnapshot("2026-01-20") {
		t.Fatalf("expected nil store to report no snapshot")
	}
	if _, err := NewFSStore(t.TempDir()).LoadGames(""); err == nil {
		t.Fatalf("expected error for empty date")
	}
}

func TestFSStoreDecodeError(t *testing.T) {
	dir := t.TempDir()
	path := GameSnapshotPath(dir, "2026-01-20")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{bad"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewFSStore(dir).LoadGames("2026-01-20")
	if err == nil || errors.Is(err, cache.ErrMiss) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestFSStoreFillsMissingDateAndGames(t *testing.T) {
	dir := t.TempDir()
	path := GameSnapshotPath(dir, "2026-01-20")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	_ = os.WriteFile(path, []byte(`{}`), 0o644)

	day, err := NewFSStore(dir).LoadGames("2026-01-20")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if day.Date != "2026-01-20" || day.Games == nil {
		t.Fatalf("expected defaults filled, got %+v", day)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c := NewCache(t.TempDir(), 10000)
	ctx := context.Background()
	if c.Name() != "fs" {
		t.Fatalf("unexpected name %s", c.Name())
	}
	if _, err := c.LoadGames(ctx, "2026-01-20"); !errors.Is(err, cache.ErrMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
	if err := c.StoreGames(ctx, "2026-01-20", nil); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	gs, err := c.LoadGames(ctx, "2026-01-20")
	if err != nil || gs == nil || len(gs) != 0 {
		t.Fatalf("expected cached empty day, got %#v err %v", gs, err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if err := c.StoreGames(canceled, "2026-01-21", []games.Game{{ID: "g"}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled store, got %v", err)
	}
	if _, err := c.LoadGames(canceled, "2026-01-20"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled load, got %v", err)
	}
}
