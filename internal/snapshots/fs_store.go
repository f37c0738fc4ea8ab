package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/cache"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
)

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadGames reads the schedule for date (YYYY-MM-DD) from {basePath}/games/{date}.json.
// A missing file is reported as cache.ErrMiss.
func (s *FSStore) LoadGames(date string) (games.DaySchedule, error) {
	if s == nil {
		return games.DaySchedule{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return games.DaySchedule{}, errors.New("snapshot date required")
	}

	f, err := os.Open(GameSnapshotPath(s.basePath, date))
	if errors.Is(err, fs.ErrNotExist) {
		return games.DaySchedule{}, cache.ErrMiss
	}
	if err != nil {
		return games.DaySchedule{}, err
	}
	defer f.Close()

	var payload games.DaySchedule
	if err := json.NewDecoder(f).Decode(&payload); err != nil {
		return games.DaySchedule{}, fmt.Errorf("snapshot %s: %w", date, err)
	}
	if payload.Date == "" {
		payload.Date = date
	}
	if payload.Games == nil {
		payload.Games = []games.Game{}
	}
	return payload, nil
}

// HasSnapshot reports whether a snapshot file exists for date.
func (s *FSStore) HasSnapshot(date string) bool {
	if s == nil || s.basePath == "" || date == "" {
		return false
	}
	_, err := os.Stat(GameSnapshotPath(s.basePath, date))
	return err == nil
}

// Cache adapts the filesystem store and writer to cache.ScheduleCache.
type Cache struct {
	store  *FSStore
	writer *Writer
}

var _ cache.ScheduleCache = (*Cache)(nil)

// NewCache returns a filesystem schedule cache rooted at basePath.
func NewCache(basePath string, retentionDays int) *Cache {
	return &Cache{
		store:  NewFSStore(basePath),
		writer: NewWriter(basePath, retentionDays),
	}
}

func (c *Cache) Name() string { return "fs" }

func (c *Cache) LoadGames(ctx context.Context, date string) ([]games.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	day, err := c.store.LoadGames(date)
	if err != nil {
		return nil, err
	}
	return day.Games, nil
}

func (c *Cache) StoreGames(ctx context.Context, date string, gs []games.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.writer.WriteGamesSnapshot(date, games.NewDaySchedule(date, gs))
}

// Store exposes the underlying reader.
func (c *Cache) Store() *FSStore { return c.store }

// Writer exposes the underlying writer.
func (c *Cache) Writer() *Writer { return c.writer }
