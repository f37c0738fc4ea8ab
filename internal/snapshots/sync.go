package snapshots

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/providers"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/timeutil"
)

// Syncer backfills settled past dates into the snapshot cache so report
// history windows read from disk rather than upstream.
type Syncer struct {
	provider  providers.GameProvider
	writer    *Writer
	store     *FSStore
	cfg       SyncConfig
	logger    *slog.Logger
	now       func() time.Time
	newTicker func(time.Duration) *time.Ticker
}

// SyncConfig controls snapshot sync behavior.
type SyncConfig struct {
	Enabled      bool
	Days         int
	Interval     time.Duration
	DailyHourUTC int
	Location     *time.Location
}

// NewSyncer constructs a snapshot syncer writing through c.
func NewSyncer(provider providers.GameProvider, c *Cache, cfg SyncConfig, logger *slog.Logger) *Syncer {
	if cfg.Days <= 0 {
		cfg.Days = 14
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.DailyHourUTC < 0 || cfg.DailyHourUTC > 23 {
		cfg.DailyHourUTC = 10
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	s := &Syncer{
		provider:  provider,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		newTicker: time.NewTicker,
	}
	if c != nil {
		s.writer = c.Writer()
		s.store = c.Store()
	}
	return s
}

// Run performs a one-time backfill of missing past dates, spaced by Interval,
// then repeats daily at DailyHourUTC. Callers should run this in a goroutine.
func (s *Syncer) Run(ctx context.Context) {
	if s == nil || !s.cfg.Enabled || s.writer == nil || s.provider == nil {
		return
	}
	logging.Info(s.logger, "snapshot sync starting",
		"past_days", s.cfg.Days,
		"interval", s.cfg.Interval.String(),
		"daily_hour_utc", s.cfg.DailyHourUTC,
	)
	s.backfill(ctx, s.now())
	go s.daily(ctx)
}

func (s *Syncer) backfill(ctx context.Context, now time.Time) {
	dates := s.buildDates(now)
	for i, date := range dates {
		if ctx.Err() != nil {
			return
		}
		s.fetchAndWrite(ctx, date)
		if i < len(dates)-1 {
			s.sleep(ctx, s.cfg.Interval)
		}
	}
}

func (s *Syncer) daily(ctx context.Context) {
	ticker := s.newTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case tick := <-ticker.C:
			if tick.UTC().Hour() == s.cfg.DailyHourUTC {
				s.backfill(ctx, s.now())
			}
		}
	}
}

// buildDates lists missing dates from yesterday back Days days, newest first.
func (s *Syncer) buildDates(now time.Time) []string {
	today := timeutil.Today(now, s.cfg.Location)
	var dates []string
	for i := 1; i <= s.cfg.Days; i++ {
		date := timeutil.FormatDate(timeutil.AddDays(today, -i))
		if !s.store.HasSnapshot(date) {
			dates = append(dates, date)
		}
	}
	return dates
}

func (s *Syncer) fetchAndWrite(ctx context.Context, date string) {
	start := time.Now()
	gs, err := s.provider.FetchGames(ctx, date)
	if err != nil {
		logging.Warn(s.logger, "snapshot sync fetch failed", logging.FieldDate, date, "error", err)
		return
	}
	if err := s.writer.WriteGamesSnapshot(date, games.NewDaySchedule(date, gs)); err != nil {
		logging.Warn(s.logger, "snapshot sync write failed", logging.FieldDate, date, "error", err)
		return
	}
	logging.Info(s.logger, "snapshot written",
		logging.FieldDate, date,
		logging.FieldCount, len(gs),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (s *Syncer) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
