package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/cache"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/config"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/providers"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/snapshots"
)

var dialRedis = cache.DialRedis

type cacheComponents struct {
	cache  cache.ScheduleCache
	fs     *snapshots.Cache
	closer func() error
}

func (c cacheComponents) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// buildScheduleCache selects the cache for settled dates. A Redis dial failure
// degrades to no cache.
func buildScheduleCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) cacheComponents {
	switch cfg.Kind {
	case config.CacheFS:
		c := snapshots.NewCache(cfg.SnapshotDir, cfg.RetentionDays)
		logging.Info(logger, "schedule cache ready", logging.FieldCache, c.Name(), "path", cfg.SnapshotDir)
		return cacheComponents{cache: c, fs: c}
	case config.CacheRedis:
		rc, err := dialRedis(ctx, cfg.RedisAddr, cfg.RedisTTL)
		if err != nil {
			logging.Warn(logger, "redis cache unavailable, continuing without schedule cache", "addr", cfg.RedisAddr, "error", err)
			return cacheComponents{}
		}
		logging.Info(logger, "schedule cache ready", logging.FieldCache, rc.Name(), "addr", cfg.RedisAddr)
		return cacheComponents{cache: rc, closer: rc.Close}
	default:
		return cacheComponents{}
	}
}

// buildSyncer returns a snapshot syncer when the filesystem cache is in use.
func buildSyncer(cfg config.Config, provider providers.GameProvider, fs *snapshots.Cache, loc *time.Location, logger *slog.Logger) *snapshots.Syncer {
	if fs == nil {
		return nil
	}
	sync := cfg.Cache.Sync
	return snapshots.NewSyncer(provider, fs, snapshots.SyncConfig{
		Enabled:      sync.Enabled,
		Days:         sync.Days,
		Interval:     sync.Interval,
		DailyHourUTC: sync.DailyHourUTC,
		Location:     loc,
	}, logger)
}
