package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/app/pressure"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/config"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/metrics"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/providers"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/publish"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/render"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/snapshots"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/store"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/venues"
)

// pipeline is the report service plus the upstream resources it holds.
type pipeline struct {
	service  *pressure.Service
	store    *store.MemoryStore
	provider providerChain
	caches   cacheComponents
	syncer   *snapshots.Syncer
}

// buildPipeline wires provider -> cache -> service. A nil provider is built from cfg.
func buildPipeline(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.GameProvider, recorder *metrics.Recorder) pipeline {
	factory := newProviderFactory(logger, recorder)
	var chain providerChain
	if provider == nil {
		chain = factory.build(cfg)
	} else {
		chain = factory.wrap(cfg, provider)
	}

	loc := resolveLocation(cfg.Timezone, logger)
	caches := buildScheduleCache(ctx, cfg.Cache, logger)
	source := providers.NewCachingProvider(chain.provider, caches.cache, loc, recorder, logger)
	lookup := venues.Load(ctx, venues.Config{
		CSVPath:     cfg.Venues.CSVPath,
		DatabaseURL: cfg.Venues.DatabaseURL,
	}, logger)

	memoryStore := store.NewMemoryStore(0)
	return pipeline{
		service:  buildService(cfg, source, lookup, loc, memoryStore, recorder, logger),
		store:    memoryStore,
		provider: chain,
		caches:   caches,
		syncer:   buildSyncer(cfg, chain.provider, caches.fs, loc, logger),
	}
}

// Pipeline runs the report, render and publish pass outside the long-running server.
type Pipeline struct {
	p      pipeline
	logger *slog.Logger
}

// NewPipeline wires the same provider, cache, venue and publish stack the server uses.
func NewPipeline(ctx context.Context, cfg config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	return &Pipeline{
		p:      buildPipeline(ctx, cfg, logger, nil, metrics.NewRecorder()),
		logger: logger,
	}
}

// Today is the current date in the configured timezone.
func (p *Pipeline) Today() string { return p.p.service.Today() }

// Run computes, renders and (when configured) publishes the report for date.
func (p *Pipeline) Run(ctx context.Context, date string) (pressure.RunResult, error) {
	return p.p.service.Run(ctx, date)
}

// Close releases the rate limiter and cache connection.
func (p *Pipeline) Close() {
	releaseUpstream(p.p.provider, p.p.caches, p.logger)
}

func releaseUpstream(chain providerChain, caches cacheComponents, logger *slog.Logger) {
	if chain.closer != nil {
		chain.closer.Close()
	}
	if err := caches.Close(); err != nil {
		logging.Warn(logger, "schedule cache close failed", "error", err)
	}
}

func resolveLocation(tz string, logger *slog.Logger) *time.Location {
	if loc := providers.ResolveTimezone(tz); loc != nil {
		return loc
	}
	logging.Warn(logger, "unknown timezone, using UTC", "timezone", tz)
	return time.UTC
}

func buildService(cfg config.Config, source providers.GameProvider, lookup venues.Lookup, loc *time.Location, st *store.MemoryStore, recorder *metrics.Recorder, logger *slog.Logger) *pressure.Service {
	renderer := render.New(render.Options{
		OutDir:   cfg.Render.OutDir,
		PerSlide: cfg.Render.PerSlide,
		LogoPath: cfg.Render.LogoPath,
		Location: loc,
	}, logger)
	opts := []pressure.Option{
		pressure.WithStore(st),
		pressure.WithRenderer(renderer),
		pressure.WithRecorder(recorder),
		pressure.WithLogger(logger),
	}
	if pub := buildPublisher(cfg.Publish, logger); pub != nil {
		opts = append(opts, pressure.WithPublisher(pub))
	}
	return pressure.NewService(source, lookup, pressure.Config{
		HistoryDays: cfg.HistoryDays,
		Location:    loc,
	}, opts...)
}

// buildPublisher returns nil when publishing is off or the credentials are incomplete.
func buildPublisher(cfg config.PublishConfig, logger *slog.Logger) *publish.Publisher {
	if !cfg.Enabled {
		return nil
	}
	pub, err := publish.New(publish.Config{
		Token:     cfg.Token,
		Owner:     cfg.Owner,
		Repo:      cfg.Repo,
		Branch:    cfg.Branch,
		PagesDir:  cfg.PagesDir,
		Subdir:    cfg.Subdir,
		UserAgent: cfg.UserAgent,
		APIURL:    cfg.APIURL,
	}, logger)
	if err != nil {
		logging.Warn(logger, "publishing disabled", "error", err)
		return nil
	}
	return pub
}
