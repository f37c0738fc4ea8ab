package server

import (
	"log/slog"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/config"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/metrics"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/providers"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/providers/fixture"
)

const defaultRateInterval = 250 * time.Millisecond

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// providerChain is the assembled upstream plus the resources it holds.
type providerChain struct {
	provider providers.GameProvider
	name     string
	closer   providers.Closer
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providerChain {
	base := selectProvider(cfg, f.logger)
	name := normalizeProviderName(cfg.Provider, base)
	if _, local := base.(*fixture.Provider); local {
		return providerChain{provider: f.retrying(cfg, base, name), name: name}
	}

	interval := cfg.NHL.RateInterval
	if interval <= 0 {
		interval = defaultRateInterval
	}
	limited := providers.NewRateLimitedProvider(base, interval, f.logger)
	chain := providerChain{provider: f.retrying(cfg, limited, name), name: name}
	if closer, ok := limited.(providers.Closer); ok {
		chain.closer = closer
	}
	return chain
}

// wrap applies the retry policy to an externally supplied provider.
func (f providerFactory) wrap(cfg config.Config, provider providers.GameProvider) providerChain {
	name := normalizeProviderName(cfg.Provider, provider)
	return providerChain{provider: f.retrying(cfg, provider, name), name: name}
}

func (f providerFactory) retrying(cfg config.Config, provider providers.GameProvider, name string) providers.GameProvider {
	return providers.NewRetryingProvider(provider, f.logger, f.metrics, name, cfg.NHL.MaxAttempts, cfg.NHL.Backoff)
}
