package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/config"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/providers"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/providers/fixture"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/providers/nhle"
)

const (
	providerNHLE    = "nhle"
	providerFixture = "fixture"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.GameProvider {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case providerFixture:
		return fixture.New()
	case providerNHLE, "nhl", "":
		return newNHLEClient(cfg)
	default:
		logging.Warn(logger, "unknown provider, falling back to nhle", "provider", cfg.Provider)
		return newNHLEClient(cfg)
	}
}

func newNHLEClient(cfg config.Config) *nhle.Client {
	return nhle.NewClient(nhle.Config{
		BaseURL:   cfg.NHL.BaseURL,
		UserAgent: cfg.NHL.UserAgent,
	})
}
