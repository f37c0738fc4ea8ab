package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/config"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/server"
)

const (
	appVersion  = "dev"
	serviceName = "nhl-schedule-pressure"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: serviceName,
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger, appVersion)
	srv.Run(ctx, stop)
}
