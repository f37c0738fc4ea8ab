// Command pressure renders one day's schedule pressure carousel and exits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	_ "time/tzdata"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/config"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/server"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/timeutil"
)

const (
	appVersion  = "dev"
	serviceName = "nhl-schedule-pressure"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := config.Load()

	fs := flag.NewFlagSet("pressure", flag.ContinueOnError)
	fs.SetOutput(stderr)
	date := fs.String("date", "", "YYYY-MM-DD (default: today in "+cfg.Timezone+")")
	outDir := fs.String("outdir", cfg.Render.OutDir, "output directory for slides")
	per := fs.Int("per", cfg.Render.PerSlide, "max games per slide")
	arenas := fs.String("arenas", cfg.Venues.CSVPath, "arenas CSV path (team_abbr, lat, lon)")
	historyDays := fs.Int("history-days", cfg.HistoryDays, "how many days back to search schedules")
	publishSlides := fs.Bool("publish", cfg.Publish.Enabled, "publish slides to GitHub Pages")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Render.OutDir = *outDir
	cfg.Render.PerSlide = *per
	cfg.Venues.CSVPath = *arenas
	cfg.HistoryDays = *historyDays
	cfg.Publish.Enabled = *publishSlides

	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: serviceName,
		Version: appVersion,
		Output:  stderr,
	})

	pipeline := server.NewPipeline(ctx, cfg, logger)
	defer pipeline.Close()

	target := strings.TrimSpace(*date)
	if target == "" {
		target = pipeline.Today()
	}
	if _, err := timeutil.ParseDate(target); err != nil {
		return fmt.Errorf("invalid -date %q: %w", target, err)
	}

	result, err := pipeline.Run(ctx, target)
	if err != nil {
		return err
	}

	if len(result.URLs) > 0 {
		fmt.Fprintln(stdout, "Published to GitHub:")
		for _, u := range result.URLs {
			fmt.Fprintln(stdout, " -", u)
		}
	}
	fmt.Fprintln(stdout, "Slides:")
	for _, p := range result.Slides {
		fmt.Fprintln(stdout, " -", p)
	}
	return nil
}
