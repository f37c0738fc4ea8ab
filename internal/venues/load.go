package venues

import (
	"context"
	"log/slog"
	"os"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/platform/db"
)

// Config selects where arena locations come from.
type Config struct {
	CSVPath     string
	DatabaseURL string
}

var openDB = db.Open

// Load resolves arenas from the database when configured, otherwise from the CSV file.
// Every failure degrades to a nil Lookup so travel distances become unknown rather than
// aborting the run.
func Load(ctx context.Context, cfg Config, logger *slog.Logger) Lookup {
	if cfg.DatabaseURL != "" {
		lookup, err := loadFromDB(ctx, cfg.DatabaseURL)
		if err == nil {
			logging.Info(logger, "venues loaded", "source", "postgres", logging.FieldCount, len(lookup))
			return lookup
		}
		logging.Warn(logger, "venues database load failed", "error", err)
	}

	if cfg.CSVPath == "" {
		logging.Warn(logger, "no venue source configured, travel distances unknown")
		return nil
	}
	if _, err := os.Stat(cfg.CSVPath); err != nil {
		logging.Warn(logger, "arenas csv not found, travel distances unknown", "path", cfg.CSVPath)
		return nil
	}
	lookup, err := LoadCSVFile(cfg.CSVPath)
	if err != nil {
		logging.Warn(logger, "arenas csv load failed, travel distances unknown", "path", cfg.CSVPath, "error", err)
		return nil
	}
	logging.Info(logger, "venues loaded", "source", "csv", "path", cfg.CSVPath, logging.FieldCount, len(lookup))
	return lookup
}

func loadFromDB(ctx context.Context, url string) (Lookup, error) {
	conn, err := openDB(url)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	return NewSQLSource(conn).Load(ctx)
}
