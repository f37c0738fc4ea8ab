// Package pressure assembles fatigue reports for a date and turns them into
// published slides.
package pressure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/fatigue"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/metrics"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/schedule"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/timeutil"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/venues"
)

const (
	DefaultHistoryDays = 14
	defaultTimezone    = "America/Toronto"
)

// ErrInvalidDate is returned for dates that are not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date")

// Store keeps the latest report per date.
type Store interface {
	Report(date string) (fatigue.Report, bool)
	SetReport(r fatigue.Report)
}

// Renderer writes slides for a day's games.
type Renderer interface {
	RenderCarousel(date string, gs []games.Game, loads fatigue.Loads) ([]string, error)
}

// Publisher uploads rendered slides and returns their public URLs.
type Publisher interface {
	PublishImages(ctx context.Context, date string, files []string) ([]string, error)
}

// Config tunes the report window and the calendar used for "today".
type Config struct {
	HistoryDays int
	Location    *time.Location
}

// Service computes reports from a schedule source.
type Service struct {
	source    schedule.Fetcher
	venues    venues.Lookup
	store     Store
	renderer  Renderer
	publisher Publisher
	recorder  *metrics.Recorder
	logger    *slog.Logger
	cfg       Config

	now      func() time.Time
	newRunID func() string
}

// Option customises a Service.
type Option func(*Service)

// WithStore caches computed reports.
func WithStore(s Store) Option { return func(svc *Service) { svc.store = s } }

// WithRenderer enables slide rendering in Run.
func WithRenderer(r Renderer) Option { return func(svc *Service) { svc.renderer = r } }

// WithPublisher enables publishing in Run.
func WithPublisher(p Publisher) Option { return func(svc *Service) { svc.publisher = p } }

// WithRecorder records publish outcomes.
func WithRecorder(r *metrics.Recorder) Option { return func(svc *Service) { svc.recorder = r } }

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option { return func(svc *Service) { svc.logger = l } }

// NewService builds a service over source. A nil lookup leaves travel unknown.
func NewService(source schedule.Fetcher, lookup venues.Lookup, cfg Config, opts ...Option) *Service {
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = DefaultHistoryDays
	}
	if cfg.Location == nil {
		cfg.Location = defaultLocation()
	}
	svc := &Service{
		source:   source,
		venues:   lookup,
		cfg:      cfg,
		now:      time.Now,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func defaultLocation() *time.Location {
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Today is the current date in the service calendar.
func (s *Service) Today() string {
	return timeutil.FormatDate(timeutil.Today(s.now(), s.cfg.Location))
}

// HistoryDays is the number of days looked back from the target date.
func (s *Service) HistoryDays() int { return s.cfg.HistoryDays }

// Report fetches the target date's games, builds the trailing schedule window
// and computes every playing team's load. Failing to fetch the target date's
// games aborts; failures on earlier dates only leave gaps.
func (s *Service) Report(ctx context.Context, date string) (fatigue.Report, error) {
	target, err := timeutil.ParseDate(date)
	if err != nil {
		return fatigue.Report{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, date, err)
	}
	date = timeutil.FormatDate(target)

	runID := s.newRunID()
	logger := s.logger
	if logger != nil {
		logger = logger.With(logging.FieldRunID, runID, logging.FieldDate, date)
	}
	ctx = logging.WithLogger(ctx, logger)
	started := s.now()

	today, err := s.source.FetchGames(ctx, date)
	if err != nil {
		logging.Error(logger, "fetch target date failed", err)
		return fatigue.Report{}, fmt.Errorf("fetch games for %s: %w", date, err)
	}
	today = games.NewDaySchedule(date, today).Games

	history := schedule.FetcherFunc(func(ctx context.Context, d string) ([]games.Game, error) {
		if d == date {
			return today, nil
		}
		return s.source.FetchGames(ctx, d)
	})
	idx := schedule.Build(ctx, history, timeutil.AddDays(target, -s.cfg.HistoryDays), target, logger)
	loads := fatigue.ComputeLoads(today, idx, target, s.venues)

	report := fatigue.Report{
		RunID:       runID,
		Date:        date,
		GeneratedAt: s.now().UTC(),
		Games:       today,
		Loads:       loads,
	}
	if s.store != nil {
		s.store.SetReport(report)
	}
	logging.Info(logger, "report computed",
		logging.FieldCount, len(today),
		"teams", len(loads),
		logging.FieldDurationMS, s.now().Sub(started).Milliseconds(),
	)
	return report, nil
}

// Cached returns the stored report for date, computing it on a miss.
func (s *Service) Cached(ctx context.Context, date string) (fatigue.Report, error) {
	if s.store != nil {
		if r, ok := s.store.Report(date); ok {
			return r, nil
		}
	}
	return s.Report(ctx, date)
}

// RunResult describes one full report, render and publish pass.
type RunResult struct {
	Report fatigue.Report
	Slides []string
	URLs   []string
}

// Run computes the report for date, renders its slides and publishes them
// when a publisher is configured. A publish failure is logged and leaves
// URLs empty; it does not fail the run.
func (s *Service) Run(ctx context.Context, date string) (RunResult, error) {
	report, err := s.Report(ctx, date)
	if err != nil {
		return RunResult{}, err
	}
	result := RunResult{Report: report}
	if s.renderer == nil {
		return result, nil
	}

	logger := s.logger
	if logger != nil {
		logger = logger.With(logging.FieldRunID, report.RunID, logging.FieldDate, report.Date)
	}
	slides, err := s.renderer.RenderCarousel(report.Date, report.Games, report.Loads)
	if err != nil {
		return result, fmt.Errorf("render %s: %w", report.Date, err)
	}
	result.Slides = slides

	if s.publisher == nil {
		return result, nil
	}
	urls, err := s.publisher.PublishImages(ctx, report.Date, slides)
	if s.recorder != nil {
		s.recorder.RecordPublish(len(urls), err)
	}
	if err != nil {
		logging.Warn(logger, "publish failed", "error", err, logging.FieldCount, len(urls))
		return result, nil
	}
	result.URLs = urls
	return result, nil
}
