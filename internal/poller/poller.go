// Package poller regenerates today's schedule pressure report on an interval.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/app/pressure"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/metrics"
)

const defaultInterval = 15 * time.Minute

// Runner produces the report, slides and publish pass for a date.
type Runner interface {
	Today() string
	Run(ctx context.Context, date string) (pressure.RunResult, error)
}

// Poller runs today's pressure pass on an interval.
type Poller struct {
	runner   Runner
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastDate            string
	LastRunID           string
	LastSlides          int
	LastPublished       int
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(runner Runner, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		runner:   runner,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Initial run to warm data on boot.
		p.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.runOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Poller) runOnce(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)
	date := p.runner.Today()
	result, err := p.runner.Run(ctx, date)
	elapsed := p.now().Sub(start)
	if p.metrics != nil {
		p.metrics.RecordPollerCycle(elapsed, err)
	}
	if err != nil {
		logging.Error(p.logger, "poller run failed", err,
			logging.FieldDate, date,
			logging.FieldDurationMS, elapsed.Milliseconds(),
		)
		p.recordFailure(err, start)
		return
	}

	p.recordSuccess(start, result)
	logging.Info(p.logger, "poller refreshed report",
		logging.FieldDate, result.Report.Date,
		logging.FieldRunID, result.Report.RunID,
		logging.FieldCount, len(result.Report.Games),
		"slides", len(result.Slides),
		"published", len(result.URLs),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, result pressure.RunResult) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastDate = result.Report.Date
	p.status.LastRunID = result.Report.RunID
	p.status.LastSlides = len(result.Slides)
	p.status.LastPublished = len(result.URLs)
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
