package providers

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	fallbackProviderName = "provider"
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a GameProvider with retry/backoff behavior.
type retryingProvider struct {
	inner        GameProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner GameProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxAttempts int, backoff time.Duration) GameProvider {
	return NewRetryingProviderWithRNG(inner, logger, recorder, providerName, nil, maxAttempts, backoff)
}

// NewRetryingProviderWithRNG is NewRetryingProvider with a caller-supplied jitter source.
func NewRetryingProviderWithRNG(inner GameProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string, rng *rand.Rand, maxAttempts int, backoff time.Duration) GameProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if providerName == "" {
		providerName = fallbackProviderName
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		rng:          rng,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) FetchGames(ctx context.Context, date string) ([]games.Game, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		gs, err := r.inner.FetchGames(ctx, date)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return gs, nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt == r.maxAttempts {
			break
		}

		delay := r.computeDelay(err, attempt)
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch retry",
			logging.FieldDate, date, "attempt", attempt, "max_attempts", r.maxAttempts, "delay_ms", delay.Milliseconds(), "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch failed",
		logging.FieldDate, date, "attempts", r.maxAttempts, "error", lastErr)
	return nil, lastErr
}

// computeDelay honours an upstream Retry-After, otherwise applies jitter to
// the backoff so the wait lands in [base/2, base].
func (r *retryingProvider) computeDelay(err error, attempt int) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	half := base / 2
	r.rngMu.Lock()
	jitter := time.Duration(r.rng.Int63n(int64(half) + 1))
	r.rngMu.Unlock()
	return half + jitter
}
