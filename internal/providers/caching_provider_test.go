package providers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/metrics"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/teststubs"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/testutil"
)

func newCaching(t *testing.T, inner GameProvider, c *teststubs.StubScheduleCache, rec *metrics.Recorder) *cachingProvider {
	t.Helper()
	p := NewCachingProvider(inner, c, time.UTC, rec, nil).(*cachingProvider)
	p.now = testutil.NowAt(time.Date(2026, 1, 20, 15, 0, 0, 0, time.UTC))
	return p
}

func TestCachingProviderFillsAndServesPastDates(t *testing.T) {
	inner := &teststubs.StubProvider{Games: []games.Game{{ID: "g1"}}}
	c := &teststubs.StubScheduleCache{}
	rec := metrics.NewRecorder()
	p := newCaching(t, inner, c, rec)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		gs, err := p.FetchGames(ctx, "2026-01-18")
		if err != nil || len(gs) != 1 {
			t.Fatalf("expected cached games, got %v err %v", gs, err)
		}
	}
	if inner.Calls.Load() != 1 {
		t.Fatalf("expected one upstream call, got %d", inner.Calls.Load())
	}
	if rec.CacheMisses("stub") != 1 || rec.CacheHits("stub") != 1 {
		t.Fatalf("expected 1 miss then 1 hit, got hits=%d misses=%d", rec.CacheHits("stub"), rec.CacheMisses("stub"))
	}
}

func TestCachingProviderBypassesTodayAndFuture(t *testing.T) {
	inner := &teststubs.StubProvider{Games: []games.Game{{ID: "g1"}}}
	c := &teststubs.StubScheduleCache{}
	p := newCaching(t, inner, c, nil)

	for _, date := range []string{"2026-01-20", "2026-01-21", "not-a-date"} {
		if _, err := p.FetchGames(context.Background(), date); err != nil {
			t.Fatalf("unexpected error for %s: %v", date, err)
		}
	}
	if c.Stores != 0 {
		t.Fatalf("expected no cache writes for unsettled dates, got %d", c.Stores)
	}
	if inner.Calls.Load() != 3 {
		t.Fatalf("expected every unsettled date to go upstream, got %d", inner.Calls.Load())
	}
}

func TestCachingProviderDoesNotCacheFailures(t *testing.T) {
	inner := &teststubs.StubProvider{Err: errors.New("upstream down")}
	c := &teststubs.StubScheduleCache{}
	p := newCaching(t, inner, c, nil)

	if _, err := p.FetchGames(context.Background(), "2026-01-10"); err == nil {
		t.Fatalf("expected upstream error")
	}
	if c.Stores != 0 {
		t.Fatalf("expected failed fetch not to be cached")
	}
}

func TestCachingProviderToleratesCacheErrors(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	inner := &teststubs.StubProvider{Games: []games.Game{{ID: "g1"}}}
	c := &teststubs.StubScheduleCache{LoadErr: errors.New("disk gone"), StoreErr: errors.New("disk full")}
	p := NewCachingProvider(inner, c, nil, nil, logger).(*cachingProvider)
	p.now = testutil.NowAt(time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC))

	gs, err := p.FetchGames(context.Background(), "2026-01-01")
	if err != nil || len(gs) != 1 {
		t.Fatalf("expected upstream games despite cache errors, got %v err %v", gs, err)
	}
	out := buf.String()
	if !strings.Contains(out, "schedule cache read failed") || !strings.Contains(out, "schedule cache write failed") {
		t.Fatalf("expected cache errors to be logged, got %q", out)
	}
}

func TestCachingProviderNilCacheReturnsInner(t *testing.T) {
	inner := &teststubs.StubProvider{}
	if got := NewCachingProvider(inner, nil, nil, nil, nil); got != GameProvider(inner) {
		t.Fatalf("expected inner provider when cache is nil")
	}
	p := NewCachingProvider(nil, &teststubs.StubScheduleCache{}, nil, nil, nil)
	if _, err := p.FetchGames(context.Background(), "2026-01-01"); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestCachingProviderCloseForwards(t *testing.T) {
	limited := NewRateLimitedProvider(&teststubs.StubProvider{}, time.Millisecond, nil)
	p := NewCachingProvider(limited, &teststubs.StubScheduleCache{}, nil, nil, nil)
	p.(Closer).Close()
}
