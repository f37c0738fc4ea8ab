package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/fatigue"
)

func TestMemoryStoreSetAndGet(t *testing.T) {
	s := NewMemoryStore(0)
	if _, ok := s.Report("2026-01-20"); ok {
		t.Fatalf("expected empty store")
	}

	s.SetReport(fatigue.Report{Date: "2026-01-20", RunID: "a"})
	s.SetReport(fatigue.Report{Date: "2026-01-20", RunID: "b"})
	got, ok := s.Report("2026-01-20")
	if !ok || got.RunID != "b" {
		t.Fatalf("expected replaced report, got %+v", got)
	}
}

func TestMemoryStoreEvictsOldestDates(t *testing.T) {
	s := NewMemoryStore(2)
	s.SetReport(fatigue.Report{Date: "2026-01-19"})
	s.SetReport(fatigue.Report{Date: "2026-01-21"})
	s.SetReport(fatigue.Report{Date: "2026-01-20"})

	if _, ok := s.Report("2026-01-19"); ok {
		t.Fatalf("expected oldest date evicted")
	}
	for _, d := range []string{"2026-01-20", "2026-01-21"} {
		if _, ok := s.Report(d); !ok {
			t.Fatalf("expected %s retained", d)
		}
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore(10)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			date := fmt.Sprintf("2026-01-%02d", i+1)
			s.SetReport(fatigue.Report{Date: date})
			_, _ = s.Report(date)
		}(i)
	}
	wg.Wait()
	s.mu.RLock()
	n := len(s.reports)
	s.mu.RUnlock()
	if n != 10 {
		t.Fatalf("expected capacity to hold, got %d", n)
	}
}
