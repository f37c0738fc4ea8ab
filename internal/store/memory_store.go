package store

import (
	"sort"
	"sync"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/fatigue"
)

const defaultMaxReports = 60

// MemoryStore keeps the latest report per date in memory, evicting the oldest
// dates beyond its capacity.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]fatigue.Report
	max     int
}

// NewMemoryStore constructs an empty MemoryStore holding up to capacity dates.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = defaultMaxReports
	}
	return &MemoryStore{
		reports: make(map[string]fatigue.Report),
		max:     capacity,
	}
}

// Report returns the stored report for date.
func (s *MemoryStore) Report(date string) (fatigue.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[date]
	return r, ok
}

// SetReport replaces the report for its date.
func (s *MemoryStore) SetReport(r fatigue.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports[r.Date] = r
	if len(s.reports) <= s.max {
		return
	}
	dates := s.datesLocked()
	for _, d := range dates[:len(dates)-s.max] {
		delete(s.reports, d)
	}
}

func (s *MemoryStore) datesLocked() []string {
	out := make([]string, 0, len(s.reports))
	for d := range s.reports {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
