package memory

import (
	"context"
	"sync"
	"time"

	"civica/contexts/internal-ops/dashboard-service/ports"
)

// Store is the in-memory StatsRepository used by tests.
type Store struct {
	mu        sync.RWMutex
	stats     ports.DashboardStats
	summaries []ports.ElectionSummary
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now()
}

func (s *Store) CollectStats(_ context.Context) (ports.DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats, nil
}

func (s *Store) ListElectionSummaries(_ context.Context, limit int) ([]ports.ElectionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit > 0 && limit < len(s.summaries) {
		return append([]ports.ElectionSummary(nil), s.summaries[:limit]...), nil
	}
	return append([]ports.ElectionSummary(nil), s.summaries...), nil
}

func (s *Store) SeedStats(stats ports.DashboardStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
}

func (s *Store) SeedSummaries(summaries []ports.ElectionSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries = append([]ports.ElectionSummary(nil), summaries...)
}
