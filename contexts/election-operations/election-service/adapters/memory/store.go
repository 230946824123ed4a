package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"civica/contexts/election-operations/election-service/domain/entities"
	domainerrors "civica/contexts/election-operations/election-service/domain/errors"
	"civica/contexts/election-operations/election-service/ports"
)

// Store is the in-memory ElectionRepository and TallyReader used by tests
// and local wiring.
type Store struct {
	mu        sync.RWMutex
	elections map[string]entities.Election
	tallies   map[string][]ports.CandidateTally
	eligible  map[string]int64
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		elections: make(map[string]entities.Election),
		tallies:   make(map[string][]ports.CandidateTally),
		eligible:  make(map[string]int64),
		now:       func() time.Time { return time.Now().UTC() },
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

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) CreateElection(_ context.Context, election entities.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[election.ElectionID] = election
	return nil
}

func (s *Store) GetElection(_ context.Context, electionID string) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	election, ok := s.elections[strings.TrimSpace(electionID)]
	if !ok {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	return election, nil
}

func (s *Store) ListElections(_ context.Context, filter ports.ListFilter) ([]entities.Election, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.Election, 0, len(s.elections))
	for _, election := range s.elections {
		if filter.Status != "" && election.Status != filter.Status {
			continue
		}
		if filter.Type != "" && election.Type != filter.Type {
			continue
		}
		if filter.Constituency != "" && !strings.EqualFold(election.Constituency, filter.Constituency) {
			continue
		}
		if filter.State != "" && !strings.EqualFold(election.State, filter.State) {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(election.Title), needle) &&
				!strings.Contains(strings.ToLower(election.Description), needle) {
				continue
			}
		}
		matched = append(matched, election)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return []entities.Election{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *Store) SaveElection(_ context.Context, election entities.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elections[election.ElectionID]; !ok {
		return domainerrors.ErrElectionNotFound
	}
	s.elections[election.ElectionID] = election
	return nil
}

func (s *Store) CountValidVotesByCandidate(_ context.Context, electionID string) ([]ports.CandidateTally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tallies := make([]ports.CandidateTally, len(s.tallies[electionID]))
	copy(tallies, s.tallies[electionID])
	return tallies, nil
}

func (s *Store) CountEligibleVoters(_ context.Context, constituency string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eligible[strings.ToLower(constituency)], nil
}

// SeedTally installs aggregation rows for an election, replacing any
// previous seed.
func (s *Store) SeedTally(electionID string, tallies []ports.CandidateTally) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tallies[electionID] = append([]ports.CandidateTally(nil), tallies...)
}

// SeedEligibleVoters sets the registered-voter count for a constituency.
func (s *Store) SeedEligibleVoters(constituency string, count int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eligible[strings.ToLower(constituency)] = count
}
