package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"civica/contexts/election-operations/candidate-service/domain/entities"
	domainerrors "civica/contexts/election-operations/candidate-service/domain/errors"
	"civica/contexts/election-operations/candidate-service/ports"
)

// Store is the in-memory CandidateRepository and ElectionReader used by
// tests and local wiring.
type Store struct {
	mu         sync.RWMutex
	candidates map[string]entities.Candidate
	schedules  map[string]ports.ElectionSchedule
	now        func() time.Time
}

func NewStore() *Store {
	return &Store{
		candidates: make(map[string]entities.Candidate),
		schedules:  make(map[string]ports.ElectionSchedule),
		now:        func() time.Time { return time.Now().UTC() },
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

func (s *Store) CreateCandidate(_ context.Context, candidate entities.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[candidate.CandidateID] = candidate
	return nil
}

func (s *Store) GetCandidate(_ context.Context, candidateID string) (entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidate, ok := s.candidates[strings.TrimSpace(candidateID)]
	if !ok {
		return entities.Candidate{}, domainerrors.ErrCandidateNotFound
	}
	return candidate, nil
}

func (s *Store) ListCandidates(_ context.Context, filter ports.ListFilter) ([]entities.Candidate, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.Candidate, 0, len(s.candidates))
	for _, candidate := range s.candidates {
		if filter.ElectionID != "" && candidate.ElectionID != filter.ElectionID {
			continue
		}
		if filter.Status != "" && candidate.Status != filter.Status {
			continue
		}
		if filter.Party != "" && !strings.EqualFold(candidate.Party, filter.Party) {
			continue
		}
		if filter.VotableOnly && !candidate.Votable() {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(candidate.FullName), needle) &&
				!strings.Contains(strings.ToLower(candidate.Party), needle) {
				continue
			}
		}
		matched = append(matched, candidate)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].NominatedAt.Before(matched[j].NominatedAt)
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if filter.Limit <= 0 || start >= len(matched) {
		if filter.Limit <= 0 {
			return matched, total, nil
		}
		return []entities.Candidate{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *Store) SaveCandidate(_ context.Context, candidate entities.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.candidates[candidate.CandidateID]; !ok {
		return domainerrors.ErrCandidateNotFound
	}
	s.candidates[candidate.CandidateID] = candidate
	return nil
}

func (s *Store) DeleteCandidate(_ context.Context, candidateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.candidates[candidateID]; !ok {
		return domainerrors.ErrCandidateNotFound
	}
	delete(s.candidates, candidateID)
	return nil
}

func (s *Store) GetElectionSchedule(_ context.Context, electionID string) (ports.ElectionSchedule, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schedule, ok := s.schedules[strings.TrimSpace(electionID)]
	return schedule, ok, nil
}

// SeedElection installs the owning-election projection used by gating.
func (s *Store) SeedElection(schedule ports.ElectionSchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules[schedule.ElectionID] = schedule
}

// BumpVoteCount mirrors what the vote ledger does to the candidate counter.
func (s *Store) BumpVoteCount(candidateID string, delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	candidate, ok := s.candidates[candidateID]
	if !ok {
		return
	}
	candidate.VoteCount += delta
	s.candidates[candidateID] = candidate
}
