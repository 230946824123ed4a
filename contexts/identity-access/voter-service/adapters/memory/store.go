package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"civica/contexts/identity-access/voter-service/domain/entities"
	domainerrors "civica/contexts/identity-access/voter-service/domain/errors"
)

// Store is the in-memory VoterRepository used by tests and local wiring. It
// mirrors the unique-index behavior of the postgres adapter.
type Store struct {
	mu     sync.RWMutex
	voters map[string]entities.Voter
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{
		voters: make(map[string]entities.Voter),
		now:    func() time.Time { return time.Now().UTC() },
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

func (s *Store) CreateVoter(_ context.Context, voter entities.Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.voters {
		if strings.EqualFold(existing.Email, voter.Email) {
			return domainerrors.ErrDuplicateEmail
		}
		if existing.Phone == voter.Phone {
			return domainerrors.ErrDuplicatePhone
		}
		if existing.NationalID == voter.NationalID {
			return domainerrors.ErrDuplicateNationalID
		}
	}
	s.voters[voter.VoterID] = voter
	return nil
}

func (s *Store) GetVoter(_ context.Context, voterID string) (entities.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voter, ok := s.voters[strings.TrimSpace(voterID)]
	if !ok {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	return voter, nil
}

func (s *Store) GetVoterByEmail(_ context.Context, email string) (entities.Voter, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, voter := range s.voters {
		if strings.EqualFold(voter.Email, strings.TrimSpace(email)) {
			return voter, true, nil
		}
	}
	return entities.Voter{}, false, nil
}

func (s *Store) GetVoterByPhone(_ context.Context, phone string) (entities.Voter, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, voter := range s.voters {
		if voter.Phone == strings.TrimSpace(phone) {
			return voter, true, nil
		}
	}
	return entities.Voter{}, false, nil
}

func (s *Store) UpdateLastLogin(_ context.Context, voterID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	voter, ok := s.voters[strings.TrimSpace(voterID)]
	if !ok {
		return domainerrors.ErrVoterNotFound
	}
	stamp := at.UTC()
	voter.LastLoginAt = &stamp
	voter.UpdatedAt = stamp
	s.voters[voter.VoterID] = voter
	return nil
}

func (s *Store) SetActive(_ context.Context, voterID string, active bool, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	voter, ok := s.voters[strings.TrimSpace(voterID)]
	if !ok {
		return domainerrors.ErrVoterNotFound
	}
	voter.IsActive = active
	voter.UpdatedAt = updatedAt.UTC()
	s.voters[voter.VoterID] = voter
	return nil
}

func (s *Store) DeleteVoter(_ context.Context, voterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	voter, ok := s.voters[strings.TrimSpace(voterID)]
	if !ok {
		return domainerrors.ErrVoterNotFound
	}
	if voter.HasVoted {
		return domainerrors.ErrVoterHasVoted
	}
	delete(s.voters, voter.VoterID)
	return nil
}

func (s *Store) CountVoters(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.voters)), nil
}

// MarkVoted mirrors the ledger-side voter update for module-local tests.
func (s *Store) MarkVoted(voterID string, electionID string, votedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	voter, ok := s.voters[strings.TrimSpace(voterID)]
	if !ok {
		return
	}
	voter.HasVoted = true
	voter.History = append(voter.History, entities.VotingRecord{
		ElectionID: strings.TrimSpace(electionID),
		VotedAt:    votedAt.UTC(),
	})
	s.voters[voter.VoterID] = voter
}
