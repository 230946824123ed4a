package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"civica/contexts/voting-core/vote-ledger/domain/entities"
	domainerrors "civica/contexts/voting-core/vote-ledger/domain/errors"
	"civica/contexts/voting-core/vote-ledger/ports"
)

// Store is the in-memory VoteRepository, ProjectionReader, and
// OutboxRepository used by tests and local wiring. It mirrors the unique
// indexes of the postgres adapter: one vote per (voter, election) and
// unique verification codes.
type Store struct {
	mu         sync.RWMutex
	votes      map[string]entities.Vote
	byIdentity map[string]string
	byCode     map[string]string
	outboxRows []ports.OutboxMessage
	elections  map[string]ports.ElectionProjection
	candidates map[string]ports.CandidateProjection
	voters     map[string]ports.VoterProjection
	now        func() time.Time
}

func NewStore() *Store {
	return &Store{
		votes:      make(map[string]entities.Vote),
		byIdentity: make(map[string]string),
		byCode:     make(map[string]string),
		elections:  make(map[string]ports.ElectionProjection),
		candidates: make(map[string]ports.CandidateProjection),
		voters:     make(map[string]ports.VoterProjection),
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

func identityKey(voterID string, electionID string) string {
	return voterID + "|" + electionID
}

func (s *Store) CastVote(_ context.Context, vote entities.Vote, event ports.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := identityKey(vote.VoterID, vote.ElectionID)
	if _, exists := s.byIdentity[key]; exists {
		return domainerrors.ErrAlreadyVoted
	}
	if _, exists := s.byCode[vote.VerificationCode]; exists {
		return domainerrors.ErrCodeCollision
	}
	s.votes[vote.VoteID] = cloneVote(vote)
	s.byIdentity[key] = vote.VoteID
	s.byCode[vote.VerificationCode] = vote.VoteID
	s.outboxRows = append(s.outboxRows, event)
	return nil
}

func (s *Store) HasVoted(_ context.Context, voterID string, electionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.byIdentity[identityKey(strings.TrimSpace(voterID), strings.TrimSpace(electionID))]
	return exists, nil
}

func (s *Store) GetVote(_ context.Context, voteID string) (entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vote, ok := s.votes[strings.TrimSpace(voteID)]
	if !ok {
		return entities.Vote{}, domainerrors.ErrVoteNotFound
	}
	return cloneVote(vote), nil
}

func (s *Store) GetVoteByCode(_ context.Context, verificationCode string) (entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voteID, ok := s.byCode[strings.TrimSpace(verificationCode)]
	if !ok {
		return entities.Vote{}, domainerrors.ErrVoteNotFound
	}
	return cloneVote(s.votes[voteID]), nil
}

func (s *Store) ListVotes(_ context.Context, filter ports.ListFilter) ([]entities.Vote, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.Vote, 0, len(s.votes))
	for _, vote := range s.votes {
		if filter.ElectionID != "" && vote.ElectionID != filter.ElectionID {
			continue
		}
		if filter.CandidateID != "" && vote.CandidateID != filter.CandidateID {
			continue
		}
		if filter.VoterID != "" && vote.VoterID != filter.VoterID {
			continue
		}
		if filter.Status != "" && vote.Status != filter.Status {
			continue
		}
		matched = append(matched, cloneVote(vote))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CastAt.After(matched[j].CastAt)
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if filter.Limit <= 0 {
		return matched, total, nil
	}
	if start >= len(matched) {
		return []entities.Vote{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *Store) ListVoterVotes(_ context.Context, voterID string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var votes []entities.Vote
	for _, vote := range s.votes {
		if vote.VoterID == voterID {
			votes = append(votes, cloneVote(vote))
		}
	}
	sort.Slice(votes, func(i, j int) bool {
		return votes[i].CastAt.Before(votes[j].CastAt)
	})
	return votes, nil
}

func (s *Store) SaveVoteStatus(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.votes[vote.VoteID]; !ok {
		return domainerrors.ErrVoteNotFound
	}
	s.votes[vote.VoteID] = cloneVote(vote)
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var pending []ports.OutboxMessage
	for _, row := range s.outboxRows {
		if row.Status != "pending" {
			continue
		}
		pending = append(pending, row)
		if limit > 0 && len(pending) >= limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	return s.setOutboxStatus(outboxID, "published")
}

func (s *Store) MarkOutboxFailed(_ context.Context, outboxID string, _ time.Time) error {
	return s.setOutboxStatus(outboxID, "failed")
}

func (s *Store) setOutboxStatus(outboxID string, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.outboxRows {
		if s.outboxRows[i].ID == outboxID {
			s.outboxRows[i].Status = status
			return nil
		}
	}
	return domainerrors.ErrVoteNotFound
}

func (s *Store) GetElectionProjection(_ context.Context, electionID string) (ports.ElectionProjection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projection, ok := s.elections[strings.TrimSpace(electionID)]
	return projection, ok, nil
}

func (s *Store) GetCandidateProjection(_ context.Context, candidateID string) (ports.CandidateProjection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projection, ok := s.candidates[strings.TrimSpace(candidateID)]
	return projection, ok, nil
}

func (s *Store) GetVoterProjection(_ context.Context, voterID string) (ports.VoterProjection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projection, ok := s.voters[strings.TrimSpace(voterID)]
	return projection, ok, nil
}

func (s *Store) SeedElection(projection ports.ElectionProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[projection.ElectionID] = projection
}

func (s *Store) SeedCandidate(projection ports.CandidateProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[projection.CandidateID] = projection
}

func (s *Store) SeedVoter(projection ports.VoterProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[projection.VoterID] = projection
}

func cloneVote(vote entities.Vote) entities.Vote {
	clone := vote
	clone.AuditLog = append([]entities.AuditEntry(nil), vote.AuditLog...)
	return clone
}
