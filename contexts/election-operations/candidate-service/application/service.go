package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"civica/contexts/election-operations/candidate-service/domain/entities"
	domainerrors "civica/contexts/election-operations/candidate-service/domain/errors"
	"civica/contexts/election-operations/candidate-service/ports"
)

// Roles whose nominations are approved at creation time. The strings match
// the admin module's role set; only the names cross the module boundary.
const (
	RoleSuperAdmin           = "super_admin"
	RoleElectionCommissioner = "election_commissioner"
)

type NominateCandidateCommand struct {
	ElectionID   string
	FullName     string
	Party        string
	PartySymbol  string
	Constituency string
	Manifesto    string
	PhotoURL     string

	NominatedBy   string
	NominatorRole string
}

// UpdateCandidateCommand carries optional mutations; nil fields are left
// untouched.
type UpdateCandidateCommand struct {
	FullName     *string
	Party        *string
	PartySymbol  *string
	Constituency *string
	Manifesto    *string
	PhotoURL     *string
}

type Service struct {
	Candidates ports.CandidateRepository
	Elections  ports.ElectionReader
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// Nominate registers a candidate for an election. Nominations made by a
// commissioner or super admin are approved immediately; anyone else's stay
// pending until an explicit decision.
func (s Service) Nominate(ctx context.Context, cmd NominateCandidateCommand) (entities.Candidate, error) {
	logger := ResolveLogger(s.Logger)
	if strings.TrimSpace(cmd.FullName) == "" || strings.TrimSpace(cmd.ElectionID) == "" {
		return entities.Candidate{}, domainerrors.ErrInvalidCandidateInput
	}

	schedule, err := s.schedule(ctx, cmd.ElectionID)
	if err != nil {
		return entities.Candidate{}, err
	}
	now := s.now()
	if schedule.VotingOpen(now) {
		return entities.Candidate{}, domainerrors.ErrElectionClosed
	}

	candidateID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Candidate{}, err
	}
	candidate := entities.Candidate{
		CandidateID:  candidateID,
		ElectionID:   schedule.ElectionID,
		FullName:     strings.TrimSpace(cmd.FullName),
		Party:        strings.TrimSpace(cmd.Party),
		PartySymbol:  strings.TrimSpace(cmd.PartySymbol),
		Constituency: strings.TrimSpace(cmd.Constituency),
		Manifesto:    strings.TrimSpace(cmd.Manifesto),
		PhotoURL:     strings.TrimSpace(cmd.PhotoURL),
		Status:       entities.StatusPending,
		IsActive:     true,
		NominatedBy:  strings.TrimSpace(cmd.NominatedBy),
		NominatedAt:  now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if cmd.NominatorRole == RoleSuperAdmin || cmd.NominatorRole == RoleElectionCommissioner {
		candidate.Status = entities.StatusApproved
		candidate.ApprovedBy = candidate.NominatedBy
		candidate.ApprovedAt = &now
	}

	if err := s.Candidates.CreateCandidate(ctx, candidate); err != nil {
		return entities.Candidate{}, err
	}

	logger.Info("candidate nominated",
		"event", "candidate_nominated",
		"module", "election-operations/candidate-service",
		"layer", "application",
		"candidate_id", candidate.CandidateID,
		"election_id", candidate.ElectionID,
		"status", string(candidate.Status),
	)
	return candidate, nil
}

// Approve marks a pending or rejected candidate approved.
func (s Service) Approve(ctx context.Context, candidateID string, approvedBy string) (entities.Candidate, error) {
	candidate, err := s.Candidates.GetCandidate(ctx, strings.TrimSpace(candidateID))
	if err != nil {
		return entities.Candidate{}, err
	}
	if candidate.Status == entities.StatusApproved {
		return entities.Candidate{}, domainerrors.ErrAlreadyDecided
	}
	if err := s.requireVotingClosed(ctx, candidate.ElectionID); err != nil {
		return entities.Candidate{}, err
	}

	now := s.now()
	candidate.Status = entities.StatusApproved
	candidate.RejectionReason = ""
	candidate.ApprovedBy = strings.TrimSpace(approvedBy)
	candidate.ApprovedAt = &now
	candidate.UpdatedAt = now
	if err := s.Candidates.SaveCandidate(ctx, candidate); err != nil {
		return entities.Candidate{}, err
	}
	s.logDecision("candidate_approved", candidate)
	return candidate, nil
}

// Reject marks a candidate rejected with a reason.
func (s Service) Reject(ctx context.Context, candidateID string, reason string, rejectedBy string) (entities.Candidate, error) {
	candidate, err := s.Candidates.GetCandidate(ctx, strings.TrimSpace(candidateID))
	if err != nil {
		return entities.Candidate{}, err
	}
	if candidate.Status == entities.StatusRejected {
		return entities.Candidate{}, domainerrors.ErrAlreadyDecided
	}
	if err := s.requireVotingClosed(ctx, candidate.ElectionID); err != nil {
		return entities.Candidate{}, err
	}

	now := s.now()
	candidate.Status = entities.StatusRejected
	candidate.RejectionReason = strings.TrimSpace(reason)
	candidate.ApprovedBy = strings.TrimSpace(rejectedBy)
	candidate.ApprovedAt = &now
	candidate.UpdatedAt = now
	if err := s.Candidates.SaveCandidate(ctx, candidate); err != nil {
		return entities.Candidate{}, err
	}
	s.logDecision("candidate_rejected", candidate)
	return candidate, nil
}

// Update applies profile mutations. Rejected once the owning election's
// voting window has opened.
func (s Service) Update(ctx context.Context, candidateID string, cmd UpdateCandidateCommand) (entities.Candidate, error) {
	candidate, err := s.Candidates.GetCandidate(ctx, strings.TrimSpace(candidateID))
	if err != nil {
		return entities.Candidate{}, err
	}
	if err := s.requireVotingClosed(ctx, candidate.ElectionID); err != nil {
		return entities.Candidate{}, err
	}

	if cmd.FullName != nil {
		if strings.TrimSpace(*cmd.FullName) == "" {
			return entities.Candidate{}, domainerrors.ErrInvalidCandidateInput
		}
		candidate.FullName = strings.TrimSpace(*cmd.FullName)
	}
	if cmd.Party != nil {
		candidate.Party = strings.TrimSpace(*cmd.Party)
	}
	if cmd.PartySymbol != nil {
		candidate.PartySymbol = strings.TrimSpace(*cmd.PartySymbol)
	}
	if cmd.Constituency != nil {
		candidate.Constituency = strings.TrimSpace(*cmd.Constituency)
	}
	if cmd.Manifesto != nil {
		candidate.Manifesto = strings.TrimSpace(*cmd.Manifesto)
	}
	if cmd.PhotoURL != nil {
		candidate.PhotoURL = strings.TrimSpace(*cmd.PhotoURL)
	}
	candidate.UpdatedAt = s.now()
	if err := s.Candidates.SaveCandidate(ctx, candidate); err != nil {
		return entities.Candidate{}, err
	}
	return candidate, nil
}

// Delete removes a candidate, or deactivates it instead when the ledger
// already holds votes for it. Either way the operation is rejected once
// voting has opened.
func (s Service) Delete(ctx context.Context, candidateID string) (deactivated bool, err error) {
	candidate, err := s.Candidates.GetCandidate(ctx, strings.TrimSpace(candidateID))
	if err != nil {
		return false, err
	}
	if err := s.requireVotingClosed(ctx, candidate.ElectionID); err != nil {
		return false, err
	}

	if candidate.VoteCount > 0 {
		candidate.IsActive = false
		candidate.UpdatedAt = s.now()
		if err := s.Candidates.SaveCandidate(ctx, candidate); err != nil {
			return false, err
		}
		s.logDecision("candidate_deactivated", candidate)
		return true, nil
	}
	if err := s.Candidates.DeleteCandidate(ctx, candidate.CandidateID); err != nil {
		return false, err
	}
	s.logDecision("candidate_deleted", candidate)
	return false, nil
}

func (s Service) Get(ctx context.Context, candidateID string, publicView bool) (entities.Candidate, error) {
	candidate, err := s.Candidates.GetCandidate(ctx, strings.TrimSpace(candidateID))
	if err != nil {
		return entities.Candidate{}, err
	}
	if publicView && !candidate.Votable() {
		return entities.Candidate{}, domainerrors.ErrCandidateNotFound
	}
	return candidate, nil
}

func (s Service) List(ctx context.Context, filter ports.ListFilter) ([]entities.Candidate, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	return s.Candidates.ListCandidates(ctx, filter)
}

func (s Service) schedule(ctx context.Context, electionID string) (ports.ElectionSchedule, error) {
	schedule, found, err := s.Elections.GetElectionSchedule(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return ports.ElectionSchedule{}, err
	}
	if !found {
		return ports.ElectionSchedule{}, domainerrors.ErrElectionNotFound
	}
	return schedule, nil
}

func (s Service) requireVotingClosed(ctx context.Context, electionID string) error {
	schedule, err := s.schedule(ctx, electionID)
	if err != nil {
		return err
	}
	if schedule.VotingOpen(s.now()) {
		return domainerrors.ErrVotingWindowOpen
	}
	return nil
}

func (s Service) logDecision(event string, candidate entities.Candidate) {
	ResolveLogger(s.Logger).Info("candidate state changed",
		"event", event,
		"module", "election-operations/candidate-service",
		"layer", "application",
		"candidate_id", candidate.CandidateID,
		"election_id", candidate.ElectionID,
		"status", string(candidate.Status),
	)
}

func (s Service) now() time.Time {
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}
	return now
}
