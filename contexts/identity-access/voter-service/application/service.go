package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"civica/contexts/identity-access/voter-service/domain/entities"
	domainerrors "civica/contexts/identity-access/voter-service/domain/errors"
	"civica/contexts/identity-access/voter-service/ports"
)

const minVotingAge = 18

type RegisterVoterCommand struct {
	FullName     string
	Email        string
	Phone        string
	NationalID   string
	DateOfBirth  time.Time
	Gender       entities.Gender
	AddressLine  string
	City         string
	State        string
	Constituency string
	Password     string
}

type Service struct {
	Voters ports.VoterRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
	// HashCost lets tests run with bcrypt.MinCost; zero means bcrypt default.
	HashCost int
}

// Register creates a voter account. Age and credential checks run before the
// insert; uniqueness of email/phone/national id is left to the repository's
// unique indexes and surfaced as duplicate-field errors.
func (s Service) Register(ctx context.Context, cmd RegisterVoterCommand) (entities.Voter, error) {
	logger := ResolveLogger(s.Logger)
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	phone := strings.TrimSpace(cmd.Phone)
	if strings.TrimSpace(cmd.FullName) == "" ||
		email == "" || phone == "" ||
		strings.TrimSpace(cmd.NationalID) == "" ||
		cmd.DateOfBirth.IsZero() ||
		len(cmd.Password) < 8 {
		return entities.Voter{}, domainerrors.ErrInvalidVoterInput
	}

	now := s.now()
	applicant := entities.Voter{DateOfBirth: cmd.DateOfBirth}
	if applicant.AgeAt(now) < minVotingAge {
		logger.Warn("voter registration rejected for age",
			"event", "voter_register_underage",
			"module", "identity-access/voter-service",
			"layer", "application",
		)
		return entities.Voter{}, domainerrors.ErrUnderage
	}

	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), cost)
	if err != nil {
		return entities.Voter{}, err
	}

	voterID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Voter{}, err
	}
	voter := entities.Voter{
		VoterID:      voterID,
		FullName:     strings.TrimSpace(cmd.FullName),
		Email:        email,
		Phone:        phone,
		NationalID:   strings.TrimSpace(cmd.NationalID),
		DateOfBirth:  cmd.DateOfBirth.UTC(),
		Gender:       cmd.Gender,
		AddressLine:  strings.TrimSpace(cmd.AddressLine),
		City:         strings.TrimSpace(cmd.City),
		State:        strings.TrimSpace(cmd.State),
		Constituency: strings.TrimSpace(cmd.Constituency),
		PasswordHash: string(hash),
		IsActive:     true,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Voters.CreateVoter(ctx, voter); err != nil {
		return entities.Voter{}, err
	}

	logger.Info("voter registered",
		"event", "voter_registered",
		"module", "identity-access/voter-service",
		"layer", "application",
		"voter_id", voter.VoterID,
		"constituency", voter.Constituency,
	)
	return voter, nil
}

// Login verifies a voter credential by email or phone. The same error is
// returned for unknown identifier and wrong password.
func (s Service) Login(ctx context.Context, identifier string, password string) (entities.Voter, error) {
	logger := ResolveLogger(s.Logger)
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return entities.Voter{}, domainerrors.ErrInvalidCredentials
	}

	voter, found, err := s.lookup(ctx, identifier)
	if err != nil {
		return entities.Voter{}, err
	}
	if !found {
		return entities.Voter{}, domainerrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(voter.PasswordHash), []byte(password)); err != nil {
		logger.Warn("voter login failed",
			"event", "voter_login_failed",
			"module", "identity-access/voter-service",
			"layer", "application",
			"voter_id", voter.VoterID,
		)
		return entities.Voter{}, domainerrors.ErrInvalidCredentials
	}
	if !voter.IsActive {
		return entities.Voter{}, domainerrors.ErrVoterInactive
	}

	now := s.now()
	if err := s.Voters.UpdateLastLogin(ctx, voter.VoterID, now); err != nil {
		return entities.Voter{}, err
	}
	voter.LastLoginAt = &now

	logger.Info("voter logged in",
		"event", "voter_login",
		"module", "identity-access/voter-service",
		"layer", "application",
		"voter_id", voter.VoterID,
	)
	return voter, nil
}

func (s Service) GetProfile(ctx context.Context, voterID string) (entities.Voter, error) {
	if strings.TrimSpace(voterID) == "" {
		return entities.Voter{}, domainerrors.ErrInvalidVoterInput
	}
	return s.Voters.GetVoter(ctx, strings.TrimSpace(voterID))
}

// Deactivate soft-disables a voter account without touching its record.
func (s Service) Deactivate(ctx context.Context, voterID string) error {
	if strings.TrimSpace(voterID) == "" {
		return domainerrors.ErrInvalidVoterInput
	}
	return s.Voters.SetActive(ctx, strings.TrimSpace(voterID), false, s.now())
}

// Close removes a voter account outright. Accounts with recorded votes stay
// on file so the ledger's voter references remain resolvable; the repository
// refuses those with ErrVoterHasVoted.
func (s Service) Close(ctx context.Context, voterID string) error {
	logger := ResolveLogger(s.Logger)
	voterID = strings.TrimSpace(voterID)
	if voterID == "" {
		return domainerrors.ErrInvalidVoterInput
	}
	if err := s.Voters.DeleteVoter(ctx, voterID); err != nil {
		return err
	}
	logger.Info("voter account deleted",
		"event", "voter_deleted",
		"module", "identity-access/voter-service",
		"layer", "application",
		"voter_id", voterID,
	)
	return nil
}

func (s Service) lookup(ctx context.Context, identifier string) (entities.Voter, bool, error) {
	if strings.Contains(identifier, "@") {
		return s.Voters.GetVoterByEmail(ctx, strings.ToLower(identifier))
	}
	return s.Voters.GetVoterByPhone(ctx, identifier)
}

func (s Service) now() time.Time {
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}
	return now
}
