package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"civica/contexts/identity-access/voter-service/adapters/memory"
	"civica/contexts/identity-access/voter-service/domain/entities"
	domainerrors "civica/contexts/identity-access/voter-service/domain/errors"
)

func newTestService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SetNow(func() time.Time {
		return time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	})
	return Service{
		Voters:   store,
		Clock:    store,
		IDGen:    store,
		HashCost: bcrypt.MinCost,
	}, store
}

func registerCommand() RegisterVoterCommand {
	return RegisterVoterCommand{
		FullName:     "Asha Verma",
		Email:        "Asha.Verma@example.com",
		Phone:        "+91-9000000001",
		NationalID:   "NID-1001",
		DateOfBirth:  time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC),
		Gender:       entities.GenderFemale,
		Constituency: "north",
		Password:     "correct-horse",
	}
}

func TestRegisterNormalizesAndActivates(t *testing.T) {
	service, _ := newTestService(t)

	voter, err := service.Register(context.Background(), registerCommand())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if voter.Email != "asha.verma@example.com" {
		t.Fatalf("expected lowercased email, got %q", voter.Email)
	}
	if !voter.IsActive || !voter.IsVerified {
		t.Fatalf("expected new voter active and verified, got active=%v verified=%v", voter.IsActive, voter.IsVerified)
	}
	if voter.VoterID == "" {
		t.Fatal("expected a generated voter id")
	}
	if voter.PasswordHash == "correct-horse" {
		t.Fatal("password must never be stored in clear")
	}
}

func TestRegisterRejectsUnderageVoter(t *testing.T) {
	service, _ := newTestService(t)

	cmd := registerCommand()
	cmd.DateOfBirth = time.Date(2009, time.April, 1, 0, 0, 0, 0, time.UTC)
	if _, err := service.Register(context.Background(), cmd); !errors.Is(err, domainerrors.ErrUnderage) {
		t.Fatalf("expected ErrUnderage, got %v", err)
	}
}

func TestRegisterAcceptsVoterTurning18Today(t *testing.T) {
	service, _ := newTestService(t)

	cmd := registerCommand()
	cmd.Email = "birthday@example.com"
	cmd.Phone = "+91-9000000002"
	cmd.NationalID = "NID-1002"
	cmd.DateOfBirth = time.Date(2008, time.March, 10, 0, 0, 0, 0, time.UTC)
	if _, err := service.Register(context.Background(), cmd); err != nil {
		t.Fatalf("voter turning 18 on registration day must be accepted, got %v", err)
	}
}

func TestRegisterRejectsDuplicateIdentity(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, registerCommand()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	duplicateEmail := registerCommand()
	duplicateEmail.Phone = "+91-9000000009"
	duplicateEmail.NationalID = "NID-9999"
	if _, err := service.Register(ctx, duplicateEmail); !errors.Is(err, domainerrors.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	duplicateNationalID := registerCommand()
	duplicateNationalID.Email = "other@example.com"
	duplicateNationalID.Phone = "+91-9000000008"
	if _, err := service.Register(ctx, duplicateNationalID); !errors.Is(err, domainerrors.ErrDuplicateNationalID) {
		t.Fatalf("expected ErrDuplicateNationalID, got %v", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	service, _ := newTestService(t)

	cmd := registerCommand()
	cmd.Password = "short"
	if _, err := service.Register(context.Background(), cmd); !errors.Is(err, domainerrors.ErrInvalidVoterInput) {
		t.Fatalf("expected ErrInvalidVoterInput, got %v", err)
	}
}

func TestLoginByEmailAndPhone(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, registerCommand())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	byEmail, err := service.Login(ctx, "ASHA.VERMA@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login by email failed: %v", err)
	}
	if byEmail.VoterID != registered.VoterID {
		t.Fatalf("login resolved wrong voter: %q vs %q", byEmail.VoterID, registered.VoterID)
	}
	if byEmail.LastLoginAt == nil {
		t.Fatal("expected last login timestamp after login")
	}

	if _, err := service.Login(ctx, "+91-9000000001", "correct-horse"); err != nil {
		t.Fatalf("login by phone failed: %v", err)
	}
}

func TestLoginReturnsSameErrorForUnknownAndWrongPassword(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, registerCommand()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, unknownErr := service.Login(ctx, "nobody@example.com", "correct-horse")
	_, wrongErr := service.Login(ctx, "asha.verma@example.com", "wrong-password")
	if !errors.Is(unknownErr, domainerrors.ErrInvalidCredentials) || !errors.Is(wrongErr, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("both failures must map to ErrInvalidCredentials, got %v and %v", unknownErr, wrongErr)
	}
}

func TestLoginRejectsDeactivatedVoter(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	voter, err := service.Register(ctx, registerCommand())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := service.Deactivate(ctx, voter.VoterID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := service.Login(ctx, voter.Email, "correct-horse"); !errors.Is(err, domainerrors.ErrVoterInactive) {
		t.Fatalf("expected ErrVoterInactive, got %v", err)
	}
}

func TestCloseDeletesVoterWithoutVotes(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	voter, err := service.Register(ctx, registerCommand())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := service.Close(ctx, voter.VoterID); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if _, err := service.GetProfile(ctx, voter.VoterID); !errors.Is(err, domainerrors.ErrVoterNotFound) {
		t.Fatalf("expected ErrVoterNotFound after close, got %v", err)
	}
}

func TestCloseRefusesVoterWithRecordedVotes(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	voter, err := service.Register(ctx, registerCommand())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	store.MarkVoted(voter.VoterID, "election-1", store.Now())

	if err := service.Close(ctx, voter.VoterID); !errors.Is(err, domainerrors.ErrVoterHasVoted) {
		t.Fatalf("expected ErrVoterHasVoted, got %v", err)
	}
	profile, err := service.GetProfile(ctx, voter.VoterID)
	if err != nil {
		t.Fatalf("voter must survive a refused close: %v", err)
	}
	if !profile.HasVoted {
		t.Fatal("expected voting record to be intact")
	}
}

func TestProfileCarriesVotingHistory(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	voter, err := service.Register(ctx, registerCommand())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	store.MarkVoted(voter.VoterID, "election-1", store.Now())

	profile, err := service.GetProfile(ctx, voter.VoterID)
	if err != nil {
		t.Fatalf("profile lookup failed: %v", err)
	}
	if !profile.HasVoted || len(profile.History) != 1 {
		t.Fatalf("expected has_voted with one history record, got %v / %d", profile.HasVoted, len(profile.History))
	}
	if !profile.HasVotedIn("election-1") {
		t.Fatal("expected history lookup to find election-1")
	}
}
