package commands

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	application "civica/contexts/election-operations/election-service/application"
	"civica/contexts/election-operations/election-service/domain/entities"
	domainerrors "civica/contexts/election-operations/election-service/domain/errors"
	"civica/contexts/election-operations/election-service/domain/services"
	"civica/contexts/election-operations/election-service/ports"
)

// Tie-break policies for result declaration. The source behavior left ties
// undefined; here the policy is explicit configuration.
const (
	TieBreakReject             = "reject_tie"
	TieBreakEarliestNomination = "earliest_nomination"
)

type CreateElectionCommand struct {
	Title        string
	Description  string
	Type         entities.ElectionType
	Constituency string
	State        string

	RegistrationStart time.Time
	RegistrationEnd   time.Time
	VotingStart       time.Time
	VotingEnd         time.Time
	ResultDate        time.Time

	CreatedBy string
}

// UpdateElectionCommand carries optional mutations. Once the election is
// active or later, only the operational allow-list (description, status)
// is honored; anything else fails with ErrElectionLocked.
type UpdateElectionCommand struct {
	Title        *string
	Description  *string
	Type         *entities.ElectionType
	Constituency *string
	State        *string

	RegistrationStart *time.Time
	RegistrationEnd   *time.Time
	VotingStart       *time.Time
	VotingEnd         *time.Time
	ResultDate        *time.Time

	Status *entities.Status
}

type DeclaredResult struct {
	Election entities.Election
	Tallies  []ports.CandidateTally
}

type ElectionUseCase struct {
	Elections ports.ElectionRepository
	Tallies   ports.TallyReader
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	// TieBreak selects the winner policy for equal top counts.
	TieBreak string
	Logger   *slog.Logger
}

// Create validates the five-timestamp ordering and persists a new election
// in upcoming status with its eligible-voter counter seeded.
func (uc ElectionUseCase) Create(ctx context.Context, cmd CreateElectionCommand) (entities.Election, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.Title) == "" || !entities.IsValidType(cmd.Type) {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}

	electionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Election{}, err
	}
	now := uc.now()
	election := entities.Election{
		ElectionID:   electionID,
		Title:        strings.TrimSpace(cmd.Title),
		Description:  strings.TrimSpace(cmd.Description),
		Type:         cmd.Type,
		Constituency: strings.TrimSpace(cmd.Constituency),
		State:        strings.TrimSpace(cmd.State),

		RegistrationStart: cmd.RegistrationStart.UTC(),
		RegistrationEnd:   cmd.RegistrationEnd.UTC(),
		VotingStart:       cmd.VotingStart.UTC(),
		VotingEnd:         cmd.VotingEnd.UTC(),
		ResultDate:        cmd.ResultDate.UTC(),

		Status:    entities.StatusUpcoming,
		CreatedBy: strings.TrimSpace(cmd.CreatedBy),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !election.ScheduleValid() {
		return entities.Election{}, domainerrors.ErrInvalidSchedule
	}

	if uc.Tallies != nil {
		count, err := uc.Tallies.CountEligibleVoters(ctx, election.Constituency)
		if err != nil {
			return entities.Election{}, err
		}
		election.TotalRegisteredVoters = count
	}

	if err := uc.Elections.CreateElection(ctx, election); err != nil {
		return entities.Election{}, err
	}

	logger.Info("election created",
		"event", "election_created",
		"module", "election-operations/election-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"type", string(election.Type),
		"created_by", election.CreatedBy,
	)
	return election, nil
}

// Update applies mutations subject to the lock rule.
func (uc ElectionUseCase) Update(ctx context.Context, electionID string, cmd UpdateElectionCommand) (entities.Election, error) {
	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return entities.Election{}, err
	}

	if election.Status.Locked() && requestsLockedFields(cmd) {
		return entities.Election{}, domainerrors.ErrElectionLocked
	}

	now := uc.now()
	if cmd.Title != nil {
		election.Title = strings.TrimSpace(*cmd.Title)
	}
	if cmd.Description != nil {
		election.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.Type != nil {
		if !entities.IsValidType(*cmd.Type) {
			return entities.Election{}, domainerrors.ErrInvalidElectionInput
		}
		election.Type = *cmd.Type
	}
	if cmd.Constituency != nil {
		election.Constituency = strings.TrimSpace(*cmd.Constituency)
	}
	if cmd.State != nil {
		election.State = strings.TrimSpace(*cmd.State)
	}
	if cmd.RegistrationStart != nil {
		election.RegistrationStart = cmd.RegistrationStart.UTC()
	}
	if cmd.RegistrationEnd != nil {
		election.RegistrationEnd = cmd.RegistrationEnd.UTC()
	}
	if cmd.VotingStart != nil {
		election.VotingStart = cmd.VotingStart.UTC()
	}
	if cmd.VotingEnd != nil {
		election.VotingEnd = cmd.VotingEnd.UTC()
	}
	if cmd.ResultDate != nil {
		election.ResultDate = cmd.ResultDate.UTC()
	}
	if !election.ScheduleValid() {
		return entities.Election{}, domainerrors.ErrInvalidSchedule
	}
	if cmd.Status != nil {
		if err := applyStatusChange(&election, *cmd.Status); err != nil {
			return entities.Election{}, err
		}
	}
	election.UpdatedAt = now
	if err := uc.Elections.SaveElection(ctx, election); err != nil {
		return entities.Election{}, err
	}
	return election, nil
}

// DeclareResults is one-way and strictly idempotent: a second call is
// rejected instead of recomputing and overwriting.
func (uc ElectionUseCase) DeclareResults(ctx context.Context, electionID string, declaredBy string) (DeclaredResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return DeclaredResult{}, err
	}
	if election.IsResultDeclared {
		return DeclaredResult{}, domainerrors.ErrResultsAlreadyDeclared
	}
	now := uc.now()
	if !services.ResultsDeclarable(election, now) {
		return DeclaredResult{}, domainerrors.ErrResultsNotReady
	}

	tallies, err := uc.Tallies.CountValidVotesByCandidate(ctx, election.ElectionID)
	if err != nil {
		return DeclaredResult{}, err
	}
	if len(tallies) == 0 {
		return DeclaredResult{}, domainerrors.ErrNoVotesRecorded
	}
	sort.SliceStable(tallies, func(i, j int) bool {
		return tallies[i].Votes > tallies[j].Votes
	})

	winner, err := uc.resolveWinner(tallies)
	if err != nil {
		return DeclaredResult{}, err
	}

	var total int64
	for _, tally := range tallies {
		total += tally.Votes
	}

	election.IsResultDeclared = true
	election.WinnerCandidateID = winner.CandidateID
	election.ResultDeclaredAt = &now
	election.Status = entities.StatusCompleted
	election.TotalVotesCast = total
	election.TurnoutPercentage = Turnout(total, election.TotalRegisteredVoters)
	election.UpdatedAt = now
	if err := uc.Elections.SaveElection(ctx, election); err != nil {
		return DeclaredResult{}, err
	}

	logger.Info("election results declared",
		"event", "election_results_declared",
		"module", "election-operations/election-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"winner_candidate_id", winner.CandidateID,
		"total_votes", total,
		"declared_by", strings.TrimSpace(declaredBy),
	)
	return DeclaredResult{Election: election, Tallies: tallies}, nil
}

func (uc ElectionUseCase) resolveWinner(sorted []ports.CandidateTally) (ports.CandidateTally, error) {
	top := sorted[0]
	if len(sorted) == 1 || sorted[1].Votes < top.Votes {
		return top, nil
	}
	switch uc.TieBreak {
	case TieBreakEarliestNomination:
		winner := top
		for _, tally := range sorted[1:] {
			if tally.Votes < top.Votes {
				break
			}
			if tally.NominatedAt.Before(winner.NominatedAt) {
				winner = tally
			}
		}
		return winner, nil
	default:
		return ports.CandidateTally{}, domainerrors.ErrTieUnresolved
	}
}

// Turnout computes votes cast over registered voters as a percentage,
// clamped to [0,100]. Zero registered voters yields zero, not a division
// blowup.
func Turnout(votesCast int64, registered int64) float64 {
	if registered <= 0 || votesCast <= 0 {
		return 0
	}
	turnout := float64(votesCast) / float64(registered) * 100
	if turnout > 100 {
		return 100
	}
	return turnout
}

func applyStatusChange(election *entities.Election, status entities.Status) error {
	if !entities.IsValidStatus(status) {
		return domainerrors.ErrInvalidElectionInput
	}
	if election.Status.IsTerminal() && status != election.Status {
		return domainerrors.ErrInvalidStatusChange
	}
	election.Status = status
	return nil
}

func requestsLockedFields(cmd UpdateElectionCommand) bool {
	return cmd.Title != nil ||
		cmd.Type != nil ||
		cmd.Constituency != nil ||
		cmd.State != nil ||
		cmd.RegistrationStart != nil ||
		cmd.RegistrationEnd != nil ||
		cmd.VotingStart != nil ||
		cmd.VotingEnd != nil ||
		cmd.ResultDate != nil
}

func (uc ElectionUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
