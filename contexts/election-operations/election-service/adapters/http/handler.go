package httpadapter

import (
	"context"
	"log/slog"

	"civica/contexts/election-operations/election-service/application/commands"
	"civica/contexts/election-operations/election-service/application/queries"
	"civica/contexts/election-operations/election-service/domain/entities"
	domainerrors "civica/contexts/election-operations/election-service/domain/errors"
	"civica/contexts/election-operations/election-service/domain/services"
	"civica/contexts/election-operations/election-service/ports"
	httptransport "civica/contexts/election-operations/election-service/transport/http"
)

type Handler struct {
	UseCase commands.ElectionUseCase
	Queries queries.ElectionQueries
	Logger  *slog.Logger
}

func (h Handler) CreateHandler(ctx context.Context, req httptransport.CreateElectionRequest, createdBy string) (httptransport.ElectionResponse, error) {
	election, err := h.UseCase.Create(ctx, commands.CreateElectionCommand{
		Title:             req.Title,
		Description:       req.Description,
		Type:              entities.ElectionType(req.Type),
		Constituency:      req.Constituency,
		State:             req.State,
		RegistrationStart: req.RegistrationStart,
		RegistrationEnd:   req.RegistrationEnd,
		VotingStart:       req.VotingStart,
		VotingEnd:         req.VotingEnd,
		ResultDate:        req.ResultDate,
		CreatedBy:         createdBy,
	})
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return MapElection(election, services.CurrentPhase(election, election.UpdatedAt)), nil
}

func (h Handler) UpdateHandler(ctx context.Context, electionID string, req httptransport.UpdateElectionRequest) (httptransport.ElectionResponse, error) {
	cmd := commands.UpdateElectionCommand{
		Title:             req.Title,
		Description:       req.Description,
		Constituency:      req.Constituency,
		State:             req.State,
		RegistrationStart: req.RegistrationStart,
		RegistrationEnd:   req.RegistrationEnd,
		VotingStart:       req.VotingStart,
		VotingEnd:         req.VotingEnd,
		ResultDate:        req.ResultDate,
	}
	if req.Type != nil {
		electionType := entities.ElectionType(*req.Type)
		cmd.Type = &electionType
	}
	if req.Status != nil {
		status := entities.Status(*req.Status)
		cmd.Status = &status
	}
	election, err := h.UseCase.Update(ctx, electionID, cmd)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return MapElection(election, services.CurrentPhase(election, election.UpdatedAt)), nil
}

func (h Handler) GetHandler(ctx context.Context, electionID string) (httptransport.ElectionResponse, error) {
	view, err := h.Queries.Get(ctx, electionID)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return MapElection(view.Election, view.Phase), nil
}

func (h Handler) ListHandler(ctx context.Context, filter ports.ListFilter) (httptransport.ElectionListResponse, error) {
	views, total, err := h.Queries.List(ctx, filter)
	if err != nil {
		return httptransport.ElectionListResponse{}, err
	}
	resp := httptransport.ElectionListResponse{
		Elections: make([]httptransport.ElectionResponse, 0, len(views)),
		Total:     total,
		Page:      filter.Page,
		Limit:     filter.Limit,
	}
	if resp.Page <= 0 {
		resp.Page = 1
	}
	if resp.Limit <= 0 || resp.Limit > 100 {
		resp.Limit = 20
	}
	for _, view := range views {
		resp.Elections = append(resp.Elections, MapElection(view.Election, view.Phase))
	}
	return resp, nil
}

func (h Handler) ByPhaseHandler(ctx context.Context, phase string) ([]httptransport.ElectionResponse, error) {
	views, err := h.Queries.ByPhase(ctx, services.Phase(phase))
	if err != nil {
		return nil, err
	}
	responses := make([]httptransport.ElectionResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, MapElection(view.Election, view.Phase))
	}
	return responses, nil
}

// ResultsHandler serves the tabulation for result viewers. Before results
// are declared only completed-status elections expose counts.
func (h Handler) ResultsHandler(ctx context.Context, electionID string) (httptransport.ElectionResultsResponse, error) {
	view, rows, err := h.Queries.Results(ctx, electionID)
	if err != nil {
		return httptransport.ElectionResultsResponse{}, err
	}
	if !view.Election.IsResultDeclared && view.Election.Status != entities.StatusCompleted {
		return httptransport.ElectionResultsResponse{}, domainerrors.ErrResultsNotReady
	}
	resp := httptransport.ElectionResultsResponse{
		Election: MapElection(view.Election, view.Phase),
		Results:  make([]httptransport.CandidateResultEntry, 0, len(rows)),
	}
	for _, row := range rows {
		entry := httptransport.CandidateResultEntry{
			CandidateID: row.CandidateID,
			FullName:    row.FullName,
			Party:       row.Party,
			Votes:       row.Votes,
			Percentage:  row.Percentage,
		}
		resp.Results = append(resp.Results, entry)
		if view.Election.WinnerCandidateID != "" && row.CandidateID == view.Election.WinnerCandidateID {
			winner := entry
			resp.Winner = &winner
		}
	}
	return resp, nil
}

func (h Handler) DeclareResultsHandler(ctx context.Context, electionID string, declaredBy string) (httptransport.ElectionResultsResponse, error) {
	declared, err := h.UseCase.DeclareResults(ctx, electionID, declaredBy)
	if err != nil {
		return httptransport.ElectionResultsResponse{}, err
	}
	resp := httptransport.ElectionResultsResponse{
		Election: MapElection(declared.Election, services.CurrentPhase(declared.Election, declared.Election.UpdatedAt)),
		Results:  make([]httptransport.CandidateResultEntry, 0, len(declared.Tallies)),
	}
	for _, tally := range declared.Tallies {
		entry := httptransport.CandidateResultEntry{
			CandidateID: tally.CandidateID,
			FullName:    tally.FullName,
			Party:       tally.Party,
			Votes:       tally.Votes,
			Percentage:  commands.Turnout(tally.Votes, declared.Election.TotalVotesCast),
		}
		resp.Results = append(resp.Results, entry)
		if tally.CandidateID == declared.Election.WinnerCandidateID {
			winner := entry
			resp.Winner = &winner
		}
	}
	return resp, nil
}

func MapElection(election entities.Election, phase services.Phase) httptransport.ElectionResponse {
	return httptransport.ElectionResponse{
		ElectionID:            election.ElectionID,
		Title:                 election.Title,
		Description:           election.Description,
		Type:                  string(election.Type),
		Constituency:          election.Constituency,
		State:                 election.State,
		RegistrationStart:     election.RegistrationStart,
		RegistrationEnd:       election.RegistrationEnd,
		VotingStart:           election.VotingStart,
		VotingEnd:             election.VotingEnd,
		ResultDate:            election.ResultDate,
		Status:                string(election.Status),
		Phase:                 string(phase),
		TotalRegisteredVoters: election.TotalRegisteredVoters,
		TotalVotesCast:        election.TotalVotesCast,
		CandidateCount:        election.CandidateCount,
		TurnoutPercentage:     election.TurnoutPercentage,
		IsResultDeclared:      election.IsResultDeclared,
		WinnerCandidateID:     election.WinnerCandidateID,
		ResultDeclaredAt:      election.ResultDeclaredAt,
		CreatedBy:             election.CreatedBy,
		CreatedAt:             election.CreatedAt,
		UpdatedAt:             election.UpdatedAt,
	}
}
