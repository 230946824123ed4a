package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"civica/contexts/identity-access/voter-service/application"
	"civica/contexts/identity-access/voter-service/domain/entities"
	domainerrors "civica/contexts/identity-access/voter-service/domain/errors"
	httptransport "civica/contexts/identity-access/voter-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RegisterHandler(ctx context.Context, req httptransport.RegisterVoterRequest) (httptransport.VoterResponse, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return httptransport.VoterResponse{}, domainerrors.ErrInvalidVoterInput
	}
	voter, err := h.Service.Register(ctx, application.RegisterVoterCommand{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		NationalID:   req.NationalID,
		DateOfBirth:  dob,
		Gender:       entities.Gender(req.Gender),
		AddressLine:  req.AddressLine,
		City:         req.City,
		State:        req.State,
		Constituency: req.Constituency,
		Password:     req.Password,
	})
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return MapVoter(voter), nil
}

func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginVoterRequest) (httptransport.VoterResponse, error) {
	voter, err := h.Service.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return MapVoter(voter), nil
}

func (h Handler) ProfileHandler(ctx context.Context, voterID string) (httptransport.VoterResponse, error) {
	voter, err := h.Service.GetProfile(ctx, voterID)
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return MapVoter(voter), nil
}

func (h Handler) CloseHandler(ctx context.Context, voterID string) error {
	return h.Service.Close(ctx, voterID)
}

// MapVoter strips credentials from the entity for transport.
func MapVoter(voter entities.Voter) httptransport.VoterResponse {
	resp := httptransport.VoterResponse{
		VoterID:      voter.VoterID,
		FullName:     voter.FullName,
		Email:        voter.Email,
		Phone:        voter.Phone,
		DateOfBirth:  voter.DateOfBirth.Format("2006-01-02"),
		Gender:       string(voter.Gender),
		AddressLine:  voter.AddressLine,
		City:         voter.City,
		State:        voter.State,
		Constituency: voter.Constituency,
		HasVoted:     voter.HasVoted,
		IsActive:     voter.IsActive,
		IsVerified:   voter.IsVerified,
		LastLoginAt:  voter.LastLoginAt,
		CreatedAt:    voter.CreatedAt,
	}
	for _, record := range voter.History {
		resp.History = append(resp.History, httptransport.VotingRecordEntry{
			ElectionID: record.ElectionID,
			VotedAt:    record.VotedAt,
		})
	}
	return resp
}
