package httpadapter

import (
	"context"

	"civica/contexts/internal-ops/dashboard-service/application"
	"civica/contexts/internal-ops/dashboard-service/ports"
	httptransport "civica/contexts/internal-ops/dashboard-service/transport/http"
)

type Handler struct {
	Service application.Service
}

func (h Handler) DashboardHandler(ctx context.Context) (httptransport.DashboardResponse, error) {
	view, err := h.Service.Dashboard(ctx)
	if err != nil {
		return httptransport.DashboardResponse{}, err
	}
	resp := httptransport.DashboardResponse{
		Stats:           mapStats(view.Stats),
		ActiveElections: mapSummaries(view.ActiveElections),
	}
	return resp, nil
}

func (h Handler) ReportHandler(ctx context.Context, reportType string) (httptransport.ReportResponse, error) {
	report, err := h.Service.Report(ctx, reportType)
	if err != nil {
		return httptransport.ReportResponse{}, err
	}
	resp := httptransport.ReportResponse{
		Type:        report.Type,
		GeneratedAt: report.GeneratedAt,
	}
	if report.Election != nil {
		resp.Election = &httptransport.ElectionReportSection{
			TotalElections:     report.Election.TotalElections,
			ActiveElections:    report.Election.ActiveElections,
			CompletedElections: report.Election.CompletedElections,
			Elections:          mapSummaries(report.Election.Elections),
		}
	}
	if report.Voter != nil {
		resp.Voter = &httptransport.VoterReportSection{
			TotalVoters:       report.Voter.TotalVoters,
			ActiveVoters:      report.Voter.ActiveVoters,
			VotersWhoVoted:    report.Voter.VotersWhoVoted,
			ParticipationRate: report.Voter.ParticipationRate,
		}
	}
	if report.System != nil {
		resp.System = &httptransport.SystemReportSection{Stats: mapStats(report.System.Stats)}
	}
	return resp, nil
}

func mapStats(stats ports.DashboardStats) httptransport.DashboardStatsResponse {
	return httptransport.DashboardStatsResponse{
		TotalVoters:        stats.TotalVoters,
		ActiveVoters:       stats.ActiveVoters,
		VotersWhoVoted:     stats.VotersWhoVoted,
		TotalAdmins:        stats.TotalAdmins,
		TotalElections:     stats.TotalElections,
		ActiveElections:    stats.ActiveElections,
		CompletedElections: stats.CompletedElections,
		TotalCandidates:    stats.TotalCandidates,
		ApprovedCandidates: stats.ApprovedCandidates,
		PendingCandidates:  stats.PendingCandidates,
		TotalVotes:         stats.TotalVotes,
		ValidVotes:         stats.ValidVotes,
		DisputedVotes:      stats.DisputedVotes,
	}
}

func mapSummaries(summaries []ports.ElectionSummary) []httptransport.ElectionSummaryEntry {
	entries := make([]httptransport.ElectionSummaryEntry, 0, len(summaries))
	for _, summary := range summaries {
		entries = append(entries, httptransport.ElectionSummaryEntry{
			ElectionID:        summary.ElectionID,
			Title:             summary.Title,
			Status:            summary.Status,
			TotalVotesCast:    summary.TotalVotesCast,
			TurnoutPercentage: summary.TurnoutPercentage,
		})
	}
	return entries
}
