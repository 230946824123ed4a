package application

import (
	"context"
	"strings"
	"time"

	domainerrors "civica/contexts/internal-ops/dashboard-service/domain/errors"
	"civica/contexts/internal-ops/dashboard-service/ports"
)

const (
	ReportTypeElection = "election"
	ReportTypeVoter    = "voter"
	ReportTypeSystem   = "system"
)

type DashboardView struct {
	Stats           ports.DashboardStats
	ActiveElections []ports.ElectionSummary
}

// Report is the typed report payload. Exactly one of the section fields is
// populated, matching Type.
type Report struct {
	Type        string
	GeneratedAt time.Time
	Election    *ElectionReport
	Voter       *VoterReport
	System      *SystemReport
}

type ElectionReport struct {
	TotalElections     int64
	ActiveElections    int64
	CompletedElections int64
	Elections          []ports.ElectionSummary
}

type VoterReport struct {
	TotalVoters       int64
	ActiveVoters      int64
	VotersWhoVoted    int64
	ParticipationRate float64
}

type SystemReport struct {
	Stats ports.DashboardStats
}

type Service struct {
	Stats ports.StatsRepository
	Clock ports.Clock
}

func (s Service) Dashboard(ctx context.Context) (DashboardView, error) {
	stats, err := s.Stats.CollectStats(ctx)
	if err != nil {
		return DashboardView{}, err
	}
	summaries, err := s.Stats.ListElectionSummaries(ctx, 10)
	if err != nil {
		return DashboardView{}, err
	}
	active := make([]ports.ElectionSummary, 0, len(summaries))
	for _, summary := range summaries {
		if summary.Status == "active" {
			active = append(active, summary)
		}
	}
	return DashboardView{Stats: stats, ActiveElections: active}, nil
}

func (s Service) Report(ctx context.Context, reportType string) (Report, error) {
	stats, err := s.Stats.CollectStats(ctx)
	if err != nil {
		return Report{}, err
	}
	report := Report{Type: strings.TrimSpace(reportType), GeneratedAt: s.now()}
	switch report.Type {
	case ReportTypeElection:
		summaries, err := s.Stats.ListElectionSummaries(ctx, 50)
		if err != nil {
			return Report{}, err
		}
		report.Election = &ElectionReport{
			TotalElections:     stats.TotalElections,
			ActiveElections:    stats.ActiveElections,
			CompletedElections: stats.CompletedElections,
			Elections:          summaries,
		}
	case ReportTypeVoter:
		voter := &VoterReport{
			TotalVoters:    stats.TotalVoters,
			ActiveVoters:   stats.ActiveVoters,
			VotersWhoVoted: stats.VotersWhoVoted,
		}
		if stats.TotalVoters > 0 {
			voter.ParticipationRate = float64(stats.VotersWhoVoted) / float64(stats.TotalVoters) * 100
		}
		report.Voter = voter
	case ReportTypeSystem:
		report.System = &SystemReport{Stats: stats}
	default:
		return Report{}, domainerrors.ErrInvalidReportType
	}
	return report, nil
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
