package postgresadapter

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"civica/contexts/internal-ops/dashboard-service/ports"
)

// Repository aggregates over the tables owned by the other modules. Reads
// only; it owns no schema of its own.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CollectStats(ctx context.Context) (ports.DashboardStats, error) {
	var stats ports.DashboardStats
	counts := []struct {
		dest  *int64
		table string
		cond  string
		args  []any
	}{
		{&stats.TotalVoters, "voters", "", nil},
		{&stats.ActiveVoters, "voters", "is_active", nil},
		{&stats.VotersWhoVoted, "voters", "has_voted", nil},
		{&stats.TotalAdmins, "admins", "", nil},
		{&stats.TotalElections, "elections", "", nil},
		{&stats.ActiveElections, "elections", "status = ?", []any{"active"}},
		{&stats.CompletedElections, "elections", "status = ?", []any{"completed"}},
		{&stats.TotalCandidates, "candidates", "", nil},
		{&stats.ApprovedCandidates, "candidates", "status = ?", []any{"approved"}},
		{&stats.PendingCandidates, "candidates", "status = ?", []any{"pending"}},
		{&stats.TotalVotes, "votes", "", nil},
		{&stats.ValidVotes, "votes", "status = ?", []any{"valid"}},
		{&stats.DisputedVotes, "votes", "status = ?", []any{"disputed"}},
	}
	for _, c := range counts {
		query := r.db.WithContext(ctx).Table(c.table)
		if c.cond != "" {
			query = query.Where(c.cond, c.args...)
		}
		if err := query.Count(c.dest).Error; err != nil {
			r.logger.Error("dashboard stats query failed",
				"event", "dashboard_stats_failed",
				"module", "internal-ops/dashboard-service",
				"layer", "adapter",
				"table", c.table,
				"error", err.Error(),
			)
			return ports.DashboardStats{}, err
		}
	}
	return stats, nil
}

func (r *Repository) ListElectionSummaries(ctx context.Context, limit int) ([]ports.ElectionSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []struct {
		ID                string  `gorm:"column:id"`
		Title             string  `gorm:"column:title"`
		Status            string  `gorm:"column:status"`
		TotalVotesCast    int64   `gorm:"column:total_votes_cast"`
		TurnoutPercentage float64 `gorm:"column:turnout_percentage"`
	}
	err := r.db.WithContext(ctx).
		Table("elections").
		Select("id, title, status, total_votes_cast, turnout_percentage").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	summaries := make([]ports.ElectionSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, ports.ElectionSummary{
			ElectionID:        row.ID,
			Title:             row.Title,
			Status:            row.Status,
			TotalVotesCast:    row.TotalVotesCast,
			TurnoutPercentage: row.TurnoutPercentage,
		})
	}
	return summaries, nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

var _ ports.StatsRepository = (*Repository)(nil)
var _ ports.Clock = SystemClock{}
