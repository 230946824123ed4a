package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"civica/contexts/election-operations/election-service/domain/entities"
	domainerrors "civica/contexts/election-operations/election-service/domain/errors"
	"civica/contexts/election-operations/election-service/ports"
)

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

// Models lists the adapter-owned schema for platform migration.
func Models() []any {
	return []any{&electionModel{}}
}

func (r *Repository) CreateElection(ctx context.Context, election entities.Election) error {
	row := electionModelFromEntity(election)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("election_repo_create_failed", err, "election_id", election.ElectionID)
	}
	return nil
}

func (r *Repository) GetElection(ctx context.Context, electionID string) (entities.Election, error) {
	var row electionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(electionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrElectionNotFound
		}
		return entities.Election{}, r.logError("election_repo_get_failed", err, "election_id", strings.TrimSpace(electionID))
	}
	return row.toEntity(), nil
}

func (r *Repository) ListElections(ctx context.Context, filter ports.ListFilter) ([]entities.Election, int64, error) {
	query := r.db.WithContext(ctx).Model(&electionModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.Constituency != "" {
		query = query.Where("LOWER(constituency) = LOWER(?)", strings.TrimSpace(filter.Constituency))
	}
	if filter.State != "" {
		query = query.Where("LOWER(state) = LOWER(?)", strings.TrimSpace(filter.State))
	}
	if filter.Search != "" {
		needle := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, r.logError("election_repo_count_failed", err)
	}

	var rows []electionModel
	err := query.
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, r.logError("election_repo_list_failed", err)
	}

	elections := make([]entities.Election, 0, len(rows))
	for _, row := range rows {
		elections = append(elections, row.toEntity())
	}
	return elections, total, nil
}

func (r *Repository) SaveElection(ctx context.Context, election entities.Election) error {
	row := electionModelFromEntity(election)
	result := r.db.WithContext(ctx).Model(&electionModel{}).
		Where("id = ?", election.ElectionID).
		Select("*").
		Omit("id", "created_at").
		Updates(&row)
	if result.Error != nil {
		return r.logError("election_repo_save_failed", result.Error, "election_id", election.ElectionID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrElectionNotFound
	}
	return nil
}

// CountValidVotesByCandidate aggregates the vote ledger and candidate
// projections owned by other modules. Reads only; the tables are written by
// their owning adapters.
func (r *Repository) CountValidVotesByCandidate(ctx context.Context, electionID string) ([]ports.CandidateTally, error) {
	var rows []struct {
		CandidateID string    `gorm:"column:candidate_id"`
		FullName    string    `gorm:"column:full_name"`
		Party       string    `gorm:"column:party"`
		Votes       int64     `gorm:"column:votes"`
		NominatedAt time.Time `gorm:"column:nominated_at"`
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.id AS candidate_id,
		       c.full_name AS full_name,
		       c.party AS party,
		       COUNT(v.id) AS votes,
		       c.nominated_at AS nominated_at
		FROM candidates c
		LEFT JOIN votes v
		  ON v.candidate_id = c.id
		 AND v.election_id = c.election_id
		 AND v.status = 'valid'
		WHERE c.election_id = ?
		  AND c.status = 'approved'
		  AND c.is_active
		GROUP BY c.id, c.full_name, c.party, c.nominated_at`,
		strings.TrimSpace(electionID),
	).Scan(&rows).Error
	if err != nil {
		return nil, r.logError("election_repo_tally_failed", err, "election_id", electionID)
	}

	tallies := make([]ports.CandidateTally, 0, len(rows))
	for _, row := range rows {
		tallies = append(tallies, ports.CandidateTally{
			CandidateID: row.CandidateID,
			FullName:    row.FullName,
			Party:       row.Party,
			Votes:       row.Votes,
			NominatedAt: row.NominatedAt,
		})
	}
	return tallies, nil
}

// CountEligibleVoters counts active, verified voters. An empty constituency
// means the election is not constituency-scoped and every voter counts.
func (r *Repository) CountEligibleVoters(ctx context.Context, constituency string) (int64, error) {
	query := r.db.WithContext(ctx).
		Table("voters").
		Where("is_active = ? AND is_verified = ?", true, true)
	if strings.TrimSpace(constituency) != "" {
		query = query.Where("LOWER(constituency) = LOWER(?)", strings.TrimSpace(constituency))
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, r.logError("election_repo_eligible_count_failed", err, "constituency", constituency)
	}
	return count, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election-operations/election-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("election repository operation failed", fields...)
	return err
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type electionModel struct {
	ID           string `gorm:"column:id;primaryKey"`
	Title        string `gorm:"column:title"`
	Description  string `gorm:"column:description"`
	Type         string `gorm:"column:type;index"`
	Constituency string `gorm:"column:constituency;index"`
	State        string `gorm:"column:state"`

	RegistrationStart time.Time `gorm:"column:registration_start"`
	RegistrationEnd   time.Time `gorm:"column:registration_end"`
	VotingStart       time.Time `gorm:"column:voting_start"`
	VotingEnd         time.Time `gorm:"column:voting_end"`
	ResultDate        time.Time `gorm:"column:result_date"`

	Status string `gorm:"column:status;index"`

	TotalRegisteredVoters int64   `gorm:"column:total_registered_voters"`
	TotalVotesCast        int64   `gorm:"column:total_votes_cast"`
	CandidateCount        int64   `gorm:"column:candidate_count"`
	TurnoutPercentage     float64 `gorm:"column:turnout_percentage"`

	IsResultDeclared  bool       `gorm:"column:is_result_declared"`
	WinnerCandidateID string     `gorm:"column:winner_candidate_id"`
	ResultDeclaredAt  *time.Time `gorm:"column:result_declared_at"`

	CreatedBy string    `gorm:"column:created_by"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (electionModel) TableName() string { return "elections" }

func electionModelFromEntity(election entities.Election) electionModel {
	return electionModel{
		ID:                    election.ElectionID,
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

func (m electionModel) toEntity() entities.Election {
	return entities.Election{
		ElectionID:            m.ID,
		Title:                 m.Title,
		Description:           m.Description,
		Type:                  entities.ElectionType(m.Type),
		Constituency:          m.Constituency,
		State:                 m.State,
		RegistrationStart:     m.RegistrationStart,
		RegistrationEnd:       m.RegistrationEnd,
		VotingStart:           m.VotingStart,
		VotingEnd:             m.VotingEnd,
		ResultDate:            m.ResultDate,
		Status:                entities.Status(m.Status),
		TotalRegisteredVoters: m.TotalRegisteredVoters,
		TotalVotesCast:        m.TotalVotesCast,
		CandidateCount:        m.CandidateCount,
		TurnoutPercentage:     m.TurnoutPercentage,
		IsResultDeclared:      m.IsResultDeclared,
		WinnerCandidateID:     m.WinnerCandidateID,
		ResultDeclaredAt:      m.ResultDeclaredAt,
		CreatedBy:             m.CreatedBy,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}
