package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"civica/contexts/election-operations/candidate-service/domain/entities"
	domainerrors "civica/contexts/election-operations/candidate-service/domain/errors"
	"civica/contexts/election-operations/candidate-service/ports"
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
	return []any{&candidateModel{}}
}

// CreateCandidate inserts the row and bumps the owning election's candidate
// counter in the same transaction.
func (r *Repository) CreateCandidate(ctx context.Context, candidate entities.Candidate) error {
	row := candidateModelFromEntity(candidate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return tx.Table("elections").
			Where("id = ?", candidate.ElectionID).
			UpdateColumn("candidate_count", gorm.Expr("candidate_count + 1")).
			Error
	})
	if err != nil {
		return r.logError("candidate_repo_create_failed", err, "candidate_id", candidate.CandidateID)
	}
	return nil
}

func (r *Repository) GetCandidate(ctx context.Context, candidateID string) (entities.Candidate, error) {
	var row candidateModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(candidateID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Candidate{}, domainerrors.ErrCandidateNotFound
		}
		return entities.Candidate{}, r.logError("candidate_repo_get_failed", err, "candidate_id", strings.TrimSpace(candidateID))
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCandidates(ctx context.Context, filter ports.ListFilter) ([]entities.Candidate, int64, error) {
	query := r.db.WithContext(ctx).Model(&candidateModel{})
	if filter.ElectionID != "" {
		query = query.Where("election_id = ?", strings.TrimSpace(filter.ElectionID))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Party != "" {
		query = query.Where("LOWER(party) = LOWER(?)", strings.TrimSpace(filter.Party))
	}
	if filter.VotableOnly {
		query = query.Where("status = ? AND is_active", string(entities.StatusApproved))
	}
	if filter.Search != "" {
		needle := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(party) LIKE ?", needle, needle)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, r.logError("candidate_repo_count_failed", err)
	}

	var rows []candidateModel
	err := query.
		Order("nominated_at ASC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, r.logError("candidate_repo_list_failed", err)
	}

	candidates := make([]entities.Candidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, row.toEntity())
	}
	return candidates, total, nil
}

func (r *Repository) SaveCandidate(ctx context.Context, candidate entities.Candidate) error {
	row := candidateModelFromEntity(candidate)
	result := r.db.WithContext(ctx).Model(&candidateModel{}).
		Where("id = ?", candidate.CandidateID).
		Select("*").
		Omit("id", "created_at").
		Updates(&row)
	if result.Error != nil {
		return r.logError("candidate_repo_save_failed", result.Error, "candidate_id", candidate.CandidateID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCandidateNotFound
	}
	return nil
}

// DeleteCandidate removes the row and decrements the owning election's
// candidate counter in the same transaction.
func (r *Repository) DeleteCandidate(ctx context.Context, candidateID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row candidateModel
		if err := tx.Where("id = ?", strings.TrimSpace(candidateID)).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrCandidateNotFound
			}
			return err
		}
		if err := tx.Delete(&candidateModel{}, "id = ?", row.ID).Error; err != nil {
			return err
		}
		return tx.Table("elections").
			Where("id = ? AND candidate_count > 0", row.ElectionID).
			UpdateColumn("candidate_count", gorm.Expr("candidate_count - 1")).
			Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrCandidateNotFound) {
			return err
		}
		return r.logError("candidate_repo_delete_failed", err, "candidate_id", strings.TrimSpace(candidateID))
	}
	return nil
}

// GetElectionSchedule reads the owning-election projection from the shared
// elections table.
func (r *Repository) GetElectionSchedule(ctx context.Context, electionID string) (ports.ElectionSchedule, bool, error) {
	var row struct {
		ID          string    `gorm:"column:id"`
		Status      string    `gorm:"column:status"`
		VotingStart time.Time `gorm:"column:voting_start"`
		VotingEnd   time.Time `gorm:"column:voting_end"`
	}
	err := r.db.WithContext(ctx).
		Table("elections").
		Select("id, status, voting_start, voting_end").
		Where("id = ?", strings.TrimSpace(electionID)).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ElectionSchedule{}, false, nil
		}
		return ports.ElectionSchedule{}, false, r.logError("candidate_repo_election_read_failed", err, "election_id", strings.TrimSpace(electionID))
	}
	return ports.ElectionSchedule{
		ElectionID:  row.ID,
		Status:      row.Status,
		VotingStart: row.VotingStart,
		VotingEnd:   row.VotingEnd,
	}, true, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election-operations/candidate-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("candidate repository operation failed", fields...)
	return err
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type candidateModel struct {
	ID         string `gorm:"column:id;primaryKey"`
	ElectionID string `gorm:"column:election_id;index"`

	FullName     string `gorm:"column:full_name"`
	Party        string `gorm:"column:party"`
	PartySymbol  string `gorm:"column:party_symbol"`
	Constituency string `gorm:"column:constituency"`
	Manifesto    string `gorm:"column:manifesto"`
	PhotoURL     string `gorm:"column:photo_url"`

	Status          string `gorm:"column:status;index"`
	RejectionReason string `gorm:"column:rejection_reason"`
	IsActive        bool   `gorm:"column:is_active"`
	VoteCount       int64  `gorm:"column:vote_count"`

	NominatedBy string     `gorm:"column:nominated_by"`
	NominatedAt time.Time  `gorm:"column:nominated_at"`
	ApprovedBy  string     `gorm:"column:approved_by"`
	ApprovedAt  *time.Time `gorm:"column:approved_at"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (candidateModel) TableName() string { return "candidates" }

func candidateModelFromEntity(candidate entities.Candidate) candidateModel {
	return candidateModel{
		ID:              candidate.CandidateID,
		ElectionID:      candidate.ElectionID,
		FullName:        candidate.FullName,
		Party:           candidate.Party,
		PartySymbol:     candidate.PartySymbol,
		Constituency:    candidate.Constituency,
		Manifesto:       candidate.Manifesto,
		PhotoURL:        candidate.PhotoURL,
		Status:          string(candidate.Status),
		RejectionReason: candidate.RejectionReason,
		IsActive:        candidate.IsActive,
		VoteCount:       candidate.VoteCount,
		NominatedBy:     candidate.NominatedBy,
		NominatedAt:     candidate.NominatedAt,
		ApprovedBy:      candidate.ApprovedBy,
		ApprovedAt:      candidate.ApprovedAt,
		CreatedAt:       candidate.CreatedAt,
		UpdatedAt:       candidate.UpdatedAt,
	}
}

func (m candidateModel) toEntity() entities.Candidate {
	return entities.Candidate{
		CandidateID:     m.ID,
		ElectionID:      m.ElectionID,
		FullName:        m.FullName,
		Party:           m.Party,
		PartySymbol:     m.PartySymbol,
		Constituency:    m.Constituency,
		Manifesto:       m.Manifesto,
		PhotoURL:        m.PhotoURL,
		Status:          entities.Status(m.Status),
		RejectionReason: m.RejectionReason,
		IsActive:        m.IsActive,
		VoteCount:       m.VoteCount,
		NominatedBy:     m.NominatedBy,
		NominatedAt:     m.NominatedAt,
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
