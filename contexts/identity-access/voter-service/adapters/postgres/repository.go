package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"civica/contexts/identity-access/voter-service/domain/entities"
	domainerrors "civica/contexts/identity-access/voter-service/domain/errors"
	"civica/contexts/identity-access/voter-service/ports"
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
	return []any{&voterModel{}, &votingHistoryModel{}}
}

func (r *Repository) CreateVoter(ctx context.Context, voter entities.Voter) error {
	row := voterModelFromEntity(voter)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if field, ok := violatedUniqueField(err); ok {
			switch field {
			case "email":
				return domainerrors.ErrDuplicateEmail
			case "phone":
				return domainerrors.ErrDuplicatePhone
			default:
				return domainerrors.ErrDuplicateNationalID
			}
		}
		return r.logError("voter_repo_create_failed", err, "voter_id", voter.VoterID)
	}
	return nil
}

func (r *Repository) GetVoter(ctx context.Context, voterID string) (entities.Voter, error) {
	var row voterModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(voterID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voter{}, domainerrors.ErrVoterNotFound
		}
		return entities.Voter{}, r.logError("voter_repo_get_failed", err, "voter_id", strings.TrimSpace(voterID))
	}
	history, err := r.loadHistory(ctx, row.ID)
	if err != nil {
		return entities.Voter{}, err
	}
	return row.toEntity(history), nil
}

func (r *Repository) GetVoterByEmail(ctx context.Context, email string) (entities.Voter, bool, error) {
	return r.getByColumn(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
}

func (r *Repository) GetVoterByPhone(ctx context.Context, phone string) (entities.Voter, bool, error) {
	return r.getByColumn(ctx, "phone", strings.TrimSpace(phone))
}

func (r *Repository) UpdateLastLogin(ctx context.Context, voterID string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&voterModel{}).
		Where("id = ?", strings.TrimSpace(voterID)).
		Updates(map[string]any{
			"last_login_at": at.UTC(),
			"updated_at":    at.UTC(),
		})
	if result.Error != nil {
		return r.logError("voter_repo_update_last_login_failed", result.Error, "voter_id", strings.TrimSpace(voterID))
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrVoterNotFound
	}
	return nil
}

func (r *Repository) SetActive(ctx context.Context, voterID string, active bool, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&voterModel{}).
		Where("id = ?", strings.TrimSpace(voterID)).
		Updates(map[string]any{
			"is_active":  active,
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("voter_repo_set_active_failed", result.Error, "voter_id", strings.TrimSpace(voterID))
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrVoterNotFound
	}
	return nil
}

// DeleteVoter removes a voter row. The has_voted filter keeps accounts with
// recorded votes on file; such a delete reports ErrVoterHasVoted.
func (r *Repository) DeleteVoter(ctx context.Context, voterID string) error {
	id := strings.TrimSpace(voterID)
	result := r.db.WithContext(ctx).
		Where("id = ? AND has_voted = ?", id, false).
		Delete(&voterModel{})
	if result.Error != nil {
		return r.logError("voter_repo_delete_failed", result.Error, "voter_id", id)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&voterModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return r.logError("voter_repo_delete_failed", err, "voter_id", id)
		}
		if count > 0 {
			return domainerrors.ErrVoterHasVoted
		}
		return domainerrors.ErrVoterNotFound
	}
	return nil
}

func (r *Repository) CountVoters(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&voterModel{}).Count(&count).Error; err != nil {
		return 0, r.logError("voter_repo_count_failed", err)
	}
	return count, nil
}

func (r *Repository) getByColumn(ctx context.Context, column string, value string) (entities.Voter, bool, error) {
	var row voterModel
	err := r.db.WithContext(ctx).
		Where(column+" = ?", value).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voter{}, false, nil
		}
		return entities.Voter{}, false, r.logError("voter_repo_get_by_"+column+"_failed", err)
	}
	history, err := r.loadHistory(ctx, row.ID)
	if err != nil {
		return entities.Voter{}, false, err
	}
	return row.toEntity(history), true, nil
}

func (r *Repository) loadHistory(ctx context.Context, voterID string) ([]entities.VotingRecord, error) {
	var rows []votingHistoryModel
	if err := r.db.WithContext(ctx).
		Where("voter_id = ?", voterID).
		Order("voted_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voter_repo_load_history_failed", err, "voter_id", voterID)
	}
	history := make([]entities.VotingRecord, 0, len(rows))
	for _, row := range rows {
		history = append(history, entities.VotingRecord{
			ElectionID: row.ElectionID,
			VotedAt:    row.VotedAt,
		})
	}
	return history, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "identity-access/voter-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("voter repository operation failed", fields...)
	return err
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type voterModel struct {
	ID           string     `gorm:"column:id;primaryKey"`
	FullName     string     `gorm:"column:full_name"`
	Email        string     `gorm:"column:email;uniqueIndex:uq_voters_email"`
	Phone        string     `gorm:"column:phone;uniqueIndex:uq_voters_phone"`
	NationalID   string     `gorm:"column:national_id;uniqueIndex:uq_voters_national_id"`
	DateOfBirth  time.Time  `gorm:"column:date_of_birth"`
	Gender       string     `gorm:"column:gender"`
	AddressLine  string     `gorm:"column:address_line"`
	City         string     `gorm:"column:city"`
	State        string     `gorm:"column:state"`
	Constituency string     `gorm:"column:constituency"`
	PasswordHash string     `gorm:"column:password_hash"`
	HasVoted     bool       `gorm:"column:has_voted"`
	IsActive     bool       `gorm:"column:is_active"`
	IsVerified   bool       `gorm:"column:is_verified"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (voterModel) TableName() string { return "voters" }

type votingHistoryModel struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	VoterID    string    `gorm:"column:voter_id;uniqueIndex:uq_history_voter_election"`
	ElectionID string    `gorm:"column:election_id;uniqueIndex:uq_history_voter_election"`
	VotedAt    time.Time `gorm:"column:voted_at"`
}

func (votingHistoryModel) TableName() string { return "voter_voting_history" }

func voterModelFromEntity(voter entities.Voter) voterModel {
	return voterModel{
		ID:           voter.VoterID,
		FullName:     voter.FullName,
		Email:        voter.Email,
		Phone:        voter.Phone,
		NationalID:   voter.NationalID,
		DateOfBirth:  voter.DateOfBirth,
		Gender:       string(voter.Gender),
		AddressLine:  voter.AddressLine,
		City:         voter.City,
		State:        voter.State,
		Constituency: voter.Constituency,
		PasswordHash: voter.PasswordHash,
		HasVoted:     voter.HasVoted,
		IsActive:     voter.IsActive,
		IsVerified:   voter.IsVerified,
		LastLoginAt:  voter.LastLoginAt,
		CreatedAt:    voter.CreatedAt,
		UpdatedAt:    voter.UpdatedAt,
	}
}

func (m voterModel) toEntity(history []entities.VotingRecord) entities.Voter {
	return entities.Voter{
		VoterID:      m.ID,
		FullName:     m.FullName,
		Email:        m.Email,
		Phone:        m.Phone,
		NationalID:   m.NationalID,
		DateOfBirth:  m.DateOfBirth,
		Gender:       entities.Gender(m.Gender),
		AddressLine:  m.AddressLine,
		City:         m.City,
		State:        m.State,
		Constituency: m.Constituency,
		PasswordHash: m.PasswordHash,
		HasVoted:     m.HasVoted,
		History:      history,
		IsActive:     m.IsActive,
		IsVerified:   m.IsVerified,
		LastLoginAt:  m.LastLoginAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// violatedUniqueField maps a postgres duplicate-key error to the offending
// logical field via the constraint name.
func violatedUniqueField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return "", false
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return "email", true
	case strings.Contains(pgErr.ConstraintName, "phone"):
		return "phone", true
	default:
		return "national_id", true
	}
}

var _ ports.VoterRepository = (*Repository)(nil)
var _ ports.Clock = SystemClock{}
var _ ports.IDGenerator = UUIDGenerator{}
