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

	"civica/contexts/voting-core/vote-ledger/domain/entities"
	domainerrors "civica/contexts/voting-core/vote-ledger/domain/errors"
	"civica/contexts/voting-core/vote-ledger/ports"
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
	return []any{&voteModel{}, &voteAuditModel{}, &voteOutboxModel{}}
}

// CastVote performs the whole cast as one transaction: the constrained vote
// insert first, then every counter side effect, then the outbox append.
// If the transaction aborts, nothing happened; the unique indexes decide
// races, not this code.
func (r *Repository) CastVote(ctx context.Context, vote entities.Vote, event ports.OutboxMessage) error {
	row := voteModelFromEntity(vote)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return translateUniqueViolation(err)
		}
		if err := tx.Table("candidates").
			Where("id = ?", vote.CandidateID).
			UpdateColumn("vote_count", gorm.Expr("vote_count + 1")).
			Error; err != nil {
			return err
		}
		if err := tx.Table("voters").
			Where("id = ?", vote.VoterID).
			Updates(map[string]any{
				"has_voted":  true,
				"updated_at": vote.CastAt,
			}).Error; err != nil {
			return err
		}
		if err := tx.Table("voter_voting_history").
			Create(map[string]any{
				"voter_id":    vote.VoterID,
				"election_id": vote.ElectionID,
				"voted_at":    vote.CastAt,
			}).Error; err != nil {
			return translateUniqueViolation(err)
		}
		if err := tx.Table("elections").
			Where("id = ?", vote.ElectionID).
			Updates(map[string]any{
				"total_votes_cast": gorm.Expr("total_votes_cast + 1"),
				"turnout_percentage": gorm.Expr(
					"COALESCE(LEAST(100, (total_votes_cast + 1) * 100.0 / NULLIF(total_registered_voters, 0)), 0)",
				),
				"updated_at": vote.CastAt,
			}).Error; err != nil {
			return err
		}
		return tx.Create(&voteOutboxModel{
			ID:         event.ID,
			EventType:  event.EventType,
			Payload:    event.Payload,
			Status:     event.Status,
			RetryCount: event.RetryCount,
			CreatedAt:  vote.CastAt,
		}).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyVoted) || errors.Is(err, domainerrors.ErrCodeCollision) {
			return err
		}
		return r.logError("vote_repo_cast_failed", err, "vote_id", vote.VoteID, "election_id", vote.ElectionID)
	}
	return nil
}

func (r *Repository) HasVoted(ctx context.Context, voterID string, electionID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&voteModel{}).
		Where("voter_id = ? AND election_id = ?", strings.TrimSpace(voterID), strings.TrimSpace(electionID)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("vote_repo_has_voted_failed", err, "election_id", strings.TrimSpace(electionID))
	}
	return count > 0, nil
}

func (r *Repository) GetVote(ctx context.Context, voteID string) (entities.Vote, error) {
	return r.getByColumn(ctx, "id", strings.TrimSpace(voteID))
}

func (r *Repository) GetVoteByCode(ctx context.Context, verificationCode string) (entities.Vote, error) {
	return r.getByColumn(ctx, "verification_code", strings.TrimSpace(verificationCode))
}

func (r *Repository) getByColumn(ctx context.Context, column string, value string) (entities.Vote, error) {
	var row voteModel
	err := r.db.WithContext(ctx).
		Where(column+" = ?", value).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Vote{}, domainerrors.ErrVoteNotFound
		}
		return entities.Vote{}, r.logError("vote_repo_get_by_"+column+"_failed", err)
	}
	auditLog, err := r.loadAudit(ctx, row.ID)
	if err != nil {
		return entities.Vote{}, err
	}
	return row.toEntity(auditLog), nil
}

func (r *Repository) ListVotes(ctx context.Context, filter ports.ListFilter) ([]entities.Vote, int64, error) {
	query := r.db.WithContext(ctx).Model(&voteModel{})
	if filter.ElectionID != "" {
		query = query.Where("election_id = ?", strings.TrimSpace(filter.ElectionID))
	}
	if filter.CandidateID != "" {
		query = query.Where("candidate_id = ?", strings.TrimSpace(filter.CandidateID))
	}
	if filter.VoterID != "" {
		query = query.Where("voter_id = ?", strings.TrimSpace(filter.VoterID))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, r.logError("vote_repo_count_failed", err)
	}

	var rows []voteModel
	err := query.
		Order("cast_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, r.logError("vote_repo_list_failed", err)
	}

	votes := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		votes = append(votes, row.toEntity(nil))
	}
	return votes, total, nil
}

func (r *Repository) ListVoterVotes(ctx context.Context, voterID string) ([]entities.Vote, error) {
	var rows []voteModel
	err := r.db.WithContext(ctx).
		Where("voter_id = ?", strings.TrimSpace(voterID)).
		Order("cast_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("vote_repo_list_voter_failed", err)
	}
	votes := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		votes = append(votes, row.toEntity(nil))
	}
	return votes, nil
}

// SaveVoteStatus persists the status change and appends the newest audit
// entry. Earlier entries are already stored; only the tail is new.
func (r *Repository) SaveVoteStatus(ctx context.Context, vote entities.Vote) error {
	if len(vote.AuditLog) == 0 {
		return domainerrors.ErrInvalidStatusChange
	}
	latest := vote.AuditLog[len(vote.AuditLog)-1]
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&voteModel{}).
			Where("id = ?", vote.VoteID).
			Updates(map[string]any{
				"status":     string(vote.Status),
				"updated_at": vote.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrVoteNotFound
		}
		return tx.Create(&voteAuditModel{
			VoteID:     vote.VoteID,
			FromStatus: string(latest.FromStatus),
			ToStatus:   string(latest.ToStatus),
			Reason:     latest.Reason,
			ChangedBy:  latest.ChangedBy,
			ChangedAt:  latest.ChangedAt,
		}).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrVoteNotFound) {
			return err
		}
		return r.logError("vote_repo_save_status_failed", err, "vote_id", vote.VoteID)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []voteOutboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", "pending").
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("vote_repo_outbox_list_failed", err)
	}
	messages := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, ports.OutboxMessage{
			ID:         row.ID,
			EventType:  row.EventType,
			Payload:    row.Payload,
			Status:     row.Status,
			RetryCount: row.RetryCount,
		})
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	return r.setOutboxStatus(ctx, outboxID, "published", publishedAt)
}

func (r *Repository) MarkOutboxFailed(ctx context.Context, outboxID string, failedAt time.Time) error {
	err := r.db.WithContext(ctx).Model(&voteOutboxModel{}).
		Where("id = ?", outboxID).
		Updates(map[string]any{
			"status":      "failed",
			"retry_count": gorm.Expr("retry_count + 1"),
			"updated_at":  failedAt.UTC(),
		}).Error
	if err != nil {
		return r.logError("vote_repo_outbox_mark_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func (r *Repository) setOutboxStatus(ctx context.Context, outboxID string, status string, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&voteOutboxModel{}).
		Where("id = ?", outboxID).
		Updates(map[string]any{
			"status":       status,
			"published_at": at.UTC(),
			"updated_at":   at.UTC(),
		}).Error
	if err != nil {
		return r.logError("vote_repo_outbox_mark_published_failed", err, "outbox_id", outboxID)
	}
	return nil
}

// Projection reads over tables owned by other modules.

func (r *Repository) GetElectionProjection(ctx context.Context, electionID string) (ports.ElectionProjection, bool, error) {
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
			return ports.ElectionProjection{}, false, nil
		}
		return ports.ElectionProjection{}, false, r.logError("vote_repo_election_read_failed", err)
	}
	return ports.ElectionProjection{
		ElectionID:  row.ID,
		Status:      row.Status,
		VotingStart: row.VotingStart,
		VotingEnd:   row.VotingEnd,
	}, true, nil
}

func (r *Repository) GetCandidateProjection(ctx context.Context, candidateID string) (ports.CandidateProjection, bool, error) {
	var row struct {
		ID         string `gorm:"column:id"`
		ElectionID string `gorm:"column:election_id"`
		FullName   string `gorm:"column:full_name"`
		Party      string `gorm:"column:party"`
		Status     string `gorm:"column:status"`
		IsActive   bool   `gorm:"column:is_active"`
	}
	err := r.db.WithContext(ctx).
		Table("candidates").
		Select("id, election_id, full_name, party, status, is_active").
		Where("id = ?", strings.TrimSpace(candidateID)).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CandidateProjection{}, false, nil
		}
		return ports.CandidateProjection{}, false, r.logError("vote_repo_candidate_read_failed", err)
	}
	return ports.CandidateProjection{
		CandidateID: row.ID,
		ElectionID:  row.ElectionID,
		FullName:    row.FullName,
		Party:       row.Party,
		Status:      row.Status,
		IsActive:    row.IsActive,
	}, true, nil
}

func (r *Repository) GetVoterProjection(ctx context.Context, voterID string) (ports.VoterProjection, bool, error) {
	var row struct {
		ID         string `gorm:"column:id"`
		IsActive   bool   `gorm:"column:is_active"`
		IsVerified bool   `gorm:"column:is_verified"`
	}
	err := r.db.WithContext(ctx).
		Table("voters").
		Select("id, is_active, is_verified").
		Where("id = ?", strings.TrimSpace(voterID)).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.VoterProjection{}, false, nil
		}
		return ports.VoterProjection{}, false, r.logError("vote_repo_voter_read_failed", err)
	}
	return ports.VoterProjection{
		VoterID:    row.ID,
		IsActive:   row.IsActive,
		IsVerified: row.IsVerified,
	}, true, nil
}

func (r *Repository) loadAudit(ctx context.Context, voteID string) ([]entities.AuditEntry, error) {
	var rows []voteAuditModel
	if err := r.db.WithContext(ctx).
		Where("vote_id = ?", voteID).
		Order("changed_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("vote_repo_load_audit_failed", err, "vote_id", voteID)
	}
	auditLog := make([]entities.AuditEntry, 0, len(rows))
	for _, row := range rows {
		auditLog = append(auditLog, entities.AuditEntry{
			FromStatus: entities.Status(row.FromStatus),
			ToStatus:   entities.Status(row.ToStatus),
			Reason:     row.Reason,
			ChangedBy:  row.ChangedBy,
			ChangedAt:  row.ChangedAt,
		})
	}
	return auditLog, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "voting-core/vote-ledger",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("vote repository operation failed", fields...)
	return err
}

// translateUniqueViolation maps a postgres duplicate-key error onto the
// ledger's conflict sentinels by constraint name.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	if strings.Contains(pgErr.ConstraintName, "verification_code") {
		return domainerrors.ErrCodeCollision
	}
	return domainerrors.ErrAlreadyVoted
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type voteModel struct {
	ID          string `gorm:"column:id;primaryKey"`
	VoterID     string `gorm:"column:voter_id;uniqueIndex:uq_votes_voter_election"`
	ElectionID  string `gorm:"column:election_id;uniqueIndex:uq_votes_voter_election;index"`
	CandidateID string `gorm:"column:candidate_id;index"`

	VoteHash         string `gorm:"column:vote_hash"`
	VoterHash        string `gorm:"column:voter_hash"`
	VerificationCode string `gorm:"column:verification_code;uniqueIndex:uq_votes_verification_code"`

	Status string `gorm:"column:status;index"`

	CastAt    time.Time `gorm:"column:cast_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (voteModel) TableName() string { return "votes" }

type voteAuditModel struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	VoteID     string    `gorm:"column:vote_id;index"`
	FromStatus string    `gorm:"column:from_status"`
	ToStatus   string    `gorm:"column:to_status"`
	Reason     string    `gorm:"column:reason"`
	ChangedBy  string    `gorm:"column:changed_by"`
	ChangedAt  time.Time `gorm:"column:changed_at"`
}

func (voteAuditModel) TableName() string { return "vote_audit" }

type voteOutboxModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status;index"`
	RetryCount  int        `gorm:"column:retry_count"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (voteOutboxModel) TableName() string { return "vote_outbox" }

func voteModelFromEntity(vote entities.Vote) voteModel {
	return voteModel{
		ID:               vote.VoteID,
		VoterID:          vote.VoterID,
		ElectionID:       vote.ElectionID,
		CandidateID:      vote.CandidateID,
		VoteHash:         vote.VoteHash,
		VoterHash:        vote.VoterHash,
		VerificationCode: vote.VerificationCode,
		Status:           string(vote.Status),
		CastAt:           vote.CastAt,
		UpdatedAt:        vote.UpdatedAt,
	}
}

func (m voteModel) toEntity(auditLog []entities.AuditEntry) entities.Vote {
	return entities.Vote{
		VoteID:           m.ID,
		VoterID:          m.VoterID,
		ElectionID:       m.ElectionID,
		CandidateID:      m.CandidateID,
		VoteHash:         m.VoteHash,
		VoterHash:        m.VoterHash,
		VerificationCode: m.VerificationCode,
		Status:           entities.Status(m.Status),
		AuditLog:         auditLog,
		CastAt:           m.CastAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

var _ ports.VoteRepository = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
var _ ports.ProjectionReader = (*Repository)(nil)
var _ ports.Clock = SystemClock{}
var _ ports.IDGenerator = UUIDGenerator{}
