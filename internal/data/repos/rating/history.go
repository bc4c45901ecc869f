package rating

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/domain"
	apperrors "github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/errors"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
)

type HistoryRepo interface {
	// Create appends a history entry; rows are never updated afterwards.
	Create(ctx context.Context, tx *gorm.DB, row *domain.RatingHistoryEntry) error
	GetLatestByEmployer(ctx context.Context, tx *gorm.DB, employerID uuid.UUID) (*domain.RatingHistoryEntry, error)
	ListByEmployer(ctx context.Context, tx *gorm.DB, employerID uuid.UUID, limit int) ([]*domain.RatingHistoryEntry, error)
	CountAnomaliesSince(ctx context.Context, tx *gorm.DB, since time.Time) (int64, error)
}

type historyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHistoryRepo(db *gorm.DB, baseLog *logger.Logger) HistoryRepo {
	return &historyRepo{db: db, log: baseLog.With("repo", "HistoryRepo")}
}

func (r *historyRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.RatingHistoryEntry) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Create(row).Error
}

func (r *historyRepo) GetLatestByEmployer(ctx context.Context, tx *gorm.DB, employerID uuid.UUID) (*domain.RatingHistoryEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row domain.RatingHistoryEntry
	err := t.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *historyRepo) ListByEmployer(ctx context.Context, tx *gorm.DB, employerID uuid.UUID, limit int) ([]*domain.RatingHistoryEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []*domain.RatingHistoryEntry
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *historyRepo) CountAnomaliesSince(ctx context.Context, tx *gorm.DB, since time.Time) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	err := t.WithContext(ctx).
		Model(&domain.RatingHistoryEntry{}).
		Where("anomaly = true AND created_at >= ?", since).
		Count(&n).Error
	return n, err
}
