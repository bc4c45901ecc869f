package rating

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/domain"
	apperrors "github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/errors"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
)

type DisputeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.DisputeRecord) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.DisputeRecord, error)
	Update(ctx context.Context, tx *gorm.DB, row *domain.DisputeRecord) error
	ListByEmployer(ctx context.Context, tx *gorm.DB, employerID uuid.UUID) ([]*domain.DisputeRecord, error)
	CountOpen(ctx context.Context, tx *gorm.DB) (int64, error)
}

type disputeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDisputeRepo(db *gorm.DB, baseLog *logger.Logger) DisputeRepo {
	return &disputeRepo{db: db, log: baseLog.With("repo", "DisputeRepo")}
}

func (r *disputeRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.DisputeRecord) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Create(row).Error
}

func (r *disputeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.DisputeRecord, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row domain.DisputeRecord
	err := t.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *disputeRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.DisputeRecord) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Save(row).Error
}

func (r *disputeRepo) ListByEmployer(ctx context.Context, tx *gorm.DB, employerID uuid.UUID) ([]*domain.DisputeRecord, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.DisputeRecord
	err := t.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *disputeRepo) CountOpen(ctx context.Context, tx *gorm.DB) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	err := t.WithContext(ctx).
		Model(&domain.DisputeRecord{}).
		Where("status NOT IN ?", []string{domain.DisputeResolved, domain.DisputeRejected, domain.DisputeEscalated}).
		Count(&n).Error
	return n, err
}
