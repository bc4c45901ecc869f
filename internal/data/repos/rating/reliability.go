package rating

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/domain"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
)

type ReliabilityRepo interface {
	// GetByAssessor returns nil, nil when the assessor has no scored
	// history yet; callers fall back to the unknown-accuracy fraction.
	GetByAssessor(ctx context.Context, tx *gorm.DB, assessorID uuid.UUID) (*domain.AssessorReliability, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *domain.AssessorReliability) error
}

type reliabilityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReliabilityRepo(db *gorm.DB, baseLog *logger.Logger) ReliabilityRepo {
	return &reliabilityRepo{db: db, log: baseLog.With("repo", "ReliabilityRepo")}
}

func (r *reliabilityRepo) GetByAssessor(ctx context.Context, tx *gorm.DB, assessorID uuid.UUID) (*domain.AssessorReliability, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row domain.AssessorReliability
	err := t.WithContext(ctx).Where("assessor_id = ?", assessorID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *reliabilityRepo) Upsert(ctx context.Context, tx *gorm.DB, row *domain.AssessorReliability) error {
	t := tx
	if t == nil {
		t = r.db
	}
	var existing domain.AssessorReliability
	err := t.WithContext(ctx).Where("assessor_id = ?", row.AssessorID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return t.WithContext(ctx).Create(row).Error
	}
	if err != nil {
		return err
	}
	row.ID = existing.ID
	return t.WithContext(ctx).Save(row).Error
}
