package rating

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/domain"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
)

type DiscrepancyAuditRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.DiscrepancyAudit) error
	ListByFinalRating(ctx context.Context, tx *gorm.DB, finalRatingID uuid.UUID) ([]*domain.DiscrepancyAudit, error)
}

type discrepancyAuditRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDiscrepancyAuditRepo(db *gorm.DB, baseLog *logger.Logger) DiscrepancyAuditRepo {
	return &discrepancyAuditRepo{db: db, log: baseLog.With("repo", "DiscrepancyAuditRepo")}
}

func (r *discrepancyAuditRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.DiscrepancyAudit) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Create(row).Error
}

func (r *discrepancyAuditRepo) ListByFinalRating(ctx context.Context, tx *gorm.DB, finalRatingID uuid.UUID) ([]*domain.DiscrepancyAudit, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.DiscrepancyAudit
	err := t.WithContext(ctx).
		Where("final_rating_id = ?", finalRatingID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
