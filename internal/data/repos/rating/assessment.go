package rating

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/domain"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
)

type AssessmentRepo interface {
	// ListByEmployerTrack returns assessments effective on or before
	// asOf, newest first, with components preloaded.
	ListByEmployerTrack(ctx context.Context, tx *gorm.DB, employerID uuid.UUID, track string, asOf time.Time) ([]*domain.TrackAssessment, error)
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	return &assessmentRepo{db: db, log: baseLog.With("repo", "AssessmentRepo")}
}

func (r *assessmentRepo) ListByEmployerTrack(ctx context.Context, tx *gorm.DB, employerID uuid.UUID, track string, asOf time.Time) ([]*domain.TrackAssessment, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.TrackAssessment
	if employerID == uuid.Nil || track == "" {
		return out, nil
	}
	err := t.WithContext(ctx).
		Preload("Components").
		Where("employer_id = ? AND track = ? AND effective_date <= ?", employerID, track, asOf).
		Order("effective_date DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
