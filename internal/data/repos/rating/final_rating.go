package rating

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/domain"
	apperrors "github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/errors"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
)

type FinalRatingRepo interface {
	// Upsert writes one rating row per (employer, calculation date);
	// concurrent runs for the same date resolve last-committed-wins.
	Upsert(ctx context.Context, tx *gorm.DB, row *domain.FinalRating) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.FinalRating, error)
	// GetCurrent returns the newest active, non-expired rating.
	GetCurrent(ctx context.Context, tx *gorm.DB, employerID uuid.UUID, now time.Time) (*domain.FinalRating, error)
	// GetLatest returns the newest rating row regardless of status.
	GetLatest(ctx context.Context, tx *gorm.DB, employerID uuid.UUID) (*domain.FinalRating, error)
	// SupersedeActive moves every active or disputed rating of the
	// employer except the given row to superseded. Disputed rows are
	// included so a newer calculation always closes out the old one.
	SupersedeActive(ctx context.Context, tx *gorm.DB, employerID, exceptID uuid.UUID) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error
	ActiveStats(ctx context.Context, tx *gorm.DB) (*ActiveRatingStats, error)
}

// ActiveRatingStats is the system-wide rollup over active ratings.
type ActiveRatingStats struct {
	Total           int64
	CountByRating   map[string]int64
	AvgCompleteness float64
	RequiresReview  int64
}

type finalRatingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFinalRatingRepo(db *gorm.DB, baseLog *logger.Logger) FinalRatingRepo {
	return &finalRatingRepo{db: db, log: baseLog.With("repo", "FinalRatingRepo")}
}

func (r *finalRatingRepo) Upsert(ctx context.Context, tx *gorm.DB, row *domain.FinalRating) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employer_id"}, {Name: "calculation_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"final_score", "final_rating", "method",
				"project_score", "project_rating", "project_confidence", "project_assessments",
				"expertise_score", "expertise_rating", "expertise_confidence", "expertise_assessments",
				"eba_status", "gating_score", "gating_mode", "weights_used",
				"discrepancy_level", "score_difference", "ratings_match", "requires_review",
				"overall_confidence", "data_completeness",
				"status", "review_due_at", "expires_at", "updated_at",
			}),
		}).
		Create(row).Error
}

func (r *finalRatingRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.FinalRating, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row domain.FinalRating
	err := t.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *finalRatingRepo) GetCurrent(ctx context.Context, tx *gorm.DB, employerID uuid.UUID, now time.Time) (*domain.FinalRating, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row domain.FinalRating
	err := t.WithContext(ctx).
		Where("employer_id = ? AND status = ?", employerID, domain.RatingStatusActive).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("calculation_date DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *finalRatingRepo) GetLatest(ctx context.Context, tx *gorm.DB, employerID uuid.UUID) (*domain.FinalRating, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row domain.FinalRating
	err := t.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("calculation_date DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *finalRatingRepo) SupersedeActive(ctx context.Context, tx *gorm.DB, employerID, exceptID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).
		Model(&domain.FinalRating{}).
		Where("employer_id = ? AND status IN ? AND id <> ?",
			employerID, []string{domain.RatingStatusActive, domain.RatingStatusDisputed}, exceptID).
		Update("status", domain.RatingStatusSuperseded).Error
}

func (r *finalRatingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).
		Model(&domain.FinalRating{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *finalRatingRepo) ActiveStats(ctx context.Context, tx *gorm.DB) (*ActiveRatingStats, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	stats := &ActiveRatingStats{CountByRating: map[string]int64{}}

	type ratingCount struct {
		FinalRating string
		N           int64
	}
	var counts []ratingCount
	err := t.WithContext(ctx).
		Model(&domain.FinalRating{}).
		Where("status = ?", domain.RatingStatusActive).
		Select("final_rating, COUNT(*) AS n").
		Group("final_rating").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		stats.CountByRating[c.FinalRating] = c.N
		stats.Total += c.N
	}

	if stats.Total > 0 {
		err = t.WithContext(ctx).
			Model(&domain.FinalRating{}).
			Where("status = ?", domain.RatingStatusActive).
			Select("AVG(data_completeness)").
			Scan(&stats.AvgCompleteness).Error
		if err != nil {
			return nil, err
		}
		err = t.WithContext(ctx).
			Model(&domain.FinalRating{}).
			Where("status = ? AND requires_review = true", domain.RatingStatusActive).
			Count(&stats.RequiresReview).Error
		if err != nil {
			return nil, err
		}
	}
	return stats, nil
}
