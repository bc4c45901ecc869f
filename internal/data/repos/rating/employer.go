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

type EmployerRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Employer, error)
	ListIDs(ctx context.Context, tx *gorm.DB, role string, limit int) ([]uuid.UUID, error)
}

type employerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmployerRepo(db *gorm.DB, baseLog *logger.Logger) EmployerRepo {
	return &employerRepo{db: db, log: baseLog.With("repo", "EmployerRepo")}
}

func (r *employerRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Employer, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, apperrors.ErrNotFound
	}
	var row domain.Employer
	err := t.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *employerRepo) ListIDs(ctx context.Context, tx *gorm.DB, role string, limit int) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(ctx).Model(&domain.Employer{}).Order("created_at ASC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var ids []uuid.UUID
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
