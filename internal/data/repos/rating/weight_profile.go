package rating

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/domain"
	apperrors "github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/errors"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
)

type WeightProfileRepo interface {
	GetDefault(ctx context.Context, tx *gorm.DB, track, role string) (*domain.WeightProfile, error)
	List(ctx context.Context, tx *gorm.DB, track, role string) ([]*domain.WeightProfile, error)
	// LatestVersion returns 0 when no profile with the name exists yet.
	LatestVersion(ctx context.Context, tx *gorm.DB, track, role, name string) (int, error)
	Create(ctx context.Context, tx *gorm.DB, row *domain.WeightProfile) error
	// ClearDefault drops the default flag from every profile of the
	// (track, role) pair, so the single-default invariant holds before a
	// new default is written.
	ClearDefault(ctx context.Context, tx *gorm.DB, track, role string) error
}

type weightProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeightProfileRepo(db *gorm.DB, baseLog *logger.Logger) WeightProfileRepo {
	return &weightProfileRepo{db: db, log: baseLog.With("repo", "WeightProfileRepo")}
}

func (r *weightProfileRepo) GetDefault(ctx context.Context, tx *gorm.DB, track, role string) (*domain.WeightProfile, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row domain.WeightProfile
	err := t.WithContext(ctx).
		Where("track = ? AND role = ? AND is_default = true", track, role).
		Order("version DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *weightProfileRepo) List(ctx context.Context, tx *gorm.DB, track, role string) ([]*domain.WeightProfile, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(ctx).Order("track ASC, role ASC, name ASC, version DESC")
	if track != "" {
		q = q.Where("track = ?", track)
	}
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var out []*domain.WeightProfile
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *weightProfileRepo) LatestVersion(ctx context.Context, tx *gorm.DB, track, role, name string) (int, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var version int
	err := t.WithContext(ctx).
		Model(&domain.WeightProfile{}).
		Where("track = ? AND role = ? AND name = ?", track, role, name).
		Select("COALESCE(MAX(version), 0)").
		Scan(&version).Error
	if err != nil {
		return 0, err
	}
	return version, nil
}

func (r *weightProfileRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.WeightProfile) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Create(row).Error
}

func (r *weightProfileRepo) ClearDefault(ctx context.Context, tx *gorm.DB, track, role string) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).
		Model(&domain.WeightProfile{}).
		Where("track = ? AND role = ? AND is_default = true", track, role).
		Update("is_default", false).Error
}
