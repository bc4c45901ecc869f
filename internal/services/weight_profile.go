package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/data/repos/rating"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/domain"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/engine"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
)

var validTracks = map[string]struct{}{
	domain.TrackProject:   {},
	domain.TrackExpertise: {},
}

var validRoles = map[string]struct{}{
	domain.RoleBuilder:         {},
	domain.RoleTradeContractor: {},
}

// UpsertWeightProfileInput creates a new version of a named profile.
type UpsertWeightProfileInput struct {
	Track      string
	Role       string
	Name       string
	Weights    map[string]float64
	SetDefault bool
}

type WeightProfileService interface {
	// Upsert validates the weights (sum to 1.0, non-negative) and writes a
	// new version row; existing versions are never mutated. SetDefault
	// atomically moves the single default flag of the (track, role) pair.
	Upsert(ctx context.Context, in UpsertWeightProfileInput) (*domain.WeightProfile, error)
	GetDefault(ctx context.Context, track, role string) (*domain.WeightProfile, error)
	List(ctx context.Context, track, role string) ([]*domain.WeightProfile, error)
}

type weightProfileService struct {
	db  *gorm.DB
	log *logger.Logger

	profileRepo rating.WeightProfileRepo
}

func NewWeightProfileService(db *gorm.DB, log *logger.Logger, profileRepo rating.WeightProfileRepo) WeightProfileService {
	return &weightProfileService{
		db:          db,
		log:         log.With("service", "WeightProfileService"),
		profileRepo: profileRepo,
	}
}

func (s *weightProfileService) Upsert(ctx context.Context, in UpsertWeightProfileInput) (*domain.WeightProfile, error) {
	if _, ok := validTracks[in.Track]; !ok {
		return nil, &engine.ValidationError{Field: "track", Reason: "unknown track " + in.Track}
	}
	if _, ok := validRoles[in.Role]; !ok {
		return nil, &engine.ValidationError{Field: "role", Reason: "unknown role " + in.Role}
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, &engine.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if err := engine.ValidateProfileWeights(in.Weights); err != nil {
		return nil, err
	}

	row := &domain.WeightProfile{
		ID:        uuid.New(),
		Name:      in.Name,
		Track:     in.Track,
		Role:      in.Role,
		IsDefault: in.SetDefault,
		Weights:   datatypes.NewJSONType(in.Weights),
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		version, err := s.profileRepo.LatestVersion(ctx, tx, in.Track, in.Role, in.Name)
		if err != nil {
			return fmt.Errorf("resolve profile version: %w", err)
		}
		row.Version = version + 1

		if in.SetDefault {
			if err := s.profileRepo.ClearDefault(ctx, tx, in.Track, in.Role); err != nil {
				return fmt.Errorf("clear default flag: %w", err)
			}
		}
		if err := s.profileRepo.Create(ctx, tx, row); err != nil {
			return fmt.Errorf("create profile version: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.log.Info("weight profile written",
		"track", row.Track,
		"role", row.Role,
		"name", row.Name,
		"version", row.Version,
		"default", row.IsDefault)
	return row, nil
}

func (s *weightProfileService) GetDefault(ctx context.Context, track, role string) (*domain.WeightProfile, error) {
	return s.profileRepo.GetDefault(ctx, nil, track, role)
}

func (s *weightProfileService) List(ctx context.Context, track, role string) ([]*domain.WeightProfile, error) {
	return s.profileRepo.List(ctx, nil, track, role)
}
