package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/domain"
)

func SeedEmployer(tb testing.TB, ctx context.Context, tx *gorm.DB, name, role, ebaStatus string) *domain.Employer {
	tb.Helper()
	e := &domain.Employer{
		ID:        uuid.New(),
		Name:      name,
		Role:      role,
		EbaStatus: ebaStatus,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed employer: %v", err)
	}
	return e
}

func SeedAssessment(tb testing.TB, ctx context.Context, tx *gorm.DB, employerID uuid.UUID, track string, effective time.Time, components map[string]float64) *domain.TrackAssessment {
	tb.Helper()
	a := &domain.TrackAssessment{
		ID:             uuid.New(),
		EmployerID:     employerID,
		Track:          track,
		EffectiveDate:  effective,
		AssessorID:     uuid.New(),
		Method:         "site_visit",
		ConfidenceHint: "medium",
	}
	for key, score := range components {
		a.Components = append(a.Components, domain.AssessmentComponent{
			ID:           uuid.New(),
			AssessmentID: a.ID,
			ComponentKey: key,
			Score:        score,
		})
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed assessment: %v", err)
	}
	return a
}

func SeedWeightProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, track, role, name string, version int, isDefault bool, weights map[string]float64) *domain.WeightProfile {
	tb.Helper()
	p := &domain.WeightProfile{
		ID:        uuid.New(),
		Name:      name,
		Track:     track,
		Role:      role,
		Version:   version,
		IsDefault: isDefault,
		Weights:   datatypes.NewJSONType(weights),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed weight profile: %v", err)
	}
	return p
}

func SeedFinalRating(tb testing.TB, ctx context.Context, tx *gorm.DB, employerID uuid.UUID, calcDate time.Time, rating, status string) *domain.FinalRating {
	tb.Helper()
	score := 3.0
	r := &domain.FinalRating{
		ID:                  uuid.New(),
		EmployerID:          employerID,
		CalculationDate:     calcDate,
		FinalScore:          &score,
		FinalRating:         rating,
		Method:              "weighted_average",
		ProjectRating:       rating,
		ProjectConfidence:   "medium",
		ExpertiseRating:     rating,
		ExpertiseConfidence: "medium",
		EbaStatus:           domain.EbaActive,
		GatingScore:         3.0,
		GatingMode:          "blend",
		WeightsUsed:         datatypes.NewJSONType(map[string]float64{"project": 0.6, "expertise": 0.4, "gating": 0.15}),
		DiscrepancyLevel:    "none",
		RatingsMatch:        true,
		OverallConfidence:   "medium",
		DataCompleteness:    100,
		Status:              status,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed final rating: %v", err)
	}
	return r
}

func PtrFloat(v float64) *float64 { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
