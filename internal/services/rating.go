package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/data/repos/rating"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/domain"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/engine"
	apperrors "github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/errors"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
)

// CalculateOptions tunes one calculation run. Zero values fall back to the
// engine config defaults.
type CalculateOptions struct {
	AsOf       time.Time
	Method     string
	GatingMode string
	// Weights overrides the configured track weights for this run. The
	// override is validated and recorded in the rating's weights_used.
	Weights *engine.TrackWeights
	// DisputeDriven marks the resulting history entry, used when a resolved
	// dispute forces a recalculation.
	DisputeDriven bool
}

type RatingService interface {
	// CalculateFinalRating runs the full pipeline for one employer and
	// persists the outcome: FinalRating upsert, discrepancy audit, history
	// entry and supersession of prior active ratings, all in one
	// transaction. Identical inputs produce an identical stored rating.
	CalculateFinalRating(ctx context.Context, employerID uuid.UUID, opts CalculateOptions) (*domain.FinalRating, error)
	// GetCurrentRating returns the latest active, non-expired rating,
	// calculating one on the spot when none exists.
	GetCurrentRating(ctx context.Context, employerID uuid.UUID) (*domain.FinalRating, error)
	GetRatingHistory(ctx context.Context, employerID uuid.UUID, limit int) ([]*domain.RatingHistoryEntry, error)
}

type ratingService struct {
	db  *gorm.DB
	log *logger.Logger
	cfg engine.Config

	employerRepo    rating.EmployerRepo
	assessmentRepo  rating.AssessmentRepo
	profileRepo     rating.WeightProfileRepo
	reliabilityRepo rating.ReliabilityRepo
	finalRepo       rating.FinalRatingRepo
	discrepancyRepo rating.DiscrepancyAuditRepo
	historyRepo     rating.HistoryRepo
	quality         QualityService
}

func NewRatingService(
	db *gorm.DB,
	log *logger.Logger,
	cfg engine.Config,
	employerRepo rating.EmployerRepo,
	assessmentRepo rating.AssessmentRepo,
	profileRepo rating.WeightProfileRepo,
	reliabilityRepo rating.ReliabilityRepo,
	finalRepo rating.FinalRatingRepo,
	discrepancyRepo rating.DiscrepancyAuditRepo,
	historyRepo rating.HistoryRepo,
	quality QualityService,
) RatingService {
	return &ratingService{
		db:              db,
		log:             log.With("service", "RatingService"),
		cfg:             cfg,
		employerRepo:    employerRepo,
		assessmentRepo:  assessmentRepo,
		profileRepo:     profileRepo,
		reliabilityRepo: reliabilityRepo,
		finalRepo:       finalRepo,
		discrepancyRepo: discrepancyRepo,
		historyRepo:     historyRepo,
		quality:         quality,
	}
}

func (s *ratingService) CalculateFinalRating(ctx context.Context, employerID uuid.UUID, opts CalculateOptions) (*domain.FinalRating, error) {
	employer, err := s.employerRepo.GetByID(ctx, nil, employerID)
	if err != nil {
		return nil, err
	}

	asOf := opts.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	asOf = asOf.UTC()

	methodName := opts.Method
	if methodName == "" {
		methodName = s.cfg.DefaultMethod
	}
	method, err := engine.ParseMethod(methodName)
	if err != nil {
		return nil, err
	}

	modeName := opts.GatingMode
	if modeName == "" {
		modeName = s.cfg.GatingMode
	}
	mode, err := engine.ParseGatingMode(modeName)
	if err != nil {
		return nil, err
	}

	weights := s.cfg.DefaultWeights
	if opts.Weights != nil {
		if err := opts.Weights.Validate(); err != nil {
			return nil, err
		}
		weights = *opts.Weights
	}

	in, err := s.assembleInput(ctx, employer, asOf, mode, method, weights)
	if err != nil {
		return nil, err
	}

	outcome, err := engine.Calculate(s.cfg, in)
	if err != nil {
		return nil, err
	}
	for _, missing := range outcome.MissingData() {
		s.log.Warn("rating degraded", "employer_id", employer.ID, "detail", missing.Error())
	}

	row := s.buildRow(employer, asOf, method, mode, in, outcome)

	changeType := ""
	if opts.DisputeDriven {
		changeType = domain.ChangeDisputeDriven
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prev, err := s.finalRepo.GetLatest(ctx, tx, employer.ID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("load latest rating: %w", err)
		}

		// Re-running the same calculation date replaces the stored row in
		// place, so it must keep its id for the supersession filter and
		// the history foreign key below.
		sameDate := prev != nil && prev.CalculationDate.Equal(row.CalculationDate)
		if sameDate {
			row.ID = prev.ID
		}

		if err := s.finalRepo.Upsert(ctx, tx, row); err != nil {
			return fmt.Errorf("persist final rating: %w", err)
		}
		if err := s.finalRepo.SupersedeActive(ctx, tx, employer.ID, row.ID); err != nil {
			return fmt.Errorf("supersede prior ratings: %w", err)
		}

		audit := &domain.DiscrepancyAudit{
			ID:              uuid.New(),
			FinalRatingID:   row.ID,
			EmployerID:      employer.ID,
			ProjectRating:   string(outcome.Project.Rating),
			ExpertiseRating: string(outcome.Expertise.Rating),
			ScoreDifference: outcome.Discrepancy.ScoreDifference,
			RatingsMatch:    outcome.Discrepancy.RatingsMatch,
			Severity:        string(outcome.Discrepancy.Severity),
			RequiresReview:  outcome.Discrepancy.RequiresReview,
		}
		if err := s.discrepancyRepo.Create(ctx, tx, audit); err != nil {
			return fmt.Errorf("persist discrepancy audit: %w", err)
		}

		// No history entry when an ordinary same-date re-run lands on the
		// same label; dispute-driven runs always leave one.
		if sameDate && changeType == "" && prev.FinalRating == row.FinalRating {
			return nil
		}
		if _, err := s.quality.RecordChange(ctx, tx, prev, row, changeType); err != nil {
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.log.Info("final rating calculated",
		"employer_id", employer.ID,
		"rating", row.FinalRating,
		"confidence", row.OverallConfidence,
		"discrepancy", row.DiscrepancyLevel,
		"completeness", row.DataCompleteness)
	return row, nil
}

func (s *ratingService) GetCurrentRating(ctx context.Context, employerID uuid.UUID) (*domain.FinalRating, error) {
	row, err := s.finalRepo.GetCurrent(ctx, nil, employerID, time.Now().UTC())
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return s.CalculateFinalRating(ctx, employerID, CalculateOptions{})
}

func (s *ratingService) GetRatingHistory(ctx context.Context, employerID uuid.UUID, limit int) ([]*domain.RatingHistoryEntry, error) {
	if _, err := s.employerRepo.GetByID(ctx, nil, employerID); err != nil {
		return nil, err
	}
	return s.historyRepo.ListByEmployer(ctx, nil, employerID, limit)
}

// assembleInput gathers everything the pure engine needs: per-track
// assessments with component scores, default weight profiles for the
// employer's role, and assessor accuracies.
func (s *ratingService) assembleInput(ctx context.Context, employer *domain.Employer, asOf time.Time, mode engine.GatingMode, method engine.Method, weights engine.TrackWeights) (engine.Input, error) {
	projectProfile, err := s.loadProfile(ctx, domain.TrackProject, employer.Role)
	if err != nil {
		return engine.Input{}, err
	}
	expertiseProfile, err := s.loadProfile(ctx, domain.TrackExpertise, employer.Role)
	if err != nil {
		return engine.Input{}, err
	}

	accuracies := map[uuid.UUID]*float64{}

	projectInputs, err := s.loadAssessments(ctx, employer.ID, domain.TrackProject, asOf, accuracies)
	if err != nil {
		return engine.Input{}, err
	}
	expertiseInputs, err := s.loadAssessments(ctx, employer.ID, domain.TrackExpertise, asOf, accuracies)
	if err != nil {
		return engine.Input{}, err
	}

	return engine.Input{
		AsOf:                 asOf,
		ProjectProfile:       projectProfile,
		ExpertiseProfile:     expertiseProfile,
		ProjectAssessments:   projectInputs,
		ExpertiseAssessments: expertiseInputs,
		Agreement:            engine.ParseAgreementStatus(employer.EbaStatus),
		GatingKnown:          employer.EbaStatus != "",
		Weights:              weights,
		Method:               method,
		GatingMode:           mode,
	}, nil
}

// loadProfile returns nil when no default profile exists for the pair; the
// track then scores as unknown rather than failing the run.
func (s *ratingService) loadProfile(ctx context.Context, track, role string) (map[string]float64, error) {
	p, err := s.profileRepo.GetDefault(ctx, nil, track, role)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.log.Warn("no default weight profile", "track", track, "role", role)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load weight profile: %w", err)
	}
	return p.Weights.Data(), nil
}

func (s *ratingService) loadAssessments(ctx context.Context, employerID uuid.UUID, track string, asOf time.Time, accuracies map[uuid.UUID]*float64) ([]engine.AssessmentInput, error) {
	rows, err := s.assessmentRepo.ListByEmployerTrack(ctx, nil, employerID, track, asOf)
	if err != nil {
		return nil, fmt.Errorf("load %s assessments: %w", track, err)
	}

	inputs := make([]engine.AssessmentInput, 0, len(rows))
	for _, a := range rows {
		acc, ok := accuracies[a.AssessorID]
		if !ok {
			rel, err := s.reliabilityRepo.GetByAssessor(ctx, nil, a.AssessorID)
			if err != nil {
				return nil, fmt.Errorf("load assessor reliability: %w", err)
			}
			if rel != nil {
				frac := rel.AccuracyPct / 100
				acc = &frac
			}
			accuracies[a.AssessorID] = acc
		}

		in := engine.AssessmentInput{
			EffectiveDate:    a.EffectiveDate,
			ConfidenceHint:   engine.ParseConfidence(a.ConfidenceHint),
			AssessorAccuracy: acc,
		}
		for _, c := range a.Components {
			in.Components = append(in.Components, engine.ComponentScore{Key: c.ComponentKey, Score: c.Score})
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func (s *ratingService) buildRow(employer *domain.Employer, asOf time.Time, method engine.Method, mode engine.GatingMode, in engine.Input, outcome engine.Outcome) *domain.FinalRating {
	calcDate := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	reviewDue := calcDate.AddDate(0, 0, s.cfg.ReviewAfterDays)
	expires := calcDate.AddDate(0, 0, s.cfg.ExpireAfterDays)

	return &domain.FinalRating{
		ID:              uuid.New(),
		EmployerID:      employer.ID,
		CalculationDate: calcDate,

		FinalScore:  outcome.FinalScore,
		FinalRating: string(outcome.FinalRating),
		Method:      string(method),

		ProjectScore:       outcome.Project.Score,
		ProjectRating:      string(outcome.Project.Rating),
		ProjectConfidence:  string(outcome.Project.Confidence),
		ProjectAssessments: outcome.Project.AssessmentCount,

		ExpertiseScore:       outcome.Expertise.Score,
		ExpertiseRating:      string(outcome.Expertise.Rating),
		ExpertiseConfidence:  string(outcome.Expertise.Confidence),
		ExpertiseAssessments: outcome.Expertise.AssessmentCount,

		EbaStatus:   string(in.Agreement),
		GatingScore: outcome.GatingScore,
		GatingMode:  string(mode),

		WeightsUsed: datatypes.NewJSONType(in.Weights.Map()),

		DiscrepancyLevel: string(outcome.Discrepancy.Severity),
		ScoreDifference:  outcome.Discrepancy.ScoreDifference,
		RatingsMatch:     outcome.Discrepancy.RatingsMatch,
		RequiresReview:   outcome.Discrepancy.RequiresReview,

		OverallConfidence: string(outcome.OverallConfidence),
		DataCompleteness:  outcome.Completeness,

		Status:      domain.RatingStatusActive,
		ReviewDueAt: &reviewDue,
		ExpiresAt:   &expires,
	}
}
