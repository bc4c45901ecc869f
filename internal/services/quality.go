package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/data/repos/rating"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/domain"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/engine"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
)

// anomalySwingSteps is the four-point tier swing between consecutive
// calculations that flags a history entry as anomalous.
const anomalySwingSteps = 2

// QualityMetrics is the system-wide data-quality rollup over active
// ratings and recent history.
type QualityMetrics struct {
	ActiveRatings   int64            `json:"active_ratings"`
	CountByRating   map[string]int64 `json:"count_by_rating"`
	AvgCompleteness float64          `json:"avg_completeness"`
	// Fraction of active ratings flagged for discrepancy review.
	ReviewRate   float64 `json:"review_rate"`
	OpenDisputes int64   `json:"open_disputes"`
	// Dispute rate over active ratings.
	DisputeRate   float64 `json:"dispute_rate"`
	AnomalyCount  int64   `json:"anomaly_count"`
	AnomalyWindow int     `json:"anomaly_window_days"`
}

type QualityService interface {
	// RecordChange appends the history entry for one calculation. prev is
	// nil on the employer's first rating. changeType overrides the derived
	// type when set (dispute-driven recalculations).
	RecordChange(ctx context.Context, tx *gorm.DB, prev, next *domain.FinalRating, changeType string) (*domain.RatingHistoryEntry, error)
	Metrics(ctx context.Context) (*QualityMetrics, error)
}

type qualityService struct {
	db          *gorm.DB
	log         *logger.Logger
	historyRepo rating.HistoryRepo
	finalRepo   rating.FinalRatingRepo
	disputeRepo rating.DisputeRepo
	// anomalyWindowDays bounds the Metrics anomaly count.
	anomalyWindowDays int
}

func NewQualityService(db *gorm.DB, log *logger.Logger, historyRepo rating.HistoryRepo, finalRepo rating.FinalRatingRepo, disputeRepo rating.DisputeRepo) QualityService {
	return &qualityService{
		db:                db,
		log:               log.With("service", "QualityService"),
		historyRepo:       historyRepo,
		finalRepo:         finalRepo,
		disputeRepo:       disputeRepo,
		anomalyWindowDays: 90,
	}
}

func (s *qualityService) RecordChange(ctx context.Context, tx *gorm.DB, prev, next *domain.FinalRating, changeType string) (*domain.RatingHistoryEntry, error) {
	if next == nil {
		return nil, fmt.Errorf("record change: next rating is nil")
	}

	entry := &domain.RatingHistoryEntry{
		ID:            uuid.New(),
		EmployerID:    next.EmployerID,
		FinalRatingID: next.ID,
		NewRating:     next.FinalRating,
		NewScore:      next.FinalScore,
	}

	newTier := engine.ParseRating(next.FinalRating).Tier()
	prevTier := 0
	if prev != nil {
		entry.PreviousRating = prev.FinalRating
		entry.PreviousScore = prev.FinalScore
		prevTier = engine.ParseRating(prev.FinalRating).Tier()

		days := int(next.CalculationDate.Sub(prev.CalculationDate).Hours() / 24)
		if days < 0 {
			days = 0
		}
		entry.DaysSincePrevious = &days
	}

	switch {
	case changeType != "":
		entry.ChangeType = changeType
	case prev == nil:
		entry.ChangeType = domain.ChangeInitial
	case newTier > prevTier:
		entry.ChangeType = domain.ChangeUpgrade
	case newTier < prevTier:
		entry.ChangeType = domain.ChangeDowngrade
	default:
		entry.ChangeType = domain.ChangeUnchanged
	}

	// Magnitude and the anomaly flag only make sense when both sides have
	// a tiered rating.
	if prevTier > 0 && newTier > 0 {
		diff := newTier - prevTier
		if diff < 0 {
			diff = -diff
		}
		entry.Magnitude = float64(diff)
		entry.Anomaly = diff >= anomalySwingSteps
	}

	if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("record history entry: %w", err)
	}
	if entry.Anomaly {
		s.log.Warn("anomalous rating swing",
			"employer_id", next.EmployerID,
			"previous", entry.PreviousRating,
			"new", entry.NewRating,
			"magnitude", entry.Magnitude)
	}
	return entry, nil
}

func (s *qualityService) Metrics(ctx context.Context) (*QualityMetrics, error) {
	stats, err := s.finalRepo.ActiveStats(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("active rating stats: %w", err)
	}

	openDisputes, err := s.disputeRepo.CountOpen(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count open disputes: %w", err)
	}

	since := time.Now().UTC().AddDate(0, 0, -s.anomalyWindowDays)
	anomalies, err := s.historyRepo.CountAnomaliesSince(ctx, nil, since)
	if err != nil {
		return nil, fmt.Errorf("count anomalies: %w", err)
	}

	m := &QualityMetrics{
		ActiveRatings:   stats.Total,
		CountByRating:   stats.CountByRating,
		AvgCompleteness: stats.AvgCompleteness,
		OpenDisputes:    openDisputes,
		AnomalyCount:    anomalies,
		AnomalyWindow:   s.anomalyWindowDays,
	}
	if stats.Total > 0 {
		m.ReviewRate = float64(stats.RequiresReview) / float64(stats.Total)
		m.DisputeRate = float64(openDisputes) / float64(stats.Total)
	}
	return m, nil
}
