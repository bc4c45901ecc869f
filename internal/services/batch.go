package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/data/repos/rating"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/engine"
	apperrors "github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/errors"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
)

const defaultBatchConcurrency = 8

// BatchRequest selects the employers to recalculate: explicit ids, or a
// role filter (empty role means everyone), optionally capped by Limit.
type BatchRequest struct {
	EmployerIDs []uuid.UUID
	Role        string
	Limit       int
	// ForceRefresh recalculates even employers whose current rating is
	// still fresh.
	ForceRefresh bool
	Concurrency  int
}

// BatchResult reports the run. Per-employer failures are captured here,
// never aborting the batch.
type BatchResult struct {
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Skipped   int               `json:"skipped"`
	Errors    map[string]string `json:"errors,omitempty"`
}

type BatchService interface {
	Recalculate(ctx context.Context, req BatchRequest) (*BatchResult, error)
}

type batchService struct {
	db  *gorm.DB
	log *logger.Logger
	cfg engine.Config

	employerRepo rating.EmployerRepo
	finalRepo    rating.FinalRatingRepo
	ratings      RatingService
}

func NewBatchService(db *gorm.DB, log *logger.Logger, cfg engine.Config, employerRepo rating.EmployerRepo, finalRepo rating.FinalRatingRepo, ratings RatingService) BatchService {
	return &batchService{
		db:           db,
		log:          log.With("service", "BatchService"),
		cfg:          cfg,
		employerRepo: employerRepo,
		finalRepo:    finalRepo,
		ratings:      ratings,
	}
}

func (s *batchService) Recalculate(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	ids := req.EmployerIDs
	if len(ids) == 0 {
		var err error
		ids, err = s.employerRepo.ListIDs(ctx, nil, req.Role, req.Limit)
		if err != nil {
			return nil, err
		}
	} else if req.Limit > 0 && len(ids) > req.Limit {
		ids = ids[:req.Limit]
	}

	concurrency := req.Concurrency
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}

	now := time.Now().UTC()
	result := &BatchResult{Total: len(ids), Errors: map[string]string{}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			if !req.ForceRefresh {
				fresh, err := s.isFresh(gctx, id, now)
				if err == nil && fresh {
					mu.Lock()
					result.Skipped++
					mu.Unlock()
					return nil
				}
			}

			if _, err := s.ratings.CalculateFinalRating(gctx, id, CalculateOptions{AsOf: now}); err != nil {
				mu.Lock()
				result.Failed++
				result.Errors[id.String()] = err.Error()
				mu.Unlock()
				return nil
			}
			mu.Lock()
			result.Succeeded++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Info("batch recalculation finished",
		"total", result.Total,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"skipped", result.Skipped)
	return result, nil
}

func (s *batchService) isFresh(ctx context.Context, employerID uuid.UUID, now time.Time) (bool, error) {
	cur, err := s.finalRepo.GetCurrent(ctx, nil, employerID, now)
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	age := now.Sub(cur.CalculationDate)
	return age <= time.Duration(s.cfg.FreshWithinDays)*24*time.Hour, nil
}
