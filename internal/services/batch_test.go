package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/domain"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/engine"
)

func TestBatchRecalculateCapturesFailures(t *testing.T) {
	ctx := context.Background()

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	ratings := &fakeRatingService{failIDs: map[uuid.UUID]error{
		ids[1]: fmt.Errorf("no such employer"),
	}}

	svc := NewBatchService(nil, testLogger(t), engine.Default(), &fakeEmployerRepo{ids: ids}, newFakeFinalRatingRepo(), ratings)

	res, err := svc.Recalculate(ctx, BatchRequest{ForceRefresh: true})
	if err != nil {
		t.Fatalf("Recalculate: %v", err)
	}
	if res.Total != 3 || res.Succeeded != 2 || res.Failed != 1 || res.Skipped != 0 {
		t.Fatalf("result = %+v", res)
	}
	if res.Errors[ids[1].String()] != "no such employer" {
		t.Fatalf("Errors = %v", res.Errors)
	}
	if ratings.callCount() != 3 {
		t.Fatalf("calculations = %d, want 3", ratings.callCount())
	}
}

func TestBatchRecalculateSkipsFresh(t *testing.T) {
	ctx := context.Background()

	freshID := uuid.New()
	staleID := uuid.New()
	ids := []uuid.UUID{freshID, staleID}

	now := time.Now().UTC()
	finalRepo := newFakeFinalRatingRepo()
	fresh := &domain.FinalRating{
		ID:              uuid.New(),
		EmployerID:      freshID,
		CalculationDate: now.AddDate(0, 0, -5),
		FinalRating:     "green",
		Status:          domain.RatingStatusActive,
	}
	stale := &domain.FinalRating{
		ID:              uuid.New(),
		EmployerID:      staleID,
		CalculationDate: now.AddDate(0, 0, -60),
		FinalRating:     "yellow",
		Status:          domain.RatingStatusActive,
	}
	finalRepo.rows[fresh.ID] = fresh
	finalRepo.rows[stale.ID] = stale

	ratings := &fakeRatingService{}
	svc := NewBatchService(nil, testLogger(t), engine.Default(), &fakeEmployerRepo{ids: ids}, finalRepo, ratings)

	res, err := svc.Recalculate(ctx, BatchRequest{})
	if err != nil {
		t.Fatalf("Recalculate: %v", err)
	}
	if res.Skipped != 1 || res.Succeeded != 1 {
		t.Fatalf("result = %+v", res)
	}
	if ratings.callCount() != 1 {
		t.Fatalf("calculations = %d, want 1 (fresh rating skipped)", ratings.callCount())
	}

	// Force recalculates everyone.
	res, err = svc.Recalculate(ctx, BatchRequest{ForceRefresh: true})
	if err != nil {
		t.Fatalf("Recalculate(force): %v", err)
	}
	if res.Skipped != 0 || res.Succeeded != 2 {
		t.Fatalf("forced result = %+v", res)
	}
}

func TestBatchRecalculateExplicitIDsAndLimit(t *testing.T) {
	ctx := context.Background()

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	ratings := &fakeRatingService{}
	svc := NewBatchService(nil, testLogger(t), engine.Default(), &fakeEmployerRepo{}, newFakeFinalRatingRepo(), ratings)

	res, err := svc.Recalculate(ctx, BatchRequest{EmployerIDs: ids, Limit: 2, ForceRefresh: true, Concurrency: 1})
	if err != nil {
		t.Fatalf("Recalculate: %v", err)
	}
	if res.Total != 2 || res.Succeeded != 2 {
		t.Fatalf("result = %+v", res)
	}
}
