package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/data/repos/rating"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/domain"
	apperrors "github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/errors"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
)

// In-memory repo fakes for service tests that do not need Postgres.

type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []*domain.RatingHistoryEntry
}

func (f *fakeHistoryRepo) Create(_ context.Context, _ *gorm.DB, row *domain.RatingHistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, row)
	return nil
}

func (f *fakeHistoryRepo) GetLatestByEmployer(_ context.Context, _ *gorm.DB, employerID uuid.UUID) (*domain.RatingHistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].EmployerID == employerID {
			return f.entries[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeHistoryRepo) ListByEmployer(_ context.Context, _ *gorm.DB, employerID uuid.UUID, limit int) ([]*domain.RatingHistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.RatingHistoryEntry
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].EmployerID == employerID {
			out = append(out, f.entries[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) CountAnomaliesSince(_ context.Context, _ *gorm.DB, since time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, e := range f.entries {
		if e.Anomaly && !e.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type fakeFinalRatingRepo struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]*domain.FinalRating
	stats *rating.ActiveRatingStats
}

func newFakeFinalRatingRepo() *fakeFinalRatingRepo {
	return &fakeFinalRatingRepo{rows: map[uuid.UUID]*domain.FinalRating{}}
}

func (f *fakeFinalRatingRepo) Upsert(_ context.Context, _ *gorm.DB, row *domain.FinalRating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[row.ID] = row
	return nil
}

func (f *fakeFinalRatingRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*domain.FinalRating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[id]; ok {
		return row, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeFinalRatingRepo) GetCurrent(_ context.Context, _ *gorm.DB, employerID uuid.UUID, now time.Time) (*domain.FinalRating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *domain.FinalRating
	for _, row := range f.rows {
		if row.EmployerID != employerID || row.Status != domain.RatingStatusActive {
			continue
		}
		if row.ExpiresAt != nil && !row.ExpiresAt.After(now) {
			continue
		}
		if best == nil || row.CalculationDate.After(best.CalculationDate) {
			best = row
		}
	}
	if best == nil {
		return nil, apperrors.ErrNotFound
	}
	return best, nil
}

func (f *fakeFinalRatingRepo) GetLatest(_ context.Context, _ *gorm.DB, employerID uuid.UUID) (*domain.FinalRating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *domain.FinalRating
	for _, row := range f.rows {
		if row.EmployerID != employerID {
			continue
		}
		if best == nil || row.CalculationDate.After(best.CalculationDate) {
			best = row
		}
	}
	if best == nil {
		return nil, apperrors.ErrNotFound
	}
	return best, nil
}

func (f *fakeFinalRatingRepo) SupersedeActive(_ context.Context, _ *gorm.DB, employerID, exceptID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.EmployerID != employerID || row.ID == exceptID {
			continue
		}
		if row.Status == domain.RatingStatusActive || row.Status == domain.RatingStatusDisputed {
			row.Status = domain.RatingStatusSuperseded
		}
	}
	return nil
}

func (f *fakeFinalRatingRepo) UpdateStatus(_ context.Context, _ *gorm.DB, id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	row.Status = status
	return nil
}

func (f *fakeFinalRatingRepo) ActiveStats(_ context.Context, _ *gorm.DB) (*rating.ActiveRatingStats, error) {
	if f.stats != nil {
		return f.stats, nil
	}
	return &rating.ActiveRatingStats{CountByRating: map[string]int64{}}, nil
}

type fakeDisputeRepo struct {
	mu       sync.Mutex
	rows     map[uuid.UUID]*domain.DisputeRecord
	openN    int64
	failOpen error
}

func newFakeDisputeRepo() *fakeDisputeRepo {
	return &fakeDisputeRepo{rows: map[uuid.UUID]*domain.DisputeRecord{}}
}

func (f *fakeDisputeRepo) Create(_ context.Context, _ *gorm.DB, row *domain.DisputeRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[row.ID] = row
	return nil
}

func (f *fakeDisputeRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*domain.DisputeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[id]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeDisputeRepo) Update(_ context.Context, _ *gorm.DB, row *domain.DisputeRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[row.ID] = row
	return nil
}

func (f *fakeDisputeRepo) ListByEmployer(_ context.Context, _ *gorm.DB, employerID uuid.UUID) ([]*domain.DisputeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.DisputeRecord
	for _, row := range f.rows {
		if row.EmployerID == employerID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeDisputeRepo) CountOpen(_ context.Context, _ *gorm.DB) (int64, error) {
	if f.failOpen != nil {
		return 0, f.failOpen
	}
	return f.openN, nil
}

type fakeEmployerRepo struct {
	employers map[uuid.UUID]*domain.Employer
	ids       []uuid.UUID
}

func (f *fakeEmployerRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*domain.Employer, error) {
	if e, ok := f.employers[id]; ok {
		return e, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeEmployerRepo) ListIDs(_ context.Context, _ *gorm.DB, role string, limit int) ([]uuid.UUID, error) {
	ids := f.ids
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// fakeRatingService counts calculations and can fail selected employers.
type fakeRatingService struct {
	mu      sync.Mutex
	calls   []uuid.UUID
	failIDs map[uuid.UUID]error
}

func (f *fakeRatingService) CalculateFinalRating(_ context.Context, employerID uuid.UUID, _ CalculateOptions) (*domain.FinalRating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, employerID)
	if err, ok := f.failIDs[employerID]; ok {
		return nil, err
	}
	return &domain.FinalRating{ID: uuid.New(), EmployerID: employerID}, nil
}

func (f *fakeRatingService) GetCurrentRating(_ context.Context, employerID uuid.UUID) (*domain.FinalRating, error) {
	return &domain.FinalRating{ID: uuid.New(), EmployerID: employerID}, nil
}

func (f *fakeRatingService) GetRatingHistory(context.Context, uuid.UUID, int) ([]*domain.RatingHistoryEntry, error) {
	return nil, nil
}

func (f *fakeRatingService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	l, err := logger.New("test")
	if err != nil {
		tb.Fatalf("init logger: %v", err)
	}
	return l
}
