package db

import (
	"gorm.io/gorm"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/domain"
)

// AutoMigrateAll creates or updates every rating table. Assessment and
// employer rows are normally written by collaborating capture systems;
// migrating them here keeps local and test environments self-contained.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Employer{},
		&domain.TrackAssessment{},
		&domain.AssessmentComponent{},
		&domain.WeightProfile{},
		&domain.AssessorReliability{},
		&domain.FinalRating{},
		&domain.DiscrepancyAudit{},
		&domain.DisputeRecord{},
		&domain.RatingHistoryEntry{},
	)
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating rating tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}
