package app

import (
	"gorm.io/gorm"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/services"
)

type Services struct {
	Quality       services.QualityService
	Rating        services.RatingService
	Batch         services.BatchService
	Dispute       services.DisputeService
	WeightProfile services.WeightProfileService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) Services {
	log.Info("Wiring services...")

	quality := services.NewQualityService(db, log, repos.History, repos.FinalRating, repos.Dispute)
	ratingSvc := services.NewRatingService(
		db, log, cfg.Engine,
		repos.Employer,
		repos.Assessment,
		repos.WeightProfile,
		repos.Reliability,
		repos.FinalRating,
		repos.Discrepancy,
		repos.History,
		quality,
	)
	return Services{
		Quality:       quality,
		Rating:        ratingSvc,
		Batch:         services.NewBatchService(db, log, cfg.Engine, repos.Employer, repos.FinalRating, ratingSvc),
		Dispute:       services.NewDisputeService(db, log, repos.Dispute, repos.FinalRating, ratingSvc),
		WeightProfile: services.NewWeightProfileService(db, log, repos.WeightProfile),
	}
}
