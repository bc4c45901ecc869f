package app

import (
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/http/handlers"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
)

type Handlers struct {
	Health        *handlers.HealthHandler
	Rating        *handlers.RatingHandler
	Dispute       *handlers.DisputeHandler
	WeightProfile *handlers.WeightProfileHandler
	Quality       *handlers.QualityHandler
}

func wireHandlers(log *logger.Logger, svcs Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:        handlers.NewHealthHandler(),
		Rating:        handlers.NewRatingHandler(svcs.Rating, svcs.Batch),
		Dispute:       handlers.NewDisputeHandler(svcs.Dispute),
		WeightProfile: handlers.NewWeightProfileHandler(svcs.WeightProfile),
		Quality:       handlers.NewQualityHandler(svcs.Quality),
	}
}
