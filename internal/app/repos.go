package app

import (
	"gorm.io/gorm"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/data/repos/rating"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
)

type Repos struct {
	Employer      rating.EmployerRepo
	Assessment    rating.AssessmentRepo
	WeightProfile rating.WeightProfileRepo
	Reliability   rating.ReliabilityRepo
	FinalRating   rating.FinalRatingRepo
	Discrepancy   rating.DiscrepancyAuditRepo
	Dispute       rating.DisputeRepo
	History       rating.HistoryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Employer:      rating.NewEmployerRepo(db, log),
		Assessment:    rating.NewAssessmentRepo(db, log),
		WeightProfile: rating.NewWeightProfileRepo(db, log),
		Reliability:   rating.NewReliabilityRepo(db, log),
		FinalRating:   rating.NewFinalRatingRepo(db, log),
		Discrepancy:   rating.NewDiscrepancyAuditRepo(db, log),
		Dispute:       rating.NewDisputeRepo(db, log),
		History:       rating.NewHistoryRepo(db, log),
	}
}
