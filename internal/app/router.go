package app

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/http/middleware"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.ExtraCORSOrigins))
	r.Use(middleware.RequestLogger(log))
	r.Use(otelgin.Middleware("cfmeu-ratings"))

	r.GET("/healthcheck", h.Health.HealthCheck)

	api := r.Group("/api")
	{
		api.POST("/ratings/calculate", h.Rating.Calculate)
		api.POST("/ratings/recalculate", h.Rating.Recalculate)
		api.POST("/ratings/:id/disputes", h.Dispute.File)

		api.GET("/employers/:id/rating", h.Rating.GetCurrent)
		api.GET("/employers/:id/rating/history", h.Rating.GetHistory)
		api.GET("/employers/:id/disputes", h.Dispute.ListByEmployer)

		api.POST("/disputes/:id/transition", h.Dispute.Transition)
		api.POST("/disputes/:id/appeal", h.Dispute.Appeal)

		api.GET("/weight-profiles", h.WeightProfile.List)
		api.PUT("/weight-profiles", h.WeightProfile.Upsert)

		api.GET("/quality/metrics", h.Quality.Metrics)
	}

	return r
}
