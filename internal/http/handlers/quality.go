package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/http/response"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/services"
)

type QualityHandler struct {
	quality services.QualityService
}

func NewQualityHandler(quality services.QualityService) *QualityHandler {
	return &QualityHandler{quality: quality}
}

// GET /api/quality/metrics
func (h *QualityHandler) Metrics(c *gin.Context) {
	m, err := h.quality.Metrics(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"metrics": m})
}
