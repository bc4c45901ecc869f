package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/http/response"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/services"
)

type WeightProfileHandler struct {
	profiles services.WeightProfileService
}

func NewWeightProfileHandler(profiles services.WeightProfileService) *WeightProfileHandler {
	return &WeightProfileHandler{profiles: profiles}
}

// GET /api/weight-profiles?track=project&role=builder
func (h *WeightProfileHandler) List(c *gin.Context) {
	rows, err := h.profiles.List(c.Request.Context(), c.Query("track"), c.Query("role"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profiles": rows})
}

// PUT /api/weight-profiles
// body: { "track": "project", "role": "builder", "name": "standard", "weights": {...}, "set_default": true }
func (h *WeightProfileHandler) Upsert(c *gin.Context) {
	var req struct {
		Track      string             `json:"track" binding:"required"`
		Role       string             `json:"role" binding:"required"`
		Name       string             `json:"name" binding:"required"`
		Weights    map[string]float64 `json:"weights" binding:"required"`
		SetDefault bool               `json:"set_default"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	row, err := h.profiles.Upsert(c.Request.Context(), services.UpsertWeightProfileInput{
		Track:      req.Track,
		Role:       req.Role,
		Name:       req.Name,
		Weights:    req.Weights,
		SetDefault: req.SetDefault,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile": row})
}
