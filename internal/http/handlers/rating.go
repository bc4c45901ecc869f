package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/engine"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/http/response"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/services"
)

type RatingHandler struct {
	ratings services.RatingService
	batch   services.BatchService
}

func NewRatingHandler(ratings services.RatingService, batch services.BatchService) *RatingHandler {
	return &RatingHandler{ratings: ratings, batch: batch}
}

// POST /api/ratings/calculate
// body: { "employer_id": "...", "as_of": "2026-08-01T00:00:00Z", "method": "weighted_average", "gating_mode": "blend",
//         "weights": { "project": 0.6, "expertise": 0.4, "gating": 0.15 } }
func (h *RatingHandler) Calculate(c *gin.Context) {
	var req struct {
		EmployerID uuid.UUID            `json:"employer_id" binding:"required"`
		AsOf       *time.Time           `json:"as_of"`
		Method     string               `json:"method"`
		GatingMode string               `json:"gating_mode"`
		Weights    *engine.TrackWeights `json:"weights"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	opts := services.CalculateOptions{Method: req.Method, GatingMode: req.GatingMode, Weights: req.Weights}
	if req.AsOf != nil {
		opts.AsOf = *req.AsOf
	}

	row, err := h.ratings.CalculateFinalRating(c.Request.Context(), req.EmployerID, opts)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"rating": row})
}

// POST /api/ratings/recalculate
// body: { "employer_ids": [...], "role": "builder", "limit": 100, "force_refresh": true }
func (h *RatingHandler) Recalculate(c *gin.Context) {
	var req struct {
		EmployerIDs  []uuid.UUID `json:"employer_ids"`
		Role         string      `json:"role"`
		Limit        int         `json:"limit"`
		ForceRefresh bool        `json:"force_refresh"`
		Concurrency  int         `json:"concurrency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := h.batch.Recalculate(c.Request.Context(), services.BatchRequest{
		EmployerIDs:  req.EmployerIDs,
		Role:         req.Role,
		Limit:        req.Limit,
		ForceRefresh: req.ForceRefresh,
		Concurrency:  req.Concurrency,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"result": result})
}

// GET /api/employers/:id/rating
func (h *RatingHandler) GetCurrent(c *gin.Context) {
	employerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_employer_id", err)
		return
	}

	row, err := h.ratings.GetCurrentRating(c.Request.Context(), employerID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"rating": row})
}

// GET /api/employers/:id/rating/history?limit=50
func (h *RatingHandler) GetHistory(c *gin.Context) {
	employerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_employer_id", err)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
	}

	entries, err := h.ratings.GetRatingHistory(c.Request.Context(), employerID, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"history": entries})
}
