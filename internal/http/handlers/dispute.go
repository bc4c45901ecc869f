package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/http/response"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/services"
)

type DisputeHandler struct {
	disputes services.DisputeService
}

func NewDisputeHandler(disputes services.DisputeService) *DisputeHandler {
	return &DisputeHandler{disputes: disputes}
}

// POST /api/ratings/:id/disputes
// body: { "reason": "...", "proposed_rating": "green", "proposed_score": 3.5, "filed_by": "..." }
func (h *DisputeHandler) File(c *gin.Context) {
	finalRatingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_rating_id", err)
		return
	}

	var req struct {
		Reason         string    `json:"reason" binding:"required"`
		ProposedRating string    `json:"proposed_rating"`
		ProposedScore  *float64  `json:"proposed_score"`
		FiledBy        uuid.UUID `json:"filed_by" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	dispute, err := h.disputes.FileDispute(c.Request.Context(), services.FileDisputeInput{
		FinalRatingID:  finalRatingID,
		Reason:         req.Reason,
		ProposedRating: req.ProposedRating,
		ProposedScore:  req.ProposedScore,
		FiledBy:        req.FiledBy,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"dispute": dispute})
}

// POST /api/disputes/:id/transition
// body: { "status": "under_review", "reviewer_id": "...", "outcome": "accepted", "notes": "..." }
func (h *DisputeHandler) Transition(c *gin.Context) {
	disputeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_dispute_id", err)
		return
	}

	var req struct {
		Status     string     `json:"status" binding:"required"`
		ReviewerID *uuid.UUID `json:"reviewer_id"`
		Outcome    string     `json:"outcome"`
		Notes      string     `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	dispute, err := h.disputes.Transition(c.Request.Context(), disputeID, services.TransitionInput{
		Status:     req.Status,
		ReviewerID: req.ReviewerID,
		Outcome:    req.Outcome,
		Notes:      req.Notes,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"dispute": dispute})
}

// POST /api/disputes/:id/appeal
func (h *DisputeHandler) Appeal(c *gin.Context) {
	disputeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_dispute_id", err)
		return
	}

	dispute, err := h.disputes.Appeal(c.Request.Context(), disputeID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"dispute": dispute})
}

// GET /api/employers/:id/disputes
func (h *DisputeHandler) ListByEmployer(c *gin.Context) {
	employerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_employer_id", err)
		return
	}

	disputes, err := h.disputes.ListByEmployer(c.Request.Context(), employerID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"disputes": disputes})
}
