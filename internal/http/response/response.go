package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/engine"
	apperrors "github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/errors"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps service and engine errors onto HTTP codes:
// validation failures are the caller's fault, missing rows are 404,
// anything else is a 500.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case engine.IsValidation(err):
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
	case errors.Is(err, apperrors.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperrors.ErrConflict):
		RespondError(c, http.StatusConflict, "conflict", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
