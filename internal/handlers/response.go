package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alloyforge/metallurgy-backend/internal/types"
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

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondServiceError maps the service taxonomy onto status codes: missing
// rows are 404, uniqueness clashes 409, failed preconditions 400, anything
// else is an infrastructure fault and reported as 500.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, types.ErrConflict):
		RespondError(c, http.StatusConflict, "conflict", err)
	case types.IsValidation(err):
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
