package handlers

import (
	"errors"
	"net/http"

	"khanza/internal/domain"
	"khanza/internal/http/middleware"
	"khanza/internal/utils"

	"github.com/gin-gonic/gin"
)

// InlineError points a failure at one form field.
type InlineError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error       string       `json:"error"`
	Code        string       `json:"code,omitempty"`
	RequestID   string       `json:"request_id,omitempty"`
	InlineError *InlineError `json:"inline_error,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, inline *InlineError) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:       message,
		Code:        code,
		RequestID:   middleware.GetRequestID(c),
		InlineError: inline,
	})
}

func inlineFor(err error) *InlineError {
	if f := domain.InlineField(err); f != "" {
		return &InlineError{Field: f, Message: err.Error()}
	}
	return nil
}

// RespondDomainError maps domain errors to HTTP responses. Internal causes
// are logged and replaced with a generic message.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), inlineFor(err))
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), inlineFor(err))
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	default:
		cause := err
		var ie domain.InternalError
		if errors.As(err, &ie) && ie.Err != nil {
			cause = ie.Err
		}
		utils.LogError(middleware.GetRequestID(c), "http", c.FullPath(), cause)
		respondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan", nil)
	}
}
