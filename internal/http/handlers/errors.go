package handlers

import (
	"net/http"

	"emanifest/internal/domain"
	"emanifest/internal/http/middleware"
	"emanifest/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondDomainError maps domain errors to HTTP responses. Validation and
// state errors are 400, not-found 404, conflicts 409, everything else an
// opaque 500. Each payload carries the machine-checkable code when the
// error has one; internals are never leaked.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, codeOr(err, "validation_error"), err.Error())
	case domain.IsState(err):
		respondError(c, http.StatusBadRequest, codeOr(err, "invalid_state"), err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, codeOr(err, "not_found"), err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, codeOr(err, "conflict"), err.Error())
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "internal_error", err.Error())
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}

// statusForDomainError mirrors RespondDomainError's mapping for handlers
// that need to shape their own payload.
func statusForDomainError(err error) int {
	switch {
	case domain.IsValidation(err), domain.IsState(err):
		return http.StatusBadRequest
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case domain.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func codeOr(err error, fallback string) string {
	if code := domain.ErrorCode(err); code != "" {
		return code
	}
	return fallback
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}
