// Package httputil writes the JSON error bodies of the entry API.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/cachevault/internal/errors"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// errorMapping is the response for one error category. An empty message means the
// error text itself is safe to return.
type errorMapping struct {
	status  int
	code    string
	message string
}

// errorMappings covers every category except ErrStorage, which falls through to
// internalError like any uncategorized failure.
var errorMappings = map[error]errorMapping{
	apperrors.ErrNotFound:     {http.StatusNotFound, "not_found", "The requested resource was not found"},
	apperrors.ErrConflict:     {http.StatusConflict, "conflict", "A conflict occurred with existing data"},
	apperrors.ErrInvalidInput: {http.StatusUnprocessableEntity, "invalid_input", ""},
	apperrors.ErrUnavailable:  {http.StatusServiceUnavailable, "unavailable", "Key material is temporarily unavailable"},
}

// internalError is returned for storage failures, authentication failures and
// anything unmapped. It never carries the cause.
var internalError = ErrorResponse{
	Error:   "internal_error",
	Message: "An internal error occurred",
}

// HandleErrorGin maps err to a status code and writes the JSON error body. The full
// error is logged together with the request id.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	status := http.StatusInternalServerError
	body := internalError
	if m, ok := errorMappings[apperrors.Kind(err)]; ok {
		status = m.status
		body = ErrorResponse{Error: m.code, Message: m.message}
		if body.Message == "" {
			body.Message = err.Error()
		}
	}

	if logger != nil {
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.String("request_id", requestid.Get(c)),
			slog.Int("status_code", status),
			slog.String("error_code", body.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(status, body)
}

// HandleBadRequestGin writes 400 for bodies or query parameters that cannot be parsed.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	writeClientError(c, http.StatusBadRequest, "bad_request", err, logger)
}

// HandleValidationErrorGin writes 422 for well-formed input that breaks a rule.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	writeClientError(c, http.StatusUnprocessableEntity, "validation_error", err, logger)
}

func writeClientError(c *gin.Context, status int, code string, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("rejected request",
			slog.String("request_id", requestid.Get(c)),
			slog.String("error_code", code),
			slog.Any("error", err),
		)
	}

	c.JSON(status, ErrorResponse{Error: code, Message: err.Error()})
}
