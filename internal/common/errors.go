package common

import (
	"errors"
	"log"
	"net/http"

	"stocktrack/internal/apperrors"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the standardized error envelope returned by every
// endpoint.
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidationFailed, apperrors.KindInsufficientStock:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// SendError maps a typed failure to its transport status and writes the
// error envelope. Untyped errors become opaque 500s; their detail goes to
// the log, never to the client.
func SendError(c echo.Context, err error) error {
	var resp ErrorResponse

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		if appErr.Kind == apperrors.KindInternal {
			log.Printf("ERROR: %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		}
		resp.Error.Code = string(appErr.Kind)
		resp.Error.Message = appErr.Message
		resp.Error.Details = appErr.Details
		return c.JSON(statusForKind(appErr.Kind), resp)
	}

	log.Printf("ERROR: %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	resp.Error.Code = string(apperrors.KindInternal)
	resp.Error.Message = "An unexpected error occurred"
	return c.JSON(http.StatusInternalServerError, resp)
}
