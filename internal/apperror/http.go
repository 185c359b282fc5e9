package apperror

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var statusByKind = map[Kind]int{
	KindValidation:      http.StatusBadRequest,
	KindUnauthenticated: http.StatusUnauthorized,
	KindForbidden:       http.StatusForbidden,
	KindNotFound:        http.StatusNotFound,
	KindConflict:        http.StatusConflict,
	KindPersistence:     http.StatusInternalServerError,
}

// HTTPErrorHandler maps the error taxonomy to JSON responses. Persistence
// causes are logged with the request path and replaced by a generic message.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal error"

		var appErr *Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			if s, ok := statusByKind[appErr.Kind]; ok {
				status = s
			}
			message = appErr.Message
			if appErr.Kind == KindPersistence {
				logger.Error().Err(appErr.Err).
					Str("path", c.Request().URL.Path).
					Msg("persistence failure")
			}
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		default:
			logger.Error().Err(err).
				Str("path", c.Request().URL.Path).
				Msg("unhandled error")
		}

		if writeErr := c.JSON(status, map[string]string{"message": message}); writeErr != nil {
			logger.Error().Err(writeErr).Msg("write error response")
		}
	}
}
