package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// CustomHTTPErrorHandler writes errors as {"error": ..., "message": ...}.
// The message carries the internal cause for client errors only; server
// error causes are logged and never sent.
func CustomHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		ctx := c.Request().Context()
		status := http.StatusInternalServerError
		response := ErrorResponse{Error: "internal error"}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if msg, ok := he.Message.(string); ok {
				response.Error = msg
			} else {
				response.Error = http.StatusText(status)
			}
			if status < 500 && he.Internal != nil {
				response.Message = he.Internal.Error()
			}
		}

		switch {
		case status >= 500:
			logger.ErrorContext(ctx, "request failed",
				"status", status,
				"path", c.Path(),
				"error", err)
		case status != http.StatusNotFound:
			logger.WarnContext(ctx, "request rejected",
				"status", status,
				"path", c.Path(),
				"error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, response)
		}
		if err != nil {
			logger.ErrorContext(ctx, "failed to send error response", "error", err)
		}
	}
}
