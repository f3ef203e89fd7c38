package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/order_api/internal/logging"
	"github.com/Skotchmaster/order_api/internal/service"
)

const unknownError = "unknown error"

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ErrorHandler renders every error as {success:false, message, error}. In
// production the detail of 5xx responses is withheld.
func ErrorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "internal server error"
		detail := err.Error()

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
			detail = message
			if he.Internal != nil {
				detail = he.Internal.Error()
			}
			switch code {
			case http.StatusNotFound:
				if he == echo.ErrNotFound {
					message, detail = "route not found", ""
				}
			case http.StatusMethodNotAllowed:
				message, detail = "method not allowed", ""
			}
		}

		if code >= http.StatusInternalServerError && production {
			detail = unknownError
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, errorResponse{Success: false, Message: message, Error: detail})
		}
		if werr != nil {
			logging.FromContext(c.Request().Context()).Error("write_error_response_failed", "error", werr)
		}
	}
}

// statusFor maps service sentinels onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// httpError builds the response error for a failed service call and logs it
// at a level matching its status.
func httpError(c echo.Context, event, message string, err error) *echo.HTTPError {
	l := logging.FromContext(c.Request().Context())
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		l.Error(event, "status", code, "reason", message, "error", err)
	} else {
		l.Warn(event, "status", code, "reason", message, "error", err)
	}
	return echo.NewHTTPError(code, message).SetInternal(err)
}
