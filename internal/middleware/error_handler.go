package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"diaPredict/pkg/logger"
	"diaPredict/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler turns any error that escapes a handler into the uniform
// error envelope. The underlying message is passed through as-is, which
// matches what API clients already depend on.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprintf("%v", he.Message)
	}

	logger.Error("Unhandled request error", err)

	if err := c.JSON(code, response.Error(msg)); err != nil {
		logger.Error("Failed to write error response", err)
	}
}
