package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jvitoroc/gocalc/calc"
	"github.com/labstack/echo/v4"
)

// EvaluationError is a pipeline failure for a client supplied expression.
type EvaluationError struct {
	Expression string
	Err        error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluating %q: %s", e.Expression, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

func ErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ee *EvaluationError
		if errors.As(err, &ee) {
			if kind := calc.Kind(ee.Err); kind != "" {
				_ = c.JSON(http.StatusUnprocessableEntity, map[string]string{
					"expression": ee.Expression,
					"error":      ee.Err.Error(),
					"kind":       kind,
				})
				return
			}
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
