package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type EvalRequest struct {
	Expression string `json:"expression"`
}

type EvalResponse struct {
	Expression string `json:"expression"`
	Value      *int32 `json:"value,omitempty"`
	Empty      bool   `json:"empty,omitempty"`
	Tree       string `json:"tree,omitempty"`
}

func (s *Server) evalHandler(c echo.Context) error {
	var req EvalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "request body must be a JSON object with an 'expression' field")
	}

	res, err := s.calc.Evaluate(c.Request().Context(), req.Expression)
	if err != nil {
		return &EvaluationError{Expression: req.Expression, Err: err}
	}

	if res.Empty {
		return c.JSON(http.StatusOK, EvalResponse{Expression: req.Expression, Empty: true})
	}

	v := res.Value
	return c.JSON(http.StatusOK, EvalResponse{
		Expression: req.Expression,
		Value:      &v,
		Tree:       res.Tree.String(),
	})
}
