package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jvitoroc/gocalc/calc"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	GracefulShutdownTimeout = 10 * time.Second
)

type Config struct {
	Port string
}

type Server struct {
	Echo *echo.Echo

	cfg  *Config
	calc *calc.Calculator
}

func New(cfg *Config, c *calc.Calculator) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		Echo: e,
		cfg:  cfg,
		calc: c,
	}

	s.Echo.Use(Logger())
	s.Echo.Use(middleware.Recover())
	s.Echo.HTTPErrorHandler = ErrorHandler()

	s.Echo.GET("/health", s.healthHandler)
	s.Echo.POST("/eval", s.evalHandler)

	return s
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "port", s.cfg.Port)
		if err := s.Echo.Start(":" + s.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down the server")

	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	return s.Echo.Shutdown(ctx)
}

func (s *Server) healthHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
