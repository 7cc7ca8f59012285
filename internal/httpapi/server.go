// Package httpapi exposes the masterplan service over HTTP.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/producthouse/producthouse/internal/llm"
	"github.com/producthouse/producthouse/internal/service"
	"go.uber.org/zap"
)

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// Server wires the service layer to the HTTP routes.
type Server struct {
	echo        *echo.Echo
	logger      *zap.Logger
	config      Config
	masterplans service.MasterplanService
	collab      service.CollabService
	comments    service.CommentService
	completions llm.Client
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(cfg Config, logger *zap.Logger, masterplans service.MasterplanService, collab service.CollabService, comments service.CommentService, completions llm.Client) (*Server, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(identityMiddleware)

	s := &Server{
		echo:        e,
		logger:      logger,
		config:      cfg,
		masterplans: masterplans,
		collab:      collab,
		comments:    comments,
		completions: completions,
	}
	s.registerRoutes()
	return s, nil
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	}
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	api := s.echo.Group("/api")
	api.POST("/complete", s.handleComplete)
	api.GET("/templates", s.handleListTemplates)
	api.GET("/templates/:id", s.handleGetTemplate)

	api.POST("/masterplans", s.handleGenerate)
	api.GET("/masterplans", s.handleListMasterplans)
	api.GET("/masterplans/:id", s.handleGetMasterplan)
	api.DELETE("/masterplans/:id", s.handleDeleteMasterplan)
	api.GET("/masterplans/:id/export/:format", s.handleExport)

	api.POST("/masterplans/:id/versions", s.handleSaveVersion)
	api.GET("/masterplans/:id/versions", s.handleListVersions)
	api.GET("/masterplans/:id/versions/:versionId", s.handleGetVersion)
	api.POST("/masterplans/:id/versions/:versionId/restore", s.handleRestoreVersion)

	api.POST("/masterplans/:id/refine", s.handleRefineSection)
	api.POST("/masterplans/:id/review", s.handleRequestReview)
	api.POST("/masterplans/:id/review/apply", s.handleApplyReview)

	api.POST("/masterplans/:id/comments", s.handleAddComment)
	api.GET("/masterplans/:id/comments", s.handleListComments)
	api.PUT("/comments/:id", s.handleUpdateComment)
	api.DELETE("/comments/:id", s.handleDeleteComment)
}

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

// Start listens on the configured address until Shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
