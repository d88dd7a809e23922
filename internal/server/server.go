// Package server serves the stats page, the SVG card, the XLSX export and a small JSON API.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/naka-gawa/github-wrapped/internal/config"
	"github.com/naka-gawa/github-wrapped/internal/domain"
	"github.com/naka-gawa/github-wrapped/internal/render"
	"github.com/naka-gawa/github-wrapped/internal/usecase"
	"github.com/sirupsen/logrus"
)

// Submitter is the part of usecase.Tracker the handlers need.
type Submitter interface {
	Submit(ctx context.Context, username string) (*domain.Report, error)
	Current() usecase.Snapshot
}

type Server struct {
	tracker Submitter
	theme   string
	logger  *logrus.Logger
	engine  *gin.Engine
	http    *http.Server
}

func New(cfg config.ServerConfig, theme string, tracker Submitter, logger *logrus.Logger) *Server {
	s := &Server{
		tracker: tracker,
		theme:   theme,
		logger:  logger,
	}

	router := gin.New()
	router.Use(RequestID(), Logging(logger), gin.Recovery())
	router.SetHTMLTemplate(render.PageTemplate())
	s.setupRoutes(router)
	s.engine = router

	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) setupRoutes(router *gin.Engine) {
	router.GET("/", s.Index)
	router.POST("/stats", s.SubmitForm)
	router.GET("/card.svg", s.Card)
	router.GET("/export.xlsx", s.Export)

	api := router.Group("/api")
	{
		api.GET("/stats", s.CurrentStats)
		api.POST("/stats", s.SubmitJSON)
	}

	router.GET("/health", s.Health)
	router.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "no such page")
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until Shutdown is called.
func (s *Server) Run() error {
	s.logger.WithField("addr", s.http.Addr).Info("Server starting")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.http.Shutdown(ctx)
}
