// Package server is the HTTP transport over the schedule core.
package server

import (
	"context"
	"net/http"
	"time"

	"interview-tracker/internal/api/renderer"
	"interview-tracker/internal/config"
	"interview-tracker/internal/health"
	"interview-tracker/internal/schedule"
	"interview-tracker/internal/storage/postgres"
	"interview-tracker/internal/storage/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	config   *config.Config
	store    *postgres.Store
	cache    *redis.Cache
	renderer *renderer.Client
	manager  *schedule.Manager
	monitor  *health.Monitor
	logger   *zap.Logger

	engine *gin.Engine
	http   *http.Server
}

func New(
	cfg *config.Config,
	store *postgres.Store,
	cache *redis.Cache,
	rendererClient *renderer.Client,
	manager *schedule.Manager,
	monitor *health.Monitor,
	logger *zap.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	s := &Server{
		config:   cfg,
		store:    store,
		cache:    cache,
		renderer: rendererClient,
		manager:  manager,
		monitor:  monitor,
		logger:   logger,
		engine:   engine,
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Auth-Key", "X-Frontend-Source"}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}

	engine.Use(
		gin.Recovery(),
		RequestID(),
		RequestLogger(logger),
		cors.New(corsConfig),
		Auth(cfg, logger),
	)

	s.routes()

	s.http = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.handleHealth)

	api := s.engine.Group("/api")
	{
		api.POST("/applications", s.handleCreateApplication)
		api.GET("/applied", s.handleListApplied)

		api.POST("/schedules", s.handleUpsertSchedule)
		api.GET("/schedules", s.handleListSchedules)
		api.DELETE("/schedules", s.handleDeleteSchedule)

		api.GET("/resumes/:id", s.handleGetResume)
		api.GET("/resumes/:id/pdf", s.handleResumePDF)

		api.GET("/calendar", s.handleCalendar)
		api.POST("/prompt", s.handlePrompt)
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.config.HTTPAddr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
