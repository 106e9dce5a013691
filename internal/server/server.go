// Package server assembles the HTTP application: gin engine, middleware
// chain, routes and the graceful http.Server lifecycle.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ncobase/taskapi/config"
	"github.com/ncobase/taskapi/handler"
	"github.com/ncobase/taskapi/logging/logger"
	"github.com/ncobase/taskapi/middleware"
	"github.com/ncobase/taskapi/net/resp"
	"github.com/ncobase/taskapi/service"
	"github.com/ncobase/taskapi/version"

	"github.com/gin-gonic/gin"
)

const pingTimeout = 3 * time.Second

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP application.
type Server struct {
	config *config.Config
	logger *logger.Logger
	store  Pinger
	engine *gin.Engine
	server *http.Server
}

// New creates the server and registers every route.
func New(cfg *config.Config, logger *logger.Logger, store Pinger, svc *service.Service) *Server {
	if cfg.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config: cfg,
		logger: logger,
		store:  store,
		engine: gin.New(),
	}

	s.engine.Use(
		middleware.Recovery(logger),
		middleware.Trace(),
		middleware.Tracing(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)

	s.engine.GET("/", s.root)
	s.engine.GET("/health", s.health)
	handler.New(svc, logger).RegisterRoutes(s.engine, middleware.Authenticate(svc.Auth, logger))

	s.engine.NoRoute(func(c *gin.Context) {
		resp.Fail(c.Writer, resp.NotFound("Route not found"))
	})

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	sc := s.config.Server
	s.server = &http.Server{
		Addr:         sc.Addr(),
		Handler:      s.engine,
		ReadTimeout:  sc.ReadTimeout,
		WriteTimeout: sc.WriteTimeout,
		IdleTimeout:  sc.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting server", "addr", sc.Addr())
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.logger.Error(ctx, "Server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info(context.Background(), "Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), sc.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error(context.Background(), "Server forced to shutdown", "error", err)
		return err
	}

	s.logger.Info(context.Background(), "Server exited")
	return nil
}

func (s *Server) root(c *gin.Context) {
	resp.JSON(c.Writer, http.StatusOK, gin.H{"message": "Task Management API is running!"})
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error(ctx, "health check failed", "error", err)
		resp.Fail(c.Writer, resp.ServiceUnavailable("Database unavailable"))
		return
	}
	resp.Success(c.Writer, resp.Fields{
		"status":  "ok",
		"name":    s.config.AppName,
		"version": version.GetVersionInfo().Version,
	})
}
