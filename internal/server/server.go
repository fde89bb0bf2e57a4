// Package server is a development backend for todoui. It serves the todo RPC
// procedures over HTTP from a storage.Repository.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sandeepkv93/todoui/internal/api"
	"github.com/sandeepkv93/todoui/internal/storage"
)

type Server struct {
	repo     storage.Repository
	logger   *zap.Logger
	metrics  *Metrics
	router   *gin.Engine
	handlers map[string]gin.HandlerFunc
}

type pinger interface {
	Ping(ctx context.Context) error
}

// New builds the router. registry receives the RPC metrics and backs
// /metrics.
func New(repo storage.Repository, logger *zap.Logger, registry *prometheus.Registry) (*Server, error) {
	if repo == nil {
		return nil, errors.New("server: nil repository")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if err := registerValidation(); err != nil {
		return nil, fmt.Errorf("register validation: %w", err)
	}

	s := &Server{
		repo:    repo,
		logger:  logger,
		metrics: NewMetrics(registry),
	}
	s.handlers = map[string]gin.HandlerFunc{
		api.ProcCreateTodo:       s.createTodo,
		api.ProcListTodos:        s.listTodos,
		api.ProcUpdateTodoStatus: s.updateTodoStatus,
		api.ProcDeleteTodo:       s.deleteTodo,
	}

	router := gin.New()
	router.Use(requestID())
	router.Use(requestLogger(logger, s.metrics, s.knownProcedure))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic in handler",
			zap.Any("panic", recovered),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
		sendError(c, api.CodeInternal, "internal error")
	}))

	router.GET("/healthz", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	router.POST("/api/:procedure", s.dispatch)
	s.router = router
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) knownProcedure(name string) bool {
	_, ok := s.handlers[name]
	return ok
}

func (s *Server) health(c *gin.Context) {
	if p, ok := s.repo.(pinger); ok {
		if err := p.Ping(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) dispatch(c *gin.Context) {
	procedure := c.Param("procedure")
	handler, ok := s.handlers[procedure]
	if !ok {
		sendError(c, api.CodeNotFound, fmt.Sprintf("unknown procedure %q", procedure))
		return
	}
	handler(c)
}
