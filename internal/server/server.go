package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/snonux/poplingo/internal/processor"
)

// DefaultAddr is the listen address used when none is configured
const DefaultAddr = "127.0.0.1:8080"

const shutdownTimeout = 5 * time.Second

// Server serves the HTTP API
type Server struct {
	proc   *processor.Processor
	logger *slog.Logger
	router *gin.Engine
}

// New creates a server around proc
func New(proc *processor.Processor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{proc: proc, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler of the API
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger), cors())

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	{
		api.GET("/languages", s.listLanguages)
		api.GET("/settings", s.getSettings)
		api.PUT("/settings", s.putSettings)

		api.POST("/lookup", s.lookup)
		api.GET("/lookup/current", s.currentLookup)

		api.GET("/notebook", s.listNotebook)
		api.POST("/notebook", s.addEntry)
		api.POST("/notebook/toggle", s.toggleEntry)
		api.GET("/notebook/:id", s.getEntry)
		api.DELETE("/notebook/:id", s.deleteEntry)

		api.POST("/story", s.story)
		api.POST("/speech", s.speech)
	}

	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
