package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/tutorlink/internal/bootstrap"
	"github.com/oguzk/tutorlink/internal/config"
	"github.com/oguzk/tutorlink/internal/pkg/logger"
)

// Server wraps the HTTP server together with its database pool so both
// can be shut down in order.
type Server struct {
	config *config.Config
	router *gin.Engine
	dbPool *pgxpool.Pool
	http   *http.Server
}

// NewServer loads configuration, connects the database, builds all
// application dependencies and returns a server ready to run.
func NewServer() (*Server, error) {
	cfg, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to build dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps)

	return &Server{
		config: cfg,
		router: router,
		dbPool: dbPool,
		http: &http.Server{
			Addr:    ":" + cfg.Server.Port,
			Handler: router,
		},
	}, nil
}

// Run starts the HTTP server and blocks until a shutdown signal is
// received or the listener fails.
func (s *Server) Run() error {
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().Str("port", s.config.Server.Port).Str("mode", s.config.Server.Mode).Msg("Starting HTTP server")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		s.dbPool.Close()
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		return s.shutdown()
	}
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		s.dbPool.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	s.dbPool.Close()
	logger.Info().Msg("Server stopped")
	return nil
}
