package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vannaai/vannaai/internal/config"
	"github.com/vannaai/vannaai/internal/service"
)

type Server struct {
	cfg  *config.Config
	http *http.Server
	pg   *service.PostgresService // held for graceful close
}

func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	s := &Server{cfg: cfg}

	router, pg, err := s.setupRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("setup routes: %w", err)
	}
	s.pg = pg

	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.http.Addr).Msg("listening")
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("graceful shutdown initiated")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := s.http.Shutdown(shutdownCtx)
		s.closePool()
		return err
	case err := <-errCh:
		s.closePool()
		return err
	}
}

// closePool releases the database pool on every exit path of Run, including a
// listener that fails before serving a single request.
func (s *Server) closePool() {
	if s.pg == nil {
		return
	}
	if err := s.pg.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing database pool")
	} else {
		log.Info().Msg("database pool closed")
	}
}
