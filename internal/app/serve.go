package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/okian/clubrecords/internal/adapters/http/api"
	"github.com/okian/clubrecords/internal/adapters/http/site"
	"github.com/okian/clubrecords/internal/adapters/http/swagger"
	"github.com/okian/clubrecords/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// ErrNotRun is returned by Serve before Run has completed.
var ErrNotRun = errors.New("no completed run to serve")

// Handler returns the routes serving the last run: the API, its OpenAPI
// document and the HTML report.
func (s *Service) Handler(ctx context.Context) (http.Handler, error) {
	agg := s.Aggregator()
	if agg == nil {
		return nil, ErrNotRun
	}
	mux := http.NewServeMux()
	api.NewServer(agg, s).Register(ctx, mux)
	swagger.Register(ctx, mux)
	site.Register(ctx, mux, s.cfg.Output)
	return mux, nil
}

// Serve listens on cfg.Addr until ctx is cancelled.
func (s *Service) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Service) ServeListener(ctx context.Context, ln net.Listener) error {
	h, err := s.Handler(ctx)
	if err != nil {
		_ = ln.Close()
		return err
	}
	srv := &http.Server{
		Handler:           h,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "starting HTTP server", logger.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info(ctx, "server stopped")
	return nil
}
