package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"
)

const shutdownTimeout = 10 * time.Second

// Start runs the HTTP server until SIGINT or SIGTERM, then shuts down
// gracefully. It returns early if the listener fails.
func (s *Server) Start() error {
	addr := s.Cfg.GetAddr()
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Listening", "addr", addr, "endpoint", "http://"+addr+MessagesPath)
		if err := s.E.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	var listenErr error
	select {
	case <-quit:
		slog.Info("Shutdown signal received")
	case listenErr = <-errCh:
		slog.Error("Server failed", "error", listenErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.Join(listenErr, s.Shutdown(ctx))
}

// Shutdown stops the HTTP server, the modules and the background services.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.E.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}

	for i := len(s.modules) - 1; i >= 0; i-- {
		m := s.modules[i]
		if err := m.Shutdown(ctx); err != nil {
			slog.Error("Module shutdown failed", "module", m.Name(), "error", err)
			errs = append(errs, err)
		}
	}

	s.cancel()
	select {
	case <-s.hub.Done():
	case <-ctx.Done():
	}

	if err := s.bus.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := injectorShutdownError(s.injector.ShutdownWithContext(ctx)); err != nil {
		errs = append(errs, err)
	}

	slog.Info("Server stopped")
	return errors.Join(errs...)
}

// injectorShutdownError returns the report as an error when a service failed
// to shut down.
func injectorShutdownError(report *do.ShutdownReport) error {
	if report == nil {
		return nil
	}
	for _, err := range report.Errors {
		if err != nil {
			return report
		}
	}
	return nil
}
