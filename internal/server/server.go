package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"narrator/internal/api"
	"narrator/internal/config"
	"narrator/internal/logging"
)

// ErrAlreadyRunning is returned when another server holds the state directory lock.
var ErrAlreadyRunning = errors.New("another narrator server is already running")

// Options wires a Server to its collaborators.
type Options struct {
	Config     *config.Config
	Conversion *api.ConversionService
	History    *api.HistoryService
	Logger     *slog.Logger
	Version    string
}

// Server is the HTTP upload adapter.
type Server struct {
	cfg        *config.Config
	conversion *api.ConversionService
	history    *api.HistoryService
	logger     *slog.Logger
	version    string

	lock      *flock.Flock
	listener  net.Listener
	server    *http.Server
	startedAt time.Time
	served    atomic.Int64
}

// New constructs a Server. It does not bind or lock until Start.
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if opts.Conversion == nil {
		return nil, errors.New("server: conversion service is required")
	}
	s := &Server{
		cfg:        opts.Config,
		conversion: opts.Conversion,
		history:    opts.History,
		logger:     logging.NewComponentLogger(opts.Logger, "server"),
		version:    opts.Version,
		lock:       flock.New(opts.Config.LockPath()),
		startedAt:  time.Now(),
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the routed, authenticated, and logged HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/convert", s.handleConvert)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/status", s.handleStatus)
	return requestLogger(s.logger, authMiddleware(s.cfg.Server.Token, mux))
}

// Start acquires the state directory lock, binds the listener, and serves in
// the background until ctx is cancelled or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	if err := s.cfg.EnsureDirectories(); err != nil {
		return err
	}
	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, s.cfg.LockPath())
	}

	listener, err := net.Listen("tcp", s.cfg.Server.Bind)
	if err != nil {
		_ = s.lock.Unlock()
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener
	s.startedAt = time.Now()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening",
		logging.String("address", listener.Addr().String()),
		logging.Bool("auth", s.cfg.Server.Token != ""),
		logging.Bool("history", s.conversion.HistoryEnabled()),
	)
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down and releases the lock. It is safe to call twice.
func (s *Server) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
	if s.lock.Locked() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("failed to release server lock", logging.Error(err))
		}
	}
}

// Run starts the server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	s.logger.Info("api server stopped", logging.Int64("conversions_served", s.served.Load()))
	return nil
}
