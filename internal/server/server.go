// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server provides the HTTP upload front end: a minimal upload page
// plus a JSON analysis API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/pdfcheck/internal/extract"
	"github.com/pdiddy/pdfcheck/internal/history"
	"github.com/pdiddy/pdfcheck/pkg/types"
)

// Server serves the upload page and the analysis API.
type Server struct {
	extractor   extract.Extractor
	check       types.CheckConfig
	profilesDir string
	store       *history.Store
	logger      *slog.Logger
	addr        string
	maxUpload   int64
}

// Config holds the server's collaborators and settings.
type Config struct {
	// Extractor parses uploaded documents.
	Extractor extract.Extractor

	// Check holds the format rules applied to uploads.
	Check types.CheckConfig

	// ProfilesDir is the optional user profiles directory.
	ProfilesDir string

	// Store, when non-nil, records every completed analysis.
	Store *history.Store

	// Logger receives request and analysis logs.
	Logger *slog.Logger

	// Server holds the listen address and upload cap.
	Server types.ServerConfig
}

// NewServer builds a Server from cfg, applying defaults for the listen
// address, upload cap, and logger.
func NewServer(cfg Config) *Server {
	def := types.DefaultServerConfig()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Addr
	}
	if cfg.Server.MaxUploadMB <= 0 {
		cfg.Server.MaxUploadMB = def.MaxUploadMB
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		extractor:   cfg.Extractor,
		check:       cfg.Check,
		profilesDir: cfg.ProfilesDir,
		store:       cfg.Store,
		logger:      logger,
		addr:        cfg.Server.Addr,
		maxUpload:   cfg.Server.MaxUploadMB << 20,
	}
}

// Routes returns the mux serving the upload page and API.
func (s *Server) Routes() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealthz)
	r.Post("/api/analyze", s.handleAnalyze)

	return r
}

// Serve starts the HTTP server and blocks until the context is cancelled
// or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting server", "addr", s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
