// ABOUTME: Server orchestrator owning the HTTP listener, store, codec and limiter state
// ABOUTME: Manages startup, graceful shutdown and the lifetime of the cooldown tables

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/2389/tollgate/internal/auth"
	"github.com/2389/tollgate/internal/config"
	"github.com/2389/tollgate/internal/ratelimit"
	"github.com/2389/tollgate/internal/store"
)

// Server owns every long-lived component of tollgate.
// Both cooldown tables are created once here and shared by every request.
type Server struct {
	config         *config.Config
	store          store.UserStore
	codec          auth.TokenCodec
	addressTable   *ratelimit.Table
	principalTable *ratelimit.Table
	httpServer     *http.Server
	logger         *slog.Logger
}

// initStore creates and returns a store based on config and environment.
func initStore(cfg *config.Config) (store.UserStore, error) {
	dbPath := cfg.Database.Path
	if envPath := os.Getenv("TOLLGATE_DB_PATH"); envPath != "" {
		dbPath = envPath
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing store: %w", err)
	}
	return s, nil
}

// New creates a Server with a SQLite store at cfg.Database.Path.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	s, err := initStore(cfg)
	if err != nil {
		return nil, err
	}

	srv, err := NewWithStore(cfg, s, logger)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	return srv, nil
}

// NewWithStore creates a Server around an existing store.
// The server takes ownership of the store and closes it on Shutdown.
func NewWithStore(cfg *config.Config, s store.UserStore, logger *slog.Logger, tableOpts ...ratelimit.TableOption) (*Server, error) {
	codec, err := auth.NewJWTCodec([]byte(cfg.Auth.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("creating token codec: %w", err)
	}

	srv := &Server{
		config:         cfg,
		store:          s,
		codec:          codec,
		addressTable:   ratelimit.NewTable(cfg.RateLimit.AddressCooldown, tableOpts...),
		principalTable: ratelimit.NewTable(cfg.RateLimit.PrincipalCooldown, tableOpts...),
		logger:         logger.With("component", "server"),
	}

	if cfg.RateLimit.SweepInterval > 0 {
		srv.addressTable.StartSweep(cfg.RateLimit.SweepInterval)
		srv.principalTable.StartSweep(cfg.RateLimit.SweepInterval)
		srv.logger.Info("rate-limit sweep enabled", "interval", cfg.RateLimit.SweepInterval)
	}

	mux := http.NewServeMux()
	srv.registerRoutes(mux)

	srv.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return srv, nil
}

// Handler returns the root HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
// Returns nil on graceful shutdown (context canceled), or an error if the server fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening on HTTP address: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting tollgate",
		"http_addr", ln.Addr().String(),
		"address_cooldown", s.addressTable.Cooldown(),
		"principal_cooldown", s.principalTable.Cooldown(),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
		close(errCh)
	}()

	var serverErr error
	select {
	case <-ctx.Done():
	case serverErr = <-errCh:
	}

	shutdownErr := s.gracefulShutdown()

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() since the caller's context is already canceled.
func (s *Server) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

// appendCloseError appends an error with label if err is non-nil.
func appendCloseError(errs []error, label string, err error) []error {
	if err != nil {
		return append(errs, fmt.Errorf("%s: %w", label, err))
	}
	return errs
}

// Shutdown gracefully stops the HTTP server and releases resources.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down tollgate")

	var errs []error
	errs = appendCloseError(errs, "HTTP shutdown", s.httpServer.Shutdown(ctx))
	errs = appendCloseError(errs, "store close", s.store.Close())

	s.addressTable.Close()
	s.principalTable.Close()

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(errs...))
	}
	return nil
}
