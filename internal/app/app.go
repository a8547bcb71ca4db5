// Package app wires configuration, storage, services, and transports into a
// running HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/storylab/backend/internal/auth"
	"github.com/storylab/backend/internal/config"
	"github.com/storylab/backend/internal/presence"
	authsvc "github.com/storylab/backend/internal/service/auth"
	"github.com/storylab/backend/internal/service/focus"
	"github.com/storylab/backend/internal/service/meta"
	"github.com/storylab/backend/internal/service/user"
	"github.com/storylab/backend/internal/storage/jsonstore"
	"github.com/storylab/backend/internal/transport/middleware"
	"github.com/storylab/backend/internal/transport/rest"
	"github.com/storylab/backend/internal/transport/ws"
)

// Run is the application entry point. It loads configuration, opens the
// flat-file store, constructs services and transports, and serves HTTP until
// ctx is canceled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("data_dir", cfg.Storage.DataDir),
	)

	store, err := jsonstore.New(cfg.Storage.DataDir)
	if err != nil {
		return err
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	authService := authsvc.NewService(logger, store.Users(), jwtManager, cfg.Auth)
	userService := user.NewService(logger, store.Users())
	focusService := focus.NewService(logger, store.Focos())
	metaService := meta.NewService(logger, store.Metas())

	tracker := presence.NewTracker(logger, store.Users())
	wsHandler := ws.NewHandler(logger, authService, tracker)

	var rateLimiter *middleware.RateLimiter
	var rateLimit middleware.Middleware
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		defer rateLimiter.Stop()
		rateLimit = rateLimiter.Limit(cfg.RateLimit.MaxPerMinute)
	}

	router := rest.NewRouter(rest.RouterDeps{
		Log:       logger,
		Config:    cfg,
		Auth:      rest.NewAuthHandler(authService, logger),
		Users:     rest.NewUserHandler(userService, logger),
		Focos:     rest.NewFocusHandler(focusService, logger),
		Metas:     rest.NewMetaHandler(metaService, logger),
		Presence:  rest.NewPresenceHandler(tracker, logger),
		Health:    rest.NewHealthHandler(store, BuildVersion()),
		WS:        wsHandler.Serve,
		TokenAuth: middleware.Auth(authService),
		RateLimit: rateLimit,
	})

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	// Read/write timeouts would kill long-lived WebSocket connections, so
	// only the header read and idle timeouts apply server-wide.
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
