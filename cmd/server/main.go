package main

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"folio/app/internal/admin"
	"folio/app/internal/auth"
	"folio/app/internal/backend"
	"folio/app/internal/config"
	apphttp "folio/app/internal/http"
	applog "folio/app/internal/log"
	"folio/app/internal/portfolio"
	"folio/app/internal/site"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return eris.Wrap(err, "failure loading configuration")
	}

	logger, err := applog.NewLogger(applog.Options{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
	})
	if err != nil {
		return eris.Wrap(err, "failure initialising logger")
	}

	selected, err := backend.Select(ctx, backend.Settings{
		Kind:            backend.Kind(cfg.DataBackend),
		SupabaseURL:     cfg.SupabaseURL,
		SupabaseAnonKey: cfg.SupabaseAnonKey,
		DBPath:          cfg.DBPath,
		AdminEmail:      cfg.AdminEmail,
		AdminPassword:   cfg.AdminPassword,
		JWTSecret:       cfg.JWTSecret,
	}, logger)
	if err != nil {
		return eris.Wrap(err, "selecting data backend")
	}
	defer func() {
		if closeErr := selected.Close(); closeErr != nil {
			logger.WithError(closeErr).Error("closing data backend")
		}
	}()

	sentryHub, flush, err := applog.InitSentry(logger, applog.SentrySettings{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
		Backend:     string(selected.Kind),
	})
	if err != nil {
		return eris.Wrap(err, "failure initialising sentry")
	}
	defer flush()

	sessionStore, closeSessions, err := openSessionStore(ctx, cfg)
	if err != nil {
		return eris.Wrap(err, "opening session store")
	}
	defer closeSessions()

	sessions, err := auth.NewManager(sessionStore, selected.Auth, logger)
	if err != nil {
		return eris.Wrap(err, "creating session manager")
	}

	audit := applog.Component(logger, "auth")
	subscription := sessions.Subscribe(func(event auth.Event, session *auth.Session) {
		entry := audit.WithField("event", string(event))
		if session != nil {
			entry = entry.WithField("email", session.User.Email)
		}
		entry.Info("admin auth state changed")
	})
	defer subscription.Unsubscribe()

	workspaces, err := admin.NewRegistry(selected.Store, admin.RegistryOptions{
		TTL:        cfg.SessionTTL,
		SuccessTTL: cfg.SuccessBannerTTL,
		Logger:     logger,
	})
	if err != nil {
		return eris.Wrap(err, "creating admin workspaces")
	}

	loader, err := portfolio.NewLoader(selected.Store, logger)
	if err != nil {
		return eris.Wrap(err, "creating portfolio loader")
	}

	transport, err := apphttp.NewServer(apphttp.Options{
		Loader:      loader,
		Sessions:    sessions,
		Workspaces:  workspaces,
		Contact:     site.NewContact(logger),
		Health:      selected,
		Logger:      logger,
		SentryHub:   sentryHub,
		BackendKind: string(selected.Kind),
		RateLimiter: apphttp.RateLimiterSettings{
			Requests: cfg.RateLimitRequests,
			Period:   cfg.RateLimitPeriod,
		},
		AllowedOrigins: cfg.AllowedOrigins,
		SecureCookies:  cfg.SecureCookies,
		SessionTTL:     cfg.SessionTTL,
	})
	if err != nil {
		return eris.Wrap(err, "initialising http transport")
	}

	httpServer := &stdhttp.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.ServerPort),
		Handler: transport.Handler(),
	}

	logger.WithFields(logrus.Fields{
		"addr":    httpServer.Addr,
		"backend": selected.Kind,
		"session": cfg.SessionStore,
	}).Info("starting http server")

	serverErrCh := make(chan error, 1)
	go func() {
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			return eris.Wrap(err, "http server error")
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "shutting down http server")
	}

	logger.Info("http server shut down cleanly")
	return nil
}

func openSessionStore(ctx context.Context, cfg *config.Config) (auth.SessionStore, func(), error) {
	if cfg.SessionStore != "redis" {
		return auth.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	}

	store, err := auth.NewRedisStore(ctx, auth.RedisOptions{
		Addr: cfg.RedisAddr,
		TTL:  cfg.SessionTTL,
	})
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}
