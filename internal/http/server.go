package http

import (
	"context"
	stdhttp "net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"folio/app/internal/admin"
	"folio/app/internal/auth"
	"folio/app/internal/portfolio"
	"folio/app/internal/site"
)

const apiPrefix = "/api/"

// SnapshotLoader produces the public portfolio snapshot.
type SnapshotLoader interface {
	Load(ctx context.Context) portfolio.Snapshot
}

// SessionSource hands out the session provider of a browser session id.
type SessionSource interface {
	Provider(id string) auth.Provider
}

// HealthChecker reports whether the data backend is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Options configures the HTTP server wiring.
type Options struct {
	Loader     SnapshotLoader
	Sessions   SessionSource
	Workspaces *admin.Registry
	Contact    *site.Contact
	Health     HealthChecker
	Logger     *logrus.Logger
	SentryHub  *sentry.Hub
	// BackendKind is reported by the health check.
	BackendKind    string
	RateLimiter    RateLimiterSettings
	AllowedOrigins []string
	SecureCookies  bool
	SessionTTL     time.Duration
	Now            func() time.Time
}

// Server wires the HTTP transport layer via Huma and page components.
type Server struct {
	api         huma.API
	mux         *stdhttp.ServeMux
	handler     stdhttp.Handler
	loader      SnapshotLoader
	sessions    SessionSource
	workspaces  *admin.Registry
	contact     *site.Contact
	health      HealthChecker
	backendKind string
	logger      *logrus.Logger
	sentry      *sentry.Hub
	rateLimiter *RateLimiter
	secure      bool
	sessionTTL  time.Duration
	now         func() time.Time
}

// NewServer constructs the HTTP server.
func NewServer(opts Options) (*Server, error) {
	if opts.Loader == nil {
		return nil, eris.New("snapshot loader is required")
	}
	if opts.Sessions == nil {
		return nil, eris.New("session source is required")
	}
	if opts.Workspaces == nil {
		return nil, eris.New("admin workspace registry is required")
	}

	rateLimiter, err := NewRateLimiter(opts.RateLimiter)
	if err != nil {
		return nil, err
	}

	contact := opts.Contact
	if contact == nil {
		contact = site.NewContact(opts.Logger)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	sessionTTL := opts.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}

	mux := stdhttp.NewServeMux()
	config := huma.DefaultConfig("Portfolio", "1.0.0")

	api := humago.New(mux, config)

	srv := &Server{
		api:         api,
		mux:         mux,
		loader:      opts.Loader,
		sessions:    opts.Sessions,
		workspaces:  opts.Workspaces,
		contact:     contact,
		health:      opts.Health,
		backendKind: opts.BackendKind,
		logger:      opts.Logger,
		sentry:      opts.SentryHub,
		rateLimiter: rateLimiter,
		secure:      opts.SecureCookies,
		sessionTTL:  sessionTTL,
		now:         now,
	}

	srv.registerMiddlewares()
	srv.registerRoutes()

	apiHandler := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{stdhttp.MethodGet, stdhttp.MethodHead, stdhttp.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)

	srv.handler = stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if strings.HasPrefix(r.URL.Path, apiPrefix) {
			apiHandler.ServeHTTP(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})

	return srv, nil
}

// Handler exposes the underlying HTTP handler for wiring into the application.
func (s *Server) Handler() stdhttp.Handler {
	return s.handler
}

// API exposes the underlying Huma API instance.
func (s *Server) API() huma.API {
	return s.api
}

func (s *Server) registerMiddlewares() {
	s.api.UseMiddleware(
		s.sentryMiddleware(),
		s.recoveryMiddleware(),
		s.requestIDMiddleware(),
		s.rateLimitMiddleware(),
		s.loggingMiddleware(),
	)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /favicon.ico", faviconHandler)
	s.mux.HandleFunc("GET /favicon.svg", faviconHandler)
	s.mux.Handle("GET /static/", staticHandler())

	s.registerPublicRoutes()
	s.registerAPIRoutes()
	s.registerAdminRoutes()
	s.registerHealthRoute()
}

func (s *Server) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.handler.ServeHTTP(w, r)
}
