// Package api provides the HTTP API server and handlers for the lead dashboard.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/leadboard/leadboard-server/internal/metrics"
	"github.com/leadboard/leadboard-server/internal/ratelimit"
)

// Version is reported in the OpenAPI document.
const Version = "1.0.0"

// Pinger reports whether the entity database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures the HTTP surface.
type Options struct {
	CORSAllowedOrigins []string
	// SecureCookies marks the session cookie Secure. Enabled in production.
	SecureCookies   bool
	SessionDuration time.Duration
	// LoginRateLimit is the number of login attempts per client IP per minute.
	LoginRateLimit int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	db           Pinger
	services     *Services
	router       *chi.Mux
	api          huma.API
	metrics      *metrics.Metrics
	loginLimiter *ratelimit.KeyedRateLimiter
	opts         Options
	logger       *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(db Pinger, services *Services, m *metrics.Metrics, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		db:           db,
		services:     services,
		router:       router,
		metrics:      m,
		loginLimiter: ratelimit.PerMinute(opts.LoginRateLimit),
		opts:         opts,
		logger:       logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Leadboard API", Version)
	// Response bodies stay bare: no $schema links.
	humaConfig.CreateHooks = nil
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
		"cookie": {
			Type: "apiKey",
			In:   "cookie",
			Name: sessionCookieName,
		},
	}

	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler(logger)

	router.Handle("/metrics", m.Handler())

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerLeadRoutes()
	s.registerTagRoutes()
	s.registerUserRoutes()
	s.registerWebsiteRoutes()
	s.registerAdminRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, used by tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	s.loginLimiter.Stop()
}

// setupMiddleware configures the middleware stack. Must run before any route is registered.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.metrics.Middleware)
	s.router.Use(corsMiddleware(s.opts.CORSAllowedOrigins))
	s.router.Use(authMiddleware(s.services.Auth))
}

// dashboardSecurity is attached to operations that need a signed-in employee.
var dashboardSecurity = []map[string][]string{{"bearer": {}}, {"cookie": {}}}
