// Package api provides the HTTP API for VoltGo.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Shashankvwali/VoltGo/internal/api/handler"
	"github.com/Shashankvwali/VoltGo/internal/api/middleware"
	"github.com/Shashankvwali/VoltGo/internal/api/models"
	"github.com/Shashankvwali/VoltGo/internal/api/response"
	"github.com/Shashankvwali/VoltGo/internal/auth"
	"github.com/Shashankvwali/VoltGo/internal/session"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version        string
	BuildTime      string
	Logger         zerolog.Logger
	ServiceName    string
	Metrics        *middleware.Metrics
	Sessions       *session.Service
	Tokens         *auth.TokenService
	RequireTLS     bool
	AllowedOrigins []string
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "voltgo-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))         // Structured logging
	r.Use(middleware.Recovery(cfg.Logger))       // Panic recovery
	r.Use(chimiddleware.RealIP)                  // Real IP extraction
	r.Use(middleware.CORS(cfg.AllowedOrigins))   // Browser front-end
	r.Use(middleware.SecurityHeaders)            // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS(cfg.RequireTLS)) // TLS enforcement behind a load balancer
	r.Use(middleware.ContentTypeJSON)            // JSON content type

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, r, "no route matches "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		problem := models.NewProblem(
			models.ProblemTypeValidation,
			"Method not allowed",
			http.StatusMethodNotAllowed,
			middleware.GetRequestID(r.Context()),
		)
		problem.Detail = r.Method + " is not supported on " + r.URL.Path
		response.Error(w, r, problem)
	})

	catalog := cfg.Sessions.Catalog()

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, catalog)
	stationHandler := handler.NewStationHandler(catalog)
	sessionHandler := handler.NewSessionHandler(cfg.Sessions, cfg.Tokens, cfg.Logger)

	sessionAuth := middleware.Session(cfg.Tokens)

	createRateLimit := middleware.RateLimitByIP(middleware.SessionCreateRateLimit) // 20 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)    // 120 req/min

	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// Catalog endpoints (public, read-only)
		r.Route("/stations", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", stationHandler.ListStations)
			r.Get("/{stationId}", stationHandler.GetStation)
		})

		r.With(createRateLimit).Post("/sessions", sessionHandler.CreateSession)

		// Session endpoints (bearer session token) - per-session rate limiting
		r.Route("/session", func(r chi.Router) {
			r.Use(sessionAuth)
			r.Use(middleware.RateLimitBySession(middleware.StandardRateLimit))
			r.Use(middleware.RequireJSON)

			r.Get("/", sessionHandler.GetSession)
			r.Delete("/", sessionHandler.EndSession)
			r.Post("/search", sessionHandler.Search)

			r.Route("/stations/{stationId}/reservation", func(r chi.Router) {
				r.Post("/", sessionHandler.Reserve)
				r.Delete("/", sessionHandler.Cancel)
			})
		})
	})

	return r
}
