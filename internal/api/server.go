// Package api provides the HTTP API server and handlers for the Lendly application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lendlyapp/lendly-server/internal/ratelimit"
	"github.com/lendlyapp/lendly-server/internal/service"
	"github.com/lendlyapp/lendly-server/internal/store"
)

// APIVersion is reported in the OpenAPI document.
const APIVersion = "1.0.0"

// Login attempts are limited per client IP.
const (
	loginRatePerSecond = 10.0 / 60.0
	loginBurst         = 5
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store        *store.Store
	services     *service.Services
	router       *chi.Mux
	api          huma.API
	logger       *slog.Logger
	loginLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(store *store.Store, services *service.Services, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	humaConfig := huma.DefaultConfig("Lendly API", APIVersion)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:        store,
		services:     services,
		router:       router,
		api:          api,
		logger:       logger,
		loginLimiter: ratelimit.New(loginRatePerSecond, loginBurst),
	}

	s.registerHealthRoutes()
	s.registerUserRoutes()
	s.registerBookRoutes()
	s.registerCategoryRoutes()
	s.registerTicketRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
