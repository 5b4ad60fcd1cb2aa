package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"propertylisting/src/services/auth"
	"propertylisting/src/services/listings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// HealthCheck é uma dependência consultada pelo /healthz.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Server representa o servidor HTTP da API
type Server struct {
	logger         *slog.Logger
	server         *http.Server
	router         chi.Router
	addr           string
	listingService *listings.ListingService
	authService    *auth.AuthService
	tokens         *auth.TokenIssuer
	healthChecks   []HealthCheck
}

func NewServer(
	logger *slog.Logger,
	addr string,
	listingService *listings.ListingService,
	authService *auth.AuthService,
	tokens *auth.TokenIssuer,
	healthChecks ...HealthCheck,
) *Server {
	server := &Server{
		logger:         logger,
		router:         chi.NewRouter(),
		addr:           addr,
		listingService: listingService,
		authService:    authService,
		tokens:         tokens,
		healthChecks:   healthChecks,
	}

	server.server = &http.Server{
		Addr:         addr,
		Handler:      server.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	server.routes()

	return server
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.Health)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/authenticate", s.Authenticate)

		// /properties é o caminho antigo, mantido para clientes existentes
		for _, resource := range []string{"/listings", "/properties"} {
			// Rotas de Leitura
			r.Get(resource, s.ListListings)
			r.Get(resource+"/{id}", s.GetListing)

			// Rotas de Escrita
			r.Group(func(r chi.Router) {
				r.Use(requireBearer(s.tokens, s.logger))
				r.Post(resource, s.CreateListing)
				r.Put(resource+"/{id}", s.UpdateListing)
				r.Patch(resource+"/{id}", s.UpdateListing)
				r.Delete(resource+"/{id}", s.DeleteListing)
			})
		}
	})
}

// Handler expõe o roteador completo, usado em testes com httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Server started", "addr", s.addr)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
