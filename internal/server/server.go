// Package server wires the application together: storage backend, services,
// handlers, middleware, and routes, plus start/stop lifecycle.
//
// This is the composition root — every dependency is constructed and
// connected here, in one place, rather than scattered across packages.
// main.go just reads configuration and calls New/Start.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/hiredesk/internal/auth"
	"github.com/sakif/hiredesk/internal/handler"
	"github.com/sakif/hiredesk/internal/middleware"
	"github.com/sakif/hiredesk/internal/repository"
	"github.com/sakif/hiredesk/internal/repository/memory"
	sqliteRepo "github.com/sakif/hiredesk/internal/repository/sqlite"
	"github.com/sakif/hiredesk/internal/service"
)

// Backend names accepted in Config.StoreBackend.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds server configuration, loaded from the environment in main.
type Config struct {
	Port         int
	StoreBackend string // "memory" or "sqlite"
	DBPath       string // used only by the sqlite backend

	JWTSecret          string
	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string
}

// Server owns the router and the storage backend. The backend is selected
// once at construction and never swapped at runtime; if it needs closing
// (sqlite does, memory doesn't), Start closes it on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	store  repository.Store
	closer io.Closer // nil for the memory backend
}

// New builds the full dependency graph:
//
//	store (memory|sqlite) → services → handlers → routes
//
// Each layer receives only what it needs: services get the repository
// interfaces, handlers get the services. Nothing below the composition
// root knows which backend is running.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	store, closer, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
		closer: closer,
	}

	s.setupRoutes(tokens)
	return s, nil
}

// openStore selects the storage backend from configuration.
func openStore(cfg Config, logger *slog.Logger) (repository.Store, io.Closer, error) {
	switch cfg.StoreBackend {
	case BackendMemory, "":
		logger.Info("using in-memory store — records will not survive a restart")
		return memory.New(), nil, nil
	case BackendSQLite:
		db, err := sqliteRepo.New(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Info("using sqlite store", slog.String("path", cfg.DBPath))
		return db, db, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q (want %q or %q)",
			cfg.StoreBackend, BackendMemory, BackendSQLite)
	}
}

// setupRoutes configures middleware and every route.
//
// ROUTE MAP:
//
//	GET    /health                    → liveness probe (public)
//	GET    /auth/github/login         → redirect to provider (public)
//	GET    /auth/github/callback      → complete login (public)
//	POST   /auth/logout               → clear session cookie (public)
//	GET    /auth/user                 → current user          ┐
//	GET    /dashboard/stats           → aggregate counts      │
//	GET/POST /positions, PUT/DELETE /positions/{id}           ├ RequireAuth
//	GET/POST /candidates, PUT/DELETE /candidates/{id}         ┘
//
// Admission happens in the middleware, so a rejected request never reaches
// a handler and the store is provably untouched by it.
func (s *Server) setupRoutes(tokens *auth.TokenService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Services and handlers.
	positionSvc := service.NewPositionService(s.store, s.logger)
	candidateSvc := service.NewCandidateService(s.store, s.logger)
	dashboardSvc := service.NewDashboardService(s.store, s.logger)
	authSvc := service.NewAuthService(s.store, tokens, s.logger)

	provider := auth.NewGitHubProvider(
		s.config.GitHubClientID,
		s.config.GitHubClientSecret,
		s.config.GitHubCallbackURL,
	)

	positionHandler := handler.NewPositionHandler(positionSvc, s.logger)
	candidateHandler := handler.NewCandidateHandler(candidateSvc, s.logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, s.logger)
	authHandler := handler.NewAuthHandler(provider, authSvc, s.logger)

	// Public: the login/logout choreography itself.
	s.router.Get("/auth/github/login", authHandler.HandleLogin)
	s.router.Get("/auth/github/callback", authHandler.HandleCallback)
	s.router.Post("/auth/logout", authHandler.HandleLogout)

	// Everything else requires an admitted session.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Get("/auth/user", authHandler.HandleUser)
		r.Get("/dashboard/stats", dashboardHandler.HandleStats)

		r.Get("/positions", positionHandler.HandleList)
		r.Post("/positions", positionHandler.HandleCreate)
		r.Put("/positions/{id}", positionHandler.HandleUpdate)
		r.Delete("/positions/{id}", positionHandler.HandleDelete)

		r.Get("/candidates", candidateHandler.HandleList)
		r.Post("/candidates", candidateHandler.HandleCreate)
		r.Put("/candidates/{id}", candidateHandler.HandleUpdate)
		r.Delete("/candidates/{id}", candidateHandler.HandleDelete)
	})
}

// Router exposes the configured router, mainly for tests that drive the
// full HTTP surface with httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 30 seconds and closes the storage backend.
func (s *Server) Start() error {
	if s.closer != nil {
		defer s.closer.Close()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("backend", s.config.StoreBackend),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
