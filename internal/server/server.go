// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root where the whole
// dependency graph is assembled in one place:
//
//	store (mongodb or memory) → repositories
//	repositories → services (auth, photo, user)
//	services → GraphQL root resolver → parsed schema → relay handler
//
// main.go stays minimal: it loads config, builds a logger, and calls
// New + Start.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/sakif/photoshare/internal/auth"
	"github.com/sakif/photoshare/internal/graph"
	"github.com/sakif/photoshare/internal/handler"
	"github.com/sakif/photoshare/internal/middleware"
	"github.com/sakif/photoshare/internal/repository"
	"github.com/sakif/photoshare/internal/repository/memory"
	"github.com/sakif/photoshare/internal/repository/mongodb"
	"github.com/sakif/photoshare/internal/service"
)

// Config holds server configuration, carried over from internal/config so
// this package doesn't depend on how the values were loaded.
type Config struct {
	Port               int
	GithubClientID     string
	GithubClientSecret string
	MongoURI           string // empty means: run on the in-memory store
	MongoDB            string
}

// Server owns the router and the store connection (when there is one).
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	mongo  *mongodb.Store // nil when running on the in-memory store
}

// New assembles the full dependency graph and verifies the GraphQL schema
// against its resolvers. A schema/resolver mismatch is a programming error
// and fails here, at startup.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	var (
		users  repository.UserRepository
		photos repository.PhotoRepository
		mongo  *mongodb.Store
	)

	if cfg.MongoURI != "" {
		store, err := mongodb.New(context.Background(), cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("opening document store: %w", err)
		}
		mongo = store
		users = store.Users()
		photos = store.Photos()
	} else {
		// No store configured — boot on the in-memory implementation so
		// local development works out of the box. Data is lost on exit.
		logger.Warn("MONGO_URI not set — using in-memory store, data will not persist")
		mem := memory.New()
		users = mem.Users()
		photos = mem.Photos()
	}

	if cfg.GithubClientID == "" || cfg.GithubClientSecret == "" {
		logger.Warn("GitHub OAuth credentials not set — githubAuth will be rejected by the provider")
	}

	provider := auth.NewProvider(cfg.GithubClientID, cfg.GithubClientSecret)

	authSvc := service.NewAuthService(provider, users, logger)
	photoSvc := service.NewPhotoService(photos, logger)
	userSvc := service.NewUserService(users, logger)

	schema, err := graph.ParseSchema(graph.NewResolver(photoSvc, userSvc, authSvc))
	if err != nil {
		if mongo != nil {
			_ = mongo.Close(context.Background())
		}
		return nil, fmt.Errorf("parsing GraphQL schema: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		mongo:  mongo,
	}
	s.setupRoutes(schema, authSvc)

	return s, nil
}

// setupRoutes configures middleware and routes.
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID — assigns unique ID to each request (for tracing)
// 2. RealIP — extracts real client IP from proxy headers
// 3. Recoverer — catches panics and returns 500 instead of crashing
// 4. Logger — logs each request with timing info
// 5. auth.Middleware — resolves the bearer token to a user, per request,
//    BEFORE the GraphQL executor runs, so every resolver sees the identity
func (s *Server) setupRoutes(schema *graphql.Schema, tokens auth.TokenResolver) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(auth.Middleware(tokens))

	graphiql := handler.NewGraphiQLHandler(s.logger)
	s.router.Get("/", graphiql.HandleGraphiQL)
	s.router.Get("/healthz", handler.HandleHealth)

	// The relay handler decodes {"query", "operationName", "variables"}
	// POST bodies and executes them against the schema.
	s.router.Handle("/graphql", &relay.Handler{Schema: schema})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests for up
// to 30 seconds, and disconnect the store so pending writes flush.
func (s *Server) Start() error {
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
			slog.String("graphql", fmt.Sprintf("http://localhost:%d/graphql", s.config.Port)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			s.closeStore()
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			s.closeStore()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	s.closeStore()
	return nil
}

func (s *Server) closeStore() {
	if s.mongo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.mongo.Close(ctx); err != nil {
		s.logger.Error("closing store", slog.String("error", err.Error()))
	}
}
