// Package server implements the WatchCall HTTP backend: account and session
// endpoints, movie list CRUD, the catalog search proxy, and streaming
// availability windows.
package server

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/watchcall/watchcall/internal/repositories"
	"github.com/watchcall/watchcall/internal/shared"
)

// ValidServices is the fixed catalog of streaming services known to the
// backend. Preference updates and availability upserts must stay inside it.
var ValidServices = []string{"Netflix", "Disney+", "Amazon Prime", "Apple TV+", "Sky", "WOW"}

// Server wires repositories, the catalog proxy, and token issuing behind a
// chi router.
type Server struct {
	cfg     *shared.Config
	logger  *log.Logger
	users   *repositories.UserRepository
	lists   *repositories.ListRepository
	avail   *repositories.AvailabilityRepository
	catalog *Catalog
	secret  []byte
}

// New creates a [Server] from an open database and loaded configuration.
func New(cfg *shared.Config, db *sql.DB, logger *log.Logger) *Server {
	return &Server{
		cfg:     cfg,
		logger:  logger,
		users:   repositories.NewUserRepository(db),
		lists:   repositories.NewListRepository(db),
		avail:   repositories.NewAvailabilityRepository(db),
		catalog: NewCatalog(cfg.Catalog, logger),
		secret:  []byte(cfg.Server.JWTSecret),
	}
}

// Router builds the chi router with all routes registered.
func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(s.logRequests)
	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)

	r.Post("/api/register", s.handleRegister)
	r.Post("/api/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/api/me", s.handleWhoami)

		r.Get("/api/movies/search", s.handleSearch)
		r.Get("/api/movies/{id}", s.handleDetails)

		r.Get("/api/movie-lists", s.handleListLists)
		r.Post("/api/movie-lists", s.handleCreateList)
		r.Get("/api/movie-lists/{id}", s.handleGetList)
		r.Delete("/api/movie-lists/{id}", s.handleDeleteList)
		r.Post("/api/movie-lists/{id}/movies", s.handleAddMovie)
		r.Delete("/api/movie-lists/{id}/movies/{movieID}", s.handleRemoveMovie)

		r.Get("/api/streaming/{movieID}", s.handleAvailability)
		r.Post("/api/streaming/{movieID}", s.handleUpsertAvailability)
		r.Delete("/api/streaming/{movieID}/{id}", s.handleDeleteAvailability)

		r.Get("/api/services", s.handleServices)
		r.Get("/api/user/services", s.handleUserServices)
		r.Put("/api/user/services", s.handleSetUserServices)
	})

	return r
}

// Start runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Server.Addr(),
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", srv.Addr, "region", s.cfg.Server.Region)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "watchcall",
	})
}

func validService(name string) bool {
	for _, s := range ValidServices {
		if s == name {
			return true
		}
	}
	return false
}
