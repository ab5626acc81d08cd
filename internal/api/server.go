package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/amaumene/cinedeck/internal/api/handlers"
	"github.com/amaumene/cinedeck/internal/api/middleware"
	"github.com/amaumene/cinedeck/internal/config"
	"github.com/amaumene/cinedeck/internal/controllers"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Controllers groups the state the HTTP API exposes
type Controllers struct {
	Movies  *controllers.MovieController
	Details *controllers.DetailsController
	Genres  *controllers.GenreController
	Session *controllers.SessionController
	Theme   *controllers.ThemeController
	Search  handlers.SearchInput
}

// Server represents the HTTP server
type Server struct {
	server   *http.Server
	ctrls    Controllers
	gatherer prometheus.Gatherer
	logger   *logrus.Logger
}

// NewServer creates a new HTTP server. gatherer backs /metrics and may be nil.
func NewServer(cfg *config.Config, ctrls Controllers, gatherer prometheus.Gatherer, logger *logrus.Logger) *Server {
	s := &Server{
		ctrls:    ctrls,
		gatherer: gatherer,
		logger:   logger,
	}

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Router configures all HTTP routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logging(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", handlers.NewHealthHandler(s.logger).ServeHTTP)
	r.Get("/status", handlers.NewStatusHandler(s.ctrls.Movies, s.ctrls.Session, s.ctrls.Theme, s.logger).ServeHTTP)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	movies := handlers.NewMoviesHandler(s.ctrls.Movies, s.ctrls.Search, s.logger)
	details := handlers.NewDetailsHandler(s.ctrls.Details, s.ctrls.Genres, s.logger)
	favorites := handlers.NewFavoritesHandler(s.ctrls.Movies, s.ctrls.Session, s.logger)
	history := handlers.NewHistoryHandler(s.ctrls.Movies, s.logger)
	session := handlers.NewSessionHandler(s.ctrls.Session, s.logger)
	theme := handlers.NewThemeHandler(s.ctrls.Theme, s.logger)

	r.Route("/api", func(r chi.Router) {
		// Listing
		r.Get("/movies", movies.List)
		r.Post("/movies/more", movies.More)
		r.Get("/movies/{id}", details.Movie)
		r.Post("/search", movies.Search)
		r.Get("/filters", movies.GetFilters)
		r.Put("/filters", movies.PutFilters)
		r.Delete("/filters", movies.ClearFilters)
		r.Delete("/error", movies.DismissError)
		r.Get("/top-picks", movies.TopPicks)
		r.Get("/genres", details.Genres)

		// Favorites
		r.Get("/favorites", favorites.List)
		r.Post("/favorites", favorites.Add)
		r.Delete("/favorites/{id}", favorites.Remove)

		// Search history
		r.Get("/history", history.List)
		r.Delete("/history", history.Clear)
		r.Get("/history/suggest", history.Suggest)

		// Session
		r.Post("/login", session.Login)
		r.Post("/logout", session.Logout)
		r.Get("/session", session.Get)

		// Theme
		r.Get("/theme", theme.Get)
		r.Put("/theme", theme.Put)
		r.Post("/theme/toggle", theme.Toggle)
	})

	return r
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
