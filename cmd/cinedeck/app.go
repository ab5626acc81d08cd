package main

import (
	"context"
	"fmt"

	"github.com/amaumene/cinedeck/internal/config"
	"github.com/amaumene/cinedeck/internal/controllers"
	"github.com/amaumene/cinedeck/internal/models"
	"github.com/amaumene/cinedeck/internal/services/catalog"
	"github.com/amaumene/cinedeck/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// app holds the wired dependencies shared by every command
type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	db       *models.Database
	registry *prometheus.Registry
	client   *catalog.Client

	movieCtrl   *controllers.MovieController
	detailsCtrl *controllers.DetailsController
	genreCtrl   *controllers.GenreController
	sessionCtrl *controllers.SessionController
	themeCtrl   *controllers.ThemeController

	stopTracing func(context.Context) error
}

// newApp loads configuration and builds the store, catalog client and controllers
func newApp() (*app, error) {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger and tracing
	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	logger.WithField("config_dir", cfg.ConfigDir).Debug("Configuration loaded")
	stopTracing := utils.SetupTracing(logger)

	// 3. Initialize database
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		stopTracing(context.Background())
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	keys, err := db.Keys()
	if err != nil {
		logger.WithError(err).Warn("Failed to list stored keys")
	}
	logger.WithField("keys", keys).Debug("Database initialized")

	// 4. Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := catalog.NewMetrics(registry)
	if err != nil {
		db.Close()
		stopTracing(context.Background())
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	// 5. Initialize catalog client
	client, err := catalog.NewClient(cfg, metrics, logger)
	if err != nil {
		db.Close()
		stopTracing(context.Background())
		return nil, fmt.Errorf("failed to initialize catalog client: %w", err)
	}
	logger.Debug("Catalog client initialized")

	// 6. Initialize controllers
	movieCtrl := controllers.NewMovieController(client, db, logger)
	a := &app{
		cfg:         cfg,
		logger:      logger,
		db:          db,
		registry:    registry,
		client:      client,
		movieCtrl:   movieCtrl,
		detailsCtrl: controllers.NewDetailsController(client, movieCtrl, logger),
		genreCtrl:   controllers.NewGenreController(client, cfg.GenreCacheTTL, logger),
		sessionCtrl: controllers.NewSessionController(db, logger),
		themeCtrl:   controllers.NewThemeController(db, logger),
		stopTracing: stopTracing,
	}
	logger.Debug("Controllers initialized")

	return a, nil
}

// Close flushes tracing and closes the database
func (a *app) Close() {
	if err := a.stopTracing(context.Background()); err != nil {
		a.logger.WithError(err).Warn("Failed to stop tracing")
	}
	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).Warn("Failed to close database")
	}
}
