package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amaumene/cinedeck/internal/api"
	"github.com/amaumene/cinedeck/internal/controllers"
	"github.com/amaumene/cinedeck/internal/scheduler"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	logger := a.logger
	logger.Info("Starting cinedeck")

	// 7. Wire debounced search input
	debouncer := controllers.NewDebouncer(a.cfg.SearchDebounce, func(query string) {
		if err := a.movieCtrl.Search(context.Background(), query); err != nil {
			logger.WithError(err).WithField("query", query).Warn("Search failed")
		}
	})
	defer debouncer.Stop()

	// 8. Initialize scheduler
	sched := scheduler.NewScheduler(a.genreCtrl, a.cfg.GenreRefreshCron, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// Load the first discover page so the listing is not empty
	go func() {
		if err := a.movieCtrl.Refresh(context.Background(), "", 1, nil); err != nil {
			logger.WithError(err).Warn("Initial listing failed")
		}
	}()

	// 9. Initialize HTTP server
	server := api.NewServer(a.cfg, api.Controllers{
		Movies:  a.movieCtrl,
		Details: a.detailsCtrl,
		Genres:  a.genreCtrl,
		Session: a.sessionCtrl,
		Theme:   a.themeCtrl,
		Search:  debouncer,
	}, a.registry, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 10. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("cinedeck is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("cinedeck stopped")
	return nil
}
