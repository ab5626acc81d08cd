package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// refreshTimeout bounds a single scheduled refresh
const refreshTimeout = 30 * time.Second

// GenreRefresher reloads the genre list from the catalog
type GenreRefresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron      *cron.Cron
	genres    GenreRefresher
	genreSpec string
	logger    *logrus.Logger
}

// NewScheduler creates a new scheduler refreshing genres on genreSpec
func NewScheduler(genres GenreRefresher, genreSpec string, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		genres:    genres,
		genreSpec: genreSpec,
		logger:    logger,
	}
}

// Start registers the jobs, starts the scheduler and warms the genre list
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	_, err := s.cron.AddFunc(s.genreSpec, func() {
		s.runGenreRefresh()
	})
	if err != nil {
		return fmt.Errorf("failed to add genre refresh job: %w", err)
	}

	s.cron.Start()
	s.logger.WithField("genre_refresh", s.genreSpec).Info("Scheduler started")

	// Run initial refresh immediately
	go s.runGenreRefresh()

	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

// runGenreRefresh executes the genre refresh job
func (s *Scheduler) runGenreRefresh() {
	s.logger.Debug("Running scheduled genre refresh")
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := s.genres.Refresh(ctx); err != nil {
		s.logger.WithError(err).Error("Genre refresh job failed")
	} else {
		s.logger.Debug("Genre refresh job completed successfully")
	}
}
