package controllers

import (
	"context"

	"github.com/amaumene/cinedeck/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	MaxCast            = 10
	MaxRecommendations = 8
)

// DetailsCatalog retrieves everything shown on a movie page
type DetailsCatalog interface {
	Movie(ctx context.Context, id int) (*models.MovieDetails, error)
	Credits(ctx context.Context, id int) ([]models.CastMember, error)
	Trailer(ctx context.Context, id int) (*models.Video, error)
	Recommendations(ctx context.Context, id int, limit int) ([]models.Movie, error)
}

// MovieBundle groups a movie with its cast, trailer and recommendations
type MovieBundle struct {
	Movie           *models.MovieDetails `json:"movie"`
	Cast            []models.CastMember  `json:"cast"`
	Trailer         *models.Video        `json:"trailer,omitempty"`
	Recommendations []models.Movie       `json:"recommendations"`
	IsFavorite      bool                 `json:"is_favorite"`
}

// DetailsController assembles movie pages
type DetailsController struct {
	catalog   DetailsCatalog
	movieCtrl *MovieController
	logger    *logrus.Logger
}

// NewDetailsController creates a details controller. movieCtrl may be nil,
// in which case IsFavorite is always false.
func NewDetailsController(detailsCatalog DetailsCatalog, movieCtrl *MovieController, logger *logrus.Logger) *DetailsController {
	return &DetailsController{
		catalog:   detailsCatalog,
		movieCtrl: movieCtrl,
		logger:    logger,
	}
}

// Get fetches the four parts of a movie page concurrently.
// Any failing part fails the whole bundle.
func (c *DetailsController) Get(ctx context.Context, id int) (*MovieBundle, error) {
	bundle := &MovieBundle{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		movie, err := c.catalog.Movie(gctx, id)
		bundle.Movie = movie
		return err
	})
	g.Go(func() error {
		cast, err := c.catalog.Credits(gctx, id)
		if len(cast) > MaxCast {
			cast = cast[:MaxCast]
		}
		bundle.Cast = cast
		return err
	})
	g.Go(func() error {
		trailer, err := c.catalog.Trailer(gctx, id)
		bundle.Trailer = trailer
		return err
	})
	g.Go(func() error {
		recs, err := c.catalog.Recommendations(gctx, id, MaxRecommendations)
		bundle.Recommendations = recs
		return err
	})

	if err := g.Wait(); err != nil {
		c.logger.WithError(err).WithField("movie_id", id).Error("Failed to fetch movie details")
		return nil, err
	}

	if bundle.Cast == nil {
		bundle.Cast = []models.CastMember{}
	}
	if bundle.Recommendations == nil {
		bundle.Recommendations = []models.Movie{}
	}
	if c.movieCtrl != nil {
		bundle.IsFavorite = c.movieCtrl.IsFavorite(id)
	}

	return bundle, nil
}
