package controllers

import (
	"context"
	"fmt"
	"time"

	"github.com/amaumene/cinedeck/internal/models"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

const genresCacheKey = "genres"

// GenreCatalog lists the catalog genres
type GenreCatalog interface {
	Genres(ctx context.Context) ([]models.Genre, error)
}

// GenreController keeps the genre list used to build filter choices
type GenreController struct {
	catalog GenreCatalog
	cache   *cache.Cache
	logger  *logrus.Logger
}

// NewGenreController creates a genre controller whose list expires after ttl
func NewGenreController(genreCatalog GenreCatalog, ttl time.Duration, logger *logrus.Logger) *GenreController {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &GenreController{
		catalog: genreCatalog,
		cache:   cache.New(ttl, ttl),
		logger:  logger,
	}
}

// List returns the genre list, fetching it when missing or expired
func (c *GenreController) List(ctx context.Context) ([]models.Genre, error) {
	if cached, ok := c.cache.Get(genresCacheKey); ok {
		return cached.([]models.Genre), nil
	}
	return c.fetch(ctx)
}

// Refresh fetches the genre list unconditionally
func (c *GenreController) Refresh(ctx context.Context) error {
	_, err := c.fetch(ctx)
	return err
}

// Name returns the display name of a genre id
func (c *GenreController) Name(ctx context.Context, id int) (string, bool) {
	genres, err := c.List(ctx)
	if err != nil {
		return "", false
	}
	for _, g := range genres {
		if g.ID == id {
			return g.Name, true
		}
	}
	return "", false
}

func (c *GenreController) fetch(ctx context.Context) ([]models.Genre, error) {
	genres, err := c.catalog.Genres(ctx)
	if err != nil {
		c.logger.WithError(err).Error("Failed to fetch genres")
		return nil, fmt.Errorf("failed to fetch genres: %w", err)
	}
	if genres == nil {
		genres = []models.Genre{}
	}

	c.cache.Set(genresCacheKey, genres, cache.DefaultExpiration)
	c.logger.WithField("count", len(genres)).Debug("Genre list refreshed")
	return genres, nil
}
