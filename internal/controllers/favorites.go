package controllers

import (
	"fmt"

	"github.com/amaumene/cinedeck/internal/models"
	"github.com/sirupsen/logrus"
)

// AddFavorite appends movie to the favorites unless its id is already there.
// The list is written to the store before it replaces the in-memory copy.
func (c *MovieController) AddFavorite(movie models.Movie) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if indexOfMovie(c.favorites, movie.ID) >= 0 {
		c.logger.WithField("movie_id", movie.ID).Debug("Movie already in favorites")
		return nil
	}

	next := append(append([]models.Movie{}, c.favorites...), movie)
	if err := c.saveFavorites(next); err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"movie_id": movie.ID,
		"title":    movie.Title,
	}).Info("Added favorite")
	return nil
}

// RemoveFavorite drops the movie with id from the favorites.
// Removing an id that is not a favorite changes nothing.
func (c *MovieController) RemoveFavorite(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if indexOfMovie(c.favorites, id) < 0 {
		return nil
	}

	next := make([]models.Movie, 0, len(c.favorites))
	for _, m := range c.favorites {
		if m.ID != id {
			next = append(next, m)
		}
	}
	if err := c.saveFavorites(next); err != nil {
		return err
	}

	c.logger.WithField("movie_id", id).Info("Removed favorite")
	return nil
}

// ToggleFavorite adds movie when absent and removes it otherwise.
// It reports whether the movie is a favorite afterwards.
func (c *MovieController) ToggleFavorite(movie models.Movie) (bool, error) {
	if c.IsFavorite(movie.ID) {
		return false, c.RemoveFavorite(movie.ID)
	}
	return true, c.AddFavorite(movie)
}

// IsFavorite reports whether id is in the favorites
func (c *MovieController) IsFavorite(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return indexOfMovie(c.favorites, id) >= 0
}

// Favorites returns a copy of the favorites in insertion order
func (c *MovieController) Favorites() []models.Movie {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Movie{}, c.favorites...)
}

// saveFavorites persists next and installs it; callers hold c.mu
func (c *MovieController) saveFavorites(next []models.Movie) error {
	if err := models.SaveJSON(c.store, models.KeyFavorites, next); err != nil {
		return fmt.Errorf("failed to persist favorites: %w", err)
	}
	c.favorites = next
	return nil
}

func indexOfMovie(movies []models.Movie, id int) int {
	for i, m := range movies {
		if m.ID == id {
			return i
		}
	}
	return -1
}
