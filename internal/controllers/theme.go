package controllers

import (
	"errors"
	"fmt"
	"sync"

	"github.com/amaumene/cinedeck/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrInvalidTheme is returned when a theme mode is neither light nor dark
var ErrInvalidTheme = errors.New("invalid theme mode")

// ThemeController holds the persisted light/dark preference
type ThemeController struct {
	mu     sync.Mutex
	store  models.KeyValueStore
	mode   models.ThemeMode
	logger *logrus.Logger
}

// NewThemeController restores the stored mode, falling back to the default
func NewThemeController(store models.KeyValueStore, logger *logrus.Logger) *ThemeController {
	c := &ThemeController{
		store:  store,
		mode:   models.DefaultTheme,
		logger: logger,
	}

	raw, err := store.Get(models.KeyThemeMode)
	if err == nil {
		if mode := models.ThemeMode(raw); mode.Valid() {
			c.mode = mode
		} else {
			logger.WithField("mode", string(raw)).Warn("Ignoring unknown stored theme mode")
		}
	} else if !errors.Is(err, models.ErrKeyNotFound) {
		logger.WithError(err).Warn("Failed to restore theme mode")
	}

	return c
}

// Mode returns the current theme mode
func (c *ThemeController) Mode() models.ThemeMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Toggle switches between light and dark and returns the new mode
func (c *ThemeController) Toggle() (models.ThemeMode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.mode.Opposite()
	if err := c.save(next); err != nil {
		return c.mode, err
	}
	return next, nil
}

// Set stores an explicit theme mode
func (c *ThemeController) Set(mode models.ThemeMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, mode)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(mode)
}

func (c *ThemeController) save(mode models.ThemeMode) error {
	if err := c.store.Set(models.KeyThemeMode, []byte(mode)); err != nil {
		return fmt.Errorf("failed to persist theme mode: %w", err)
	}
	c.mode = mode
	c.logger.WithField("mode", mode).Debug("Theme mode changed")
	return nil
}
