package controllers

import (
	"errors"
	"fmt"
	"sync"

	"github.com/amaumene/cinedeck/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrEmptyCredentials is returned by Login when a field is blank
	ErrEmptyCredentials = errors.New("please fill in all fields")
	// ErrNotLoggedIn is returned for actions that need a session
	ErrNotLoggedIn = errors.New("not logged in")
)

// SessionController tracks the logged-in username.
//
// Login is a presence check only: any non-empty username and password pair is
// accepted and nothing is verified against a stored credential. The password
// is never persisted. This gate is not a security boundary.
type SessionController struct {
	mu       sync.RWMutex
	store    models.KeyValueStore
	username string
	logger   *logrus.Logger
}

// NewSessionController creates a session controller and restores any stored username
func NewSessionController(store models.KeyValueStore, logger *logrus.Logger) *SessionController {
	c := &SessionController{
		store:  store,
		logger: logger,
	}

	var username string
	err := models.LoadJSON(store, models.KeyUsername, &username)
	switch {
	case err == nil:
		c.username = username
		logger.WithField("username", username).Debug("Session restored")
	case errors.Is(err, models.ErrKeyNotFound):
	default:
		logger.WithError(err).Warn("Failed to restore session, starting logged out")
	}

	return c
}

// Login accepts the username when both fields are non-empty
func (c *SessionController) Login(username, password string) error {
	if username == "" || password == "" {
		return ErrEmptyCredentials
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := models.SaveJSON(c.store, models.KeyUsername, username); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	c.username = username

	c.logger.WithField("username", username).Info("User logged in")
	return nil
}

// Logout clears the session from memory and from the store
func (c *SessionController) Logout() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.username = ""
	if err := c.store.Remove(models.KeyUsername); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	c.logger.Info("User logged out")
	return nil
}

// Username returns the logged-in username and whether there is one
func (c *SessionController) Username() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.username, c.username != ""
}

// LoggedIn reports whether a user is logged in
func (c *SessionController) LoggedIn() bool {
	_, ok := c.Username()
	return ok
}
