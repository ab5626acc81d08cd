package handlers

import (
	"net/http"

	"github.com/amaumene/cinedeck/internal/controllers"
	"github.com/sirupsen/logrus"
)

// StatusHandler reports a summary of the browsing state
type StatusHandler struct {
	movieCtrl   *controllers.MovieController
	sessionCtrl *controllers.SessionController
	themeCtrl   *controllers.ThemeController
	logger      *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(movieCtrl *controllers.MovieController, sessionCtrl *controllers.SessionController, themeCtrl *controllers.ThemeController, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		movieCtrl:   movieCtrl,
		sessionCtrl: sessionCtrl,
		themeCtrl:   themeCtrl,
		logger:      logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	Movies        int    `json:"movies"`
	Query         string `json:"query"`
	NextPage      int    `json:"next_page"`
	TotalPages    int    `json:"total_pages"`
	ActiveFilters int    `json:"active_filters"`
	Loading       bool   `json:"loading"`
	Error         string `json:"error,omitempty"`
	Favorites     int    `json:"favorites"`
	History       int    `json:"history"`
	LoggedIn      bool   `json:"logged_in"`
	Theme         string `json:"theme"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state := h.movieCtrl.State()

	RespondWithJSON(w, http.StatusOK, StatusResponse{
		Movies:        len(state.Movies),
		Query:         state.Query,
		NextPage:      state.Page,
		TotalPages:    state.TotalPages,
		ActiveFilters: state.Filters.ActiveCount(),
		Loading:       state.Loading,
		Error:         state.Error,
		Favorites:     len(h.movieCtrl.Favorites()),
		History:       len(h.movieCtrl.SearchHistory()),
		LoggedIn:      h.sessionCtrl.LoggedIn(),
		Theme:         string(h.themeCtrl.Mode()),
	})
}
