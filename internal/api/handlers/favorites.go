package handlers

import (
	"net/http"

	"github.com/amaumene/cinedeck/internal/controllers"
	"github.com/amaumene/cinedeck/internal/models"
	"github.com/sirupsen/logrus"
)

// FavoritesHandler serves the favorites list. Mutations need a session.
type FavoritesHandler struct {
	movieCtrl   *controllers.MovieController
	sessionCtrl *controllers.SessionController
	logger      *logrus.Logger
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(movieCtrl *controllers.MovieController, sessionCtrl *controllers.SessionController, logger *logrus.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		movieCtrl:   movieCtrl,
		sessionCtrl: sessionCtrl,
		logger:      logger,
	}
}

// List returns the favorites in insertion order
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, h.movieCtrl.Favorites())
}

// Add stores the posted movie as a favorite
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	if !h.sessionCtrl.LoggedIn() {
		respondWithControllerError(w, h.logger, controllers.ErrNotLoggedIn)
		return
	}

	var movie models.Movie
	if err := decodeJSON(w, r, &movie); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if movie.ID <= 0 {
		RespondWithError(w, http.StatusBadRequest, "movie id is required")
		return
	}

	if err := h.movieCtrl.AddFavorite(movie); err != nil {
		respondWithControllerError(w, h.logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, h.movieCtrl.Favorites())
}

// Remove drops a favorite by id; unknown ids succeed
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if !h.sessionCtrl.LoggedIn() {
		respondWithControllerError(w, h.logger, controllers.ErrNotLoggedIn)
		return
	}

	id, err := movieIDParam(r)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.movieCtrl.RemoveFavorite(id); err != nil {
		respondWithControllerError(w, h.logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, h.movieCtrl.Favorites())
}
