package handlers

import (
	"net/http"

	"github.com/amaumene/cinedeck/internal/controllers"
	"github.com/sirupsen/logrus"
)

// DetailsHandler serves movie pages and the genre list
type DetailsHandler struct {
	detailsCtrl *controllers.DetailsController
	genreCtrl   *controllers.GenreController
	logger      *logrus.Logger
}

// NewDetailsHandler creates a new details handler
func NewDetailsHandler(detailsCtrl *controllers.DetailsController, genreCtrl *controllers.GenreController, logger *logrus.Logger) *DetailsHandler {
	return &DetailsHandler{
		detailsCtrl: detailsCtrl,
		genreCtrl:   genreCtrl,
		logger:      logger,
	}
}

// Movie returns the detail bundle of one movie
func (h *DetailsHandler) Movie(w http.ResponseWriter, r *http.Request) {
	id, err := movieIDParam(r)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	bundle, err := h.detailsCtrl.Get(r.Context(), id)
	if err != nil {
		respondWithControllerError(w, h.logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, bundle)
}

// Genres returns the catalog genres
func (h *DetailsHandler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.genreCtrl.List(r.Context())
	if err != nil {
		respondWithControllerError(w, h.logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, genres)
}
