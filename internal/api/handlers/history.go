package handlers

import (
	"net/http"

	"github.com/amaumene/cinedeck/internal/controllers"
	"github.com/sirupsen/logrus"
)

// HistoryHandler serves the search history
type HistoryHandler struct {
	movieCtrl *controllers.MovieController
	logger    *logrus.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(movieCtrl *controllers.MovieController, logger *logrus.Logger) *HistoryHandler {
	return &HistoryHandler{movieCtrl: movieCtrl, logger: logger}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, h.movieCtrl.SearchHistory())
}

func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.movieCtrl.ClearHistory(); err != nil {
		respondWithControllerError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Suggest returns history terms close to ?q=
func (h *HistoryHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, h.movieCtrl.HistorySuggestions(r.URL.Query().Get("q")))
}
