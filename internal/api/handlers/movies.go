package handlers

import (
	"net/http"
	"strconv"

	"github.com/amaumene/cinedeck/internal/controllers"
	"github.com/amaumene/cinedeck/internal/models"
	"github.com/sirupsen/logrus"
)

// SearchInput receives raw search text and delivers it once settled
type SearchInput interface {
	Push(value string)
}

// MoviesHandler serves the movie list, its filters and pagination
type MoviesHandler struct {
	movieCtrl *controllers.MovieController
	search    SearchInput
	logger    *logrus.Logger
}

// NewMoviesHandler creates a new movies handler
func NewMoviesHandler(movieCtrl *controllers.MovieController, search SearchInput, logger *logrus.Logger) *MoviesHandler {
	return &MoviesHandler{
		movieCtrl: movieCtrl,
		search:    search,
		logger:    logger,
	}
}

type movieListResponse struct {
	controllers.MovieState
	HasMore bool `json:"has_more"`
}

type searchRequest struct {
	Query string `json:"query"`
}

// List returns the current browsing state
func (h *MoviesHandler) List(w http.ResponseWriter, r *http.Request) {
	h.respondState(w, http.StatusOK)
}

// Search accepts search text; the listing refreshes after the input settles
func (h *MoviesHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.search.Push(req.Query)
	RespondWithJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// More appends the next page of the current listing
func (h *MoviesHandler) More(w http.ResponseWriter, r *http.Request) {
	if err := h.movieCtrl.LoadMore(r.Context()); err != nil {
		respondWithControllerError(w, h.logger, err)
		return
	}
	h.respondState(w, http.StatusOK)
}

// GetFilters returns the active filter set
func (h *MoviesHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, h.movieCtrl.Filters())
}

// PutFilters replaces the filter set and reloads the first page
func (h *MoviesHandler) PutFilters(w http.ResponseWriter, r *http.Request) {
	var filters models.Filters
	if err := decodeJSON(w, r, &filters); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.movieCtrl.SetFilters(r.Context(), filters); err != nil {
		respondWithControllerError(w, h.logger, err)
		return
	}
	h.respondState(w, http.StatusOK)
}

// ClearFilters removes every filter and reloads the first page
func (h *MoviesHandler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	if err := h.movieCtrl.ClearFilters(r.Context()); err != nil {
		respondWithControllerError(w, h.logger, err)
		return
	}
	h.respondState(w, http.StatusOK)
}

// DismissError clears the error slot
func (h *MoviesHandler) DismissError(w http.ResponseWriter, r *http.Request) {
	h.movieCtrl.DismissError()
	w.WriteHeader(http.StatusNoContent)
}

// TopPicks returns the best-rated movies of the current list (?limit=n)
func (h *MoviesHandler) TopPicks(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			RespondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	RespondWithJSON(w, http.StatusOK, h.movieCtrl.TopPicks(limit))
}

func (h *MoviesHandler) respondState(w http.ResponseWriter, code int) {
	state := h.movieCtrl.State()
	RespondWithJSON(w, code, movieListResponse{MovieState: state, HasMore: state.HasMore()})
}
