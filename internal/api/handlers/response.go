package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/amaumene/cinedeck/internal/controllers"
	"github.com/amaumene/cinedeck/internal/models"
	"github.com/amaumene/cinedeck/internal/services/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes bounds request bodies accepted by the JSON handlers
const maxBodyBytes = 1 << 20

// RespondWithJSON writes payload as a JSON response with the given status code
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to marshal response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// RespondWithError writes a JSON error body
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithControllerError maps controller and catalog errors to HTTP status codes
func respondWithControllerError(w http.ResponseWriter, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, controllers.ErrEmptyCredentials),
		errors.Is(err, controllers.ErrInvalidTheme),
		errors.Is(err, models.ErrInvalidFilter):
		RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, controllers.ErrNotLoggedIn):
		RespondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, controllers.ErrNoMorePages):
		RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, catalog.ErrFetchFailed):
		RespondWithError(w, http.StatusBadGateway, err.Error())
	default:
		logger.WithError(err).Error("Request failed")
		RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func movieIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id %q", chi.URLParam(r, "id"))
	}
	return id, nil
}
