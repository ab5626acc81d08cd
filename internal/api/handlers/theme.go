package handlers

import (
	"net/http"

	"github.com/amaumene/cinedeck/internal/controllers"
	"github.com/amaumene/cinedeck/internal/models"
	"github.com/sirupsen/logrus"
)

// ThemeHandler serves the light/dark preference
type ThemeHandler struct {
	themeCtrl *controllers.ThemeController
	logger    *logrus.Logger
}

// NewThemeHandler creates a new theme handler
func NewThemeHandler(themeCtrl *controllers.ThemeController, logger *logrus.Logger) *ThemeHandler {
	return &ThemeHandler{themeCtrl: themeCtrl, logger: logger}
}

type themeBody struct {
	Mode models.ThemeMode `json:"mode"`
}

func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, themeBody{Mode: h.themeCtrl.Mode()})
}

func (h *ThemeHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req themeBody
	if err := decodeJSON(w, r, &req); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.themeCtrl.Set(req.Mode); err != nil {
		respondWithControllerError(w, h.logger, err)
		return
	}
	h.Get(w, r)
}

func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	mode, err := h.themeCtrl.Toggle()
	if err != nil {
		respondWithControllerError(w, h.logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, themeBody{Mode: mode})
}
