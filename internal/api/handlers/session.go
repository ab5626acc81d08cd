package handlers

import (
	"net/http"

	"github.com/amaumene/cinedeck/internal/controllers"
	"github.com/sirupsen/logrus"
)

// SessionHandler serves login state
type SessionHandler struct {
	sessionCtrl *controllers.SessionController
	logger      *logrus.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionCtrl *controllers.SessionController, logger *logrus.Logger) *SessionHandler {
	return &SessionHandler{sessionCtrl: sessionCtrl, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username,omitempty"`
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.sessionCtrl.Login(req.Username, req.Password); err != nil {
		respondWithControllerError(w, h.logger, err)
		return
	}
	h.Get(w, r)
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionCtrl.Logout(); err != nil {
		respondWithControllerError(w, h.logger, err)
		return
	}
	h.Get(w, r)
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	username, ok := h.sessionCtrl.Username()
	RespondWithJSON(w, http.StatusOK, sessionResponse{LoggedIn: ok, Username: username})
}
