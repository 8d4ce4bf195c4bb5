package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"stylist/internal/storage"
	"stylist/internal/stylist"
)

type Handler struct {
	state        *State
	recommender  *stylist.Service
	sessionStore *storage.SessionStore
}

func New(state *State, recommender *stylist.Service) *Handler {
	return &Handler{
		state:        state,
		recommender:  recommender,
		sessionStore: storage.New(),
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*storage.BrowseSession, bool) {
	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}
