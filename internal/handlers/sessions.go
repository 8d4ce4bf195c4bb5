package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"stylist/internal/profiles"
	"stylist/internal/storage"
)

// HandleSessions lists browsing sessions or creates a new one.
func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		sessions := h.sessionStore.GetAll()
		sessionList := make([]*storage.BrowseSession, 0, len(sessions))
		for _, session := range sessions {
			sessionList = append(sessionList, session)
		}
		h.writeJSON(w, sessionList)
	case "POST":
		var request struct {
			ProfileName string `json:"profile_name"`
		}
		// An empty body is fine; the session starts on the default profile.
		_ = json.NewDecoder(r.Body).Decode(&request)

		if request.ProfileName == "" {
			request.ProfileName = profiles.DefaultName
		}
		if _, ok := h.state.Profiles[request.ProfileName]; !ok {
			h.writeError(w, "Unknown profile: "+request.ProfileName, http.StatusBadRequest)
			return
		}

		session := &storage.BrowseSession{
			ID:          uuid.NewString(),
			ProfileName: request.ProfileName,
			CreatedAt:   time.Now(),
		}
		h.sessionStore.Set(session.ID, session)
		h.writeJSON(w, session)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleSessionDetail fetches or updates one browsing session. Updates switch
// the active profile or record feedback; the catalog itself is never mutated.
func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimPrefix(r.URL.Path, "/api/sessions/")

	session, ok := h.getSessionOrError(w, sessionID)
	if !ok {
		return
	}

	switch r.Method {
	case "GET":
		h.writeJSON(w, session)
	case "PUT":
		var request struct {
			ProfileName  string `json:"profile_name"`
			GaveFeedback *bool  `json:"gave_feedback"`
			Feedback     string `json:"feedback"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}

		updated := *session
		if request.ProfileName != "" {
			if _, ok := h.state.Profiles[request.ProfileName]; !ok {
				h.writeError(w, "Unknown profile: "+request.ProfileName, http.StatusBadRequest)
				return
			}
			updated.ProfileName = request.ProfileName
		}
		if request.GaveFeedback != nil {
			updated.GaveFeedback = *request.GaveFeedback
		}
		if request.Feedback != "" {
			updated.Feedback = request.Feedback
		}

		h.sessionStore.Set(sessionID, &updated)
		h.writeJSON(w, updated)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
