package handlers

import (
	"encoding/json"
	"net/http"

	"stylist/internal/profiles"
)

// HandleSuggest recommends outfits for a shopper profile, resolved either from
// a browsing session or named directly in the request.
func (h *Handler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		SessionID   string `json:"session_id"`
		ProfileName string `json:"profile_name"`
		TopN        int    `json:"top_n"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	profileName := request.ProfileName
	if request.SessionID != "" {
		session, ok := h.getSessionOrError(w, request.SessionID)
		if !ok {
			return
		}
		profileName = session.ProfileName
	}
	if profileName == "" {
		profileName = profiles.DefaultName
	}

	profile, ok := h.state.Profiles[profileName]
	if !ok {
		h.writeError(w, "Unknown profile: "+profileName, http.StatusBadRequest)
		return
	}

	recommendations, err := h.recommender.Recommend(r.Context(), profile, request.TopN)
	if err != nil {
		h.writeError(w, "Failed to generate recommendations: "+err.Error(), http.StatusBadGateway)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"profile_name":    profileName,
		"recommendations": recommendations,
	})
}
