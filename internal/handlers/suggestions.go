package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/setjustgo/travel-assistant/internal/assistant"
	"github.com/setjustgo/travel-assistant/internal/request"
	"github.com/setjustgo/travel-assistant/internal/store"
)

// SuggestionHandler handles suggestion listing and dismissal
type SuggestionHandler struct {
	engine *assistant.Engine
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(engine *assistant.Engine) *SuggestionHandler {
	return &SuggestionHandler{engine: engine}
}

// RegisterRoutes registers suggestion routes
func (h *SuggestionHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/suggestions", h.List).Methods("GET")
	r.HandleFunc("/suggestions/{id}/dismiss", h.Dismiss).Methods("POST")
}

// List returns the user's active suggestions, newest first
func (h *SuggestionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := request.UserIDFromContext(r)
	if userID == "" {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	limit := parseLimit(r, assistant.DefaultSuggestionLimit)
	suggestions, err := h.engine.Suggestions(r.Context(), userID, limit)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load suggestions")
		return
	}
	respondJSON(w, http.StatusOK, suggestions)
}

// Dismiss hides a suggestion from future listings. The record is kept
// so insight generation can still see it.
func (h *SuggestionHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	userID := request.UserIDFromContext(r)
	if userID == "" {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	suggestionID := mux.Vars(r)["id"]
	if err := h.engine.DismissSuggestion(r.Context(), suggestionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondJSONError(w, http.StatusNotFound, "Not Found", "Suggestion not found")
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to dismiss suggestion")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"id": suggestionID, "dismissed": true})
}
