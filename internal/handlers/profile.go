package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/setjustgo/travel-assistant/internal/assistant"
	"github.com/setjustgo/travel-assistant/internal/models"
	"github.com/setjustgo/travel-assistant/internal/request"
)

// ProfileHandler handles personalization profile requests
type ProfileHandler struct {
	engine *assistant.Engine
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(engine *assistant.Engine) *ProfileHandler {
	return &ProfileHandler{engine: engine}
}

// RegisterRoutes registers profile routes
func (h *ProfileHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/profile", h.Get).Methods("GET")
	r.HandleFunc("/profile", h.Update).Methods("PATCH")
}

// ProfileUpdateRequest carries a partial profile update. Only the fields
// present in the request body are patched.
type ProfileUpdateRequest struct {
	PreferredDestinations *[]string           `json:"preferred_destinations,omitempty"`
	TravelPreferences     *map[string]any     `json:"travel_preferences,omitempty"`
	BudgetRange           *models.BudgetRange `json:"budget_range,omitempty"`
	PreferredDates        *[]string           `json:"preferred_dates,omitempty"`
}

// Get returns the user's profile, creating it with defaults on first access
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := request.UserIDFromContext(r)
	if userID == "" {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	profile, err := h.engine.GetOrCreateProfile(r.Context(), userID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load profile")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// Update patches the user's profile fields
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := request.UserIDFromContext(r)
	if userID == "" {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	fields := make(map[string]any)
	if req.PreferredDestinations != nil {
		fields["preferred_destinations"] = *req.PreferredDestinations
	}
	if req.TravelPreferences != nil {
		fields["travel_preferences"] = *req.TravelPreferences
	}
	if req.BudgetRange != nil {
		fields["budget_range"] = *req.BudgetRange
	}
	if req.PreferredDates != nil {
		fields["preferred_dates"] = *req.PreferredDates
	}
	if len(fields) == 0 {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "No updatable fields in request")
		return
	}

	if err := h.engine.UpdateProfile(r.Context(), userID, fields); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update profile")
		return
	}

	profile, err := h.engine.GetOrCreateProfile(r.Context(), userID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load profile")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
