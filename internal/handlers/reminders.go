package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/setjustgo/travel-assistant/internal/assistant"
	"github.com/setjustgo/travel-assistant/internal/request"
)

// ReminderHandler handles reminder listing
type ReminderHandler struct {
	engine *assistant.Engine
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(engine *assistant.Engine) *ReminderHandler {
	return &ReminderHandler{engine: engine}
}

// RegisterRoutes registers reminder routes
func (h *ReminderHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/reminders/pending", h.Pending).Methods("GET")
}

// Pending returns the user's unsent reminders that are due now or earlier
func (h *ReminderHandler) Pending(w http.ResponseWriter, r *http.Request) {
	userID := request.UserIDFromContext(r)
	if userID == "" {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	reminders, err := h.engine.PendingReminders(r.Context(), userID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load reminders")
		return
	}
	respondJSON(w, http.StatusOK, reminders)
}
