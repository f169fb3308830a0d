package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/setjustgo/travel-assistant/internal/assistant"
	"github.com/setjustgo/travel-assistant/internal/request"
	"github.com/setjustgo/travel-assistant/internal/store"
)

// InsightHandler handles travel insight listing and dismissal
type InsightHandler struct {
	engine *assistant.Engine
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(engine *assistant.Engine) *InsightHandler {
	return &InsightHandler{engine: engine}
}

// RegisterRoutes registers insight routes
func (h *InsightHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/insights", h.List).Methods("GET")
	r.HandleFunc("/insights/{id}/dismiss", h.Dismiss).Methods("POST")
}

// List returns the user's relevant insights, newest first
func (h *InsightHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := request.UserIDFromContext(r)
	if userID == "" {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	limit := parseLimit(r, assistant.DefaultInsightLimit)
	insights, err := h.engine.Insights(r.Context(), userID, limit)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load insights")
		return
	}
	respondJSON(w, http.StatusOK, insights)
}

// Dismiss marks an insight as no longer relevant
func (h *InsightHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	userID := request.UserIDFromContext(r)
	if userID == "" {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	insightID := mux.Vars(r)["id"]
	if err := h.engine.MarkInsightIrrelevant(r.Context(), insightID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondJSONError(w, http.StatusNotFound, "Not Found", "Insight not found")
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to dismiss insight")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"id": insightID, "relevant": false})
}
