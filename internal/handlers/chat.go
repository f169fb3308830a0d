package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/setjustgo/travel-assistant/internal/assistant"
	"github.com/setjustgo/travel-assistant/internal/request"
	"github.com/setjustgo/travel-assistant/internal/store"
	"github.com/setjustgo/travel-assistant/internal/validation"
)

// ChatHandler handles assistant chat requests
type ChatHandler struct {
	engine *assistant.Engine
}

// NewChatHandler creates a new chat handler
func NewChatHandler(engine *assistant.Engine) *ChatHandler {
	return &ChatHandler{engine: engine}
}

// RegisterRoutes registers chat routes
func (h *ChatHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/chat/message", h.SendMessage).Methods("POST")
	r.HandleFunc("/chat/history", h.History).Methods("GET")
	r.HandleFunc("/chat/{id}/feedback", h.Feedback).Methods("PATCH")
}

// ChatMessageRequest represents a chat message request
type ChatMessageRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// ChatFeedbackRequest marks a chat turn as helpful or not
type ChatFeedbackRequest struct {
	Helpful *bool `json:"helpful" validate:"required"`
}

// SendMessage processes one chat message and returns the stored turn.
// The engine degrades to fallback text on storage trouble, so this
// endpoint answers 200 even when persistence is down.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID := request.UserIDFromContext(r)
	if userID == "" {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req ChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}
	req.Message = validation.SanitizeText(req.Message)
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Message is required and must be at most 2000 characters")
		return
	}

	turn := h.engine.ProcessChatMessage(r.Context(), userID, req.Message)
	respondJSON(w, http.StatusOK, turn)
}

// History returns the user's recent chat turns, newest first
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := request.UserIDFromContext(r)
	if userID == "" {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	limit := parseLimit(r, assistant.DefaultChatHistoryLimit)
	history, err := h.engine.ChatHistory(r.Context(), userID, limit)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load chat history")
		return
	}
	respondJSON(w, http.StatusOK, history)
}

// Feedback records whether a chat turn was helpful
func (h *ChatHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	userID := request.UserIDFromContext(r)
	if userID == "" {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	messageID := mux.Vars(r)["id"]

	var req ChatFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "helpful is required")
		return
	}

	if err := h.engine.MarkChatHelpful(r.Context(), messageID, *req.Helpful); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondJSONError(w, http.StatusNotFound, "Not Found", "Chat message not found")
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to record feedback")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"id": messageID, "helpful": *req.Helpful})
}

// parseLimit reads a positive limit query parameter, falling back to def.
func parseLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return def
	}
	return limit
}
