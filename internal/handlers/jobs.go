package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/setjustgo/travel-assistant/internal/queue"
	"github.com/setjustgo/travel-assistant/internal/request"
	"github.com/setjustgo/travel-assistant/internal/validation"
)

// JobsHandler enqueues background jobs for the worker
type JobsHandler struct {
	jobQueue queue.JobQueue
	logger   *zap.Logger
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(jobQueue queue.JobQueue, logger *zap.Logger) *JobsHandler {
	return &JobsHandler{jobQueue: jobQueue, logger: logger}
}

// RegisterRoutes registers job routes
func (h *JobsHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/jobs", h.Enqueue).Methods("POST")
}

// EnqueueJobRequest asks for a background job run. UserID defaults to the
// caller when omitted, so schedulers can target other users but clients
// only ever enqueue for themselves.
type EnqueueJobRequest struct {
	Type   string `json:"type" validate:"required,job_type"`
	UserID string `json:"user_id,omitempty"`
}

// Enqueue validates and publishes a job, answering 202 on success
func (h *JobsHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	callerID := request.UserIDFromContext(r)
	if callerID == "" {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req EnqueueJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "type must be one of daily_reminders, weekly_insights, suggestion_gc")
		return
	}
	if req.UserID == "" {
		req.UserID = callerID
	}

	job := queue.NewJob(queue.JobType(req.Type), req.UserID)
	if err := h.jobQueue.Enqueue(r.Context(), job); err != nil {
		h.logger.Error("job_enqueue_failed",
			zap.String("job_type", req.Type),
			zap.String("user_id", req.UserID),
			zap.Error(err))
		respondJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "Failed to enqueue job")
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]any{
		"job_id":  job.ID.String(),
		"type":    job.Type,
		"user_id": job.UserID,
	})
}
