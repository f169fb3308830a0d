package models

import "time"

// SuggestionKind represents the kind of task that produced a suggestion
type SuggestionKind string

const (
	SuggestionKindDestination      SuggestionKind = "suggest_destination"
	SuggestionKindReminder         SuggestionKind = "reminder"
	SuggestionKindScheduleConflict SuggestionKind = "schedule_conflict"
	SuggestionKindDailySummary     SuggestionKind = "daily_summary"
	SuggestionKindWeeklySummary    SuggestionKind = "weekly_summary"
	SuggestionKindTravelPlanning   SuggestionKind = "travel_planning"
	SuggestionKindChatResponse     SuggestionKind = "chat_response"
)

// Priority represents the urgency of a suggestion
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Suggestion is a persisted, dismissible recommendation surfaced to a user.
// The ID is assigned by the store on creation and never reassigned.
type Suggestion struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Kind        SuggestionKind `json:"kind"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    Priority       `json:"priority"`
	Payload     map[string]any `json:"payload"`
	CreatedAt   time.Time      `json:"created_at"`
	ExpiresAt   *time.Time     `json:"expires_at,omitempty"`
	IsRead      bool           `json:"is_read"`
	IsDismissed bool           `json:"is_dismissed"`
	ActionTaken *string        `json:"action_taken,omitempty"`
}
