package models

import "time"

// ChatMessage records one processed chat turn: the user's message, the
// generated response, and the detected intent with its confidence (0..1).
// Messages are append-only; IsHelpful is an optional later patch from user
// feedback.
type ChatMessage struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Message    string    `json:"message"`
	Response   string    `json:"response"`
	Intent     string    `json:"intent"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
	IsHelpful  *bool     `json:"is_helpful,omitempty"`
}
