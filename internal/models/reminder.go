package models

import "time"

// Reminder is a time-targeted notification tied to a user and optionally an event.
// IsSent is owned by the delivery mechanism; the engine never sets it.
type Reminder struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	EventID      string    `json:"event_id"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	ReminderDate time.Time `json:"reminder_date"`
	IsSent       bool      `json:"is_sent"`
	CreatedAt    time.Time `json:"created_at"`
}
