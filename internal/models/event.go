package models

import "time"

// Event is a group trip record owned by the surrounding application.
// ExitDate/ReturnDate bound the occupied date range; either may be zero when
// the organizer has not set dates yet.
type Event struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Tags       []string  `json:"tags"`
	ExitDate   time.Time `json:"exit_date"`
	ReturnDate time.Time `json:"return_date"`
}

// HasDates reports whether both trip dates are set.
func (e *Event) HasDates() bool {
	return !e.ExitDate.IsZero() && !e.ReturnDate.IsZero()
}
