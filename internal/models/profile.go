package models

import "time"

// BudgetRange is the user's travel budget window.
type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// UserProfile holds assistant-specific personalization data, distinct from
// the account record. Created lazily on first access with defaults.
type UserProfile struct {
	ID                    string         `json:"id"`
	UserID                string         `json:"user_id"`
	PreferredDestinations []string       `json:"preferred_destinations"`
	TravelPreferences     map[string]any `json:"travel_preferences"`
	BudgetRange           BudgetRange    `json:"budget_range"`
	PreferredDates        []string       `json:"preferred_dates"`
	TravelHistory         []string       `json:"travel_history"`
	LearningData          map[string]any `json:"learning_data"`
	LastUpdated           time.Time      `json:"last_updated"`
}

// NewDefaultProfile returns the profile created on first access.
func NewDefaultProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:                userID,
		PreferredDestinations: []string{},
		TravelPreferences:     map[string]any{},
		BudgetRange:           BudgetRange{Min: 0, Max: 1000},
		PreferredDates:        []string{},
		TravelHistory:         []string{},
		LearningData:          map[string]any{},
		LastUpdated:           time.Now().UTC(),
	}
}
