package models

import "time"

// Insight types produced by the weekly insight job.
const (
	InsightTypeTravelPattern        = "travel_pattern"
	InsightTypeDestinationExpansion = "destination_expansion"
)

// TravelInsight is a non-actionable analytical observation about a user's
// travel pattern. IsRelevant defaults to true and is the only mutable flag;
// consumers use it as a soft delete.
type TravelInsight struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	InsightType     string         `json:"insight_type"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Payload         map[string]any `json:"payload"`
	ConfidenceScore float64        `json:"confidence_score"`
	CreatedAt       time.Time      `json:"created_at"`
	IsRelevant      bool           `json:"is_relevant"`
}
