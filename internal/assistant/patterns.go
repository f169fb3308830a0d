package assistant

// Intents the assistant understands. IntentUnknown is returned when no
// pattern matches; IntentError marks a chat turn that failed to persist.
const (
	IntentSuggestDestination = "suggest_destination"
	IntentSuggestDates       = "suggest_dates"
	IntentSetReminder        = "set_reminder"
	IntentShowSchedule       = "show_schedule"
	IntentShowSummary        = "show_summary"
	IntentCheckConflicts     = "check_conflicts"
	IntentUnknown            = "unknown"
	IntentError              = "error"
)

// IntentPattern is one row of the classifier's rule table: a regex over the
// lower-cased message, the intent it signals, the confidence a bare regex
// match earns, and keywords whose presence boosts that confidence.
type IntentPattern struct {
	Pattern        string
	Intent         string
	BaseConfidence float64
	Keywords       []string
}

// DefaultPatterns returns the built-in rule table. Order matters: when two
// patterns score the same confidence, the earlier one wins.
func DefaultPatterns() []IntentPattern {
	return []IntentPattern{
		{
			Pattern:        `(suggest|recommend)\w*.*(destination|trip|place)`,
			Intent:         IntentSuggestDestination,
			BaseConfidence: 0.9,
			Keywords:       []string{"suggest", "recommend", "destination", "trip", "place"},
		},
		{
			Pattern:        `(when|which dates|best date).*(travel|go)`,
			Intent:         IntentSuggestDates,
			BaseConfidence: 0.8,
			Keywords:       []string{"when", "dates", "best", "travel"},
		},
		{
			Pattern:        `(remind|reminder|don.?t forget)`,
			Intent:         IntentSetReminder,
			BaseConfidence: 0.9,
			Keywords:       []string{"remind", "reminder", "forget"},
		},
		{
			Pattern:        `(agenda|commitments|events).*(upcoming|future|next)`,
			Intent:         IntentShowSchedule,
			BaseConfidence: 0.8,
			Keywords:       []string{"agenda", "commitments", "events", "upcoming"},
		},
		{
			Pattern:        `(summary|summarize|show).*(trips|events)`,
			Intent:         IntentShowSummary,
			BaseConfidence: 0.7,
			Keywords:       []string{"summary", "summarize", "show", "trips"},
		},
		{
			Pattern:        `(conflict|problem|overlap).*(schedule|dates|agenda)`,
			Intent:         IntentCheckConflicts,
			BaseConfidence: 0.8,
			Keywords:       []string{"conflict", "problem", "overlap", "schedule"},
		},
	}
}

// DefaultResponses returns the canned acknowledgement per intent, used when
// an intent has no generator wired, plus the unknown and error fallbacks.
func DefaultResponses() map[string]string {
	return map[string]string{
		IntentSuggestDestination: "I'll analyze your favorites and history to suggest personalized destinations!",
		IntentSuggestDates:       "I'll check your agenda for the best available dates.",
		IntentSetReminder:        "Perfect! I'll set up a reminder for you.",
		IntentShowSchedule:       "Here are your upcoming travel commitments:",
		IntentShowSummary:        "I'll put together a summary of your trips and events.",
		IntentCheckConflicts:     "Checking your agenda for possible conflicts...",
		IntentUnknown:            "Sorry, I didn't quite understand that. Could you rephrase your question?",
		IntentError:              "Sorry, something went wrong while processing your message. Please try again.",
	}
}
