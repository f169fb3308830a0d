package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/setjustgo/travel-assistant/internal/queue"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for enums
	// These should never fail in normal operation, but log if they do
	if err := Validate.RegisterValidation("job_type", validateJobType); err != nil {
		panic(fmt.Sprintf("failed to register job_type validator: %v", err))
	}
}

// validateJobType validates that a string is a known background job type
func validateJobType(fl validator.FieldLevel) bool {
	switch queue.JobType(fl.Field().String()) {
	case queue.JobTypeDailyReminders, queue.JobTypeWeeklyInsights, queue.JobTypeSuggestionGC:
		return true
	default:
		return false
	}
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	// Trim whitespace
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateJobType validates a JobType string value
func ValidateJobType(value string) error {
	switch queue.JobType(value) {
	case queue.JobTypeDailyReminders, queue.JobTypeWeeklyInsights, queue.JobTypeSuggestionGC:
		return nil
	default:
		return fmt.Errorf("invalid job type: %s (must be 'daily_reminders', 'weekly_insights', or 'suggestion_gc')", value)
	}
}
