package assistant

import (
	"context"
	"fmt"

	"github.com/setjustgo/travel-assistant/internal/models"
	"github.com/setjustgo/travel-assistant/internal/store"
	"go.uber.org/zap"
)

// Insight thresholds for the weekly job.
const (
	travelPatternMinTrips        = 3
	destinationExpansionMinFaves = 2
)

// GenerateDailyReminders creates departure reminders for the user's trips
// starting in exactly 3, 1, or 0 days and persists each one. Returns the
// persisted reminders; an empty slice when the user has none due or the
// store is unavailable.
//
// The job is not idempotent: running it twice on the same day writes
// duplicate reminders. Scheduling must guarantee once-a-day execution until
// the job records a per-day marker.
func (e *Engine) GenerateDailyReminders(ctx context.Context, userID string) []models.Reminder {
	user, err := e.store.GetUser(ctx, userID)
	if err != nil {
		e.logger.Warn("daily_reminders_failed", zap.String("user_id", userID), zap.Error(err))
		return []models.Reminder{}
	}

	now := e.now().UTC()
	reminders := []models.Reminder{}

	for _, eventID := range user.JoinedEvents {
		event, err := e.store.GetEvent(ctx, eventID)
		if err != nil || event.ExitDate.IsZero() {
			continue
		}

		var title, message string
		switch wholeDays(event.ExitDate.Sub(now)) {
		case 3:
			title = "Trip in 3 days!"
			message = fmt.Sprintf("Your trip '%s' starts in 3 days. How about getting ready?", event.Title)
		case 1:
			title = "Trip tomorrow!"
			message = fmt.Sprintf("Your trip '%s' starts tomorrow! Don't forget to pack!", event.Title)
		case 0:
			title = "Today's the day!"
			message = fmt.Sprintf("Your trip '%s' starts today! Have a great trip! 🎉", event.Title)
		default:
			continue
		}

		reminder := models.Reminder{
			UserID:       userID,
			EventID:      eventID,
			Title:        title,
			Message:      message,
			ReminderDate: now,
			CreatedAt:    now,
		}
		id, err := e.store.Add(ctx, store.CollectionReminders, &reminder)
		if err != nil {
			e.logger.Error("reminder_save_failed",
				zap.String("user_id", userID),
				zap.String("event_id", eventID),
				zap.Error(err))
			continue
		}
		reminder.ID = id
		reminders = append(reminders, reminder)
	}

	e.logger.Info("daily_reminders_generated",
		zap.String("user_id", userID),
		zap.Int("count", len(reminders)))
	return reminders
}

// GenerateWeeklyInsights derives analytical observations from the user's
// activity counts and persists each. Returns the persisted insights; an
// empty slice below thresholds or on store failure.
func (e *Engine) GenerateWeeklyInsights(ctx context.Context, userID string) []models.TravelInsight {
	user, err := e.store.GetUser(ctx, userID)
	if err != nil {
		e.logger.Warn("weekly_insights_failed", zap.String("user_id", userID), zap.Error(err))
		return []models.TravelInsight{}
	}

	now := e.now().UTC()
	totalTrips := len(user.JoinedEvents)
	totalFavorites := len(user.FavoritePosts)

	candidates := []models.TravelInsight{}
	if totalTrips >= travelPatternMinTrips {
		candidates = append(candidates, models.TravelInsight{
			UserID:      userID,
			InsightType: models.InsightTypeTravelPattern,
			Title:       "Travel Pattern Detected",
			Description: fmt.Sprintf("You've already joined %d trips! Analyzing your preference patterns...", totalTrips),
			Payload: map[string]any{
				"total_trips": totalTrips,
				"favorites":   totalFavorites,
			},
			ConfidenceScore: 0.8,
			CreatedAt:       now,
			IsRelevant:      true,
		})
	}
	if totalFavorites >= destinationExpansionMinFaves {
		candidates = append(candidates, models.TravelInsight{
			UserID:      userID,
			InsightType: models.InsightTypeDestinationExpansion,
			Title:       "Explore New Horizons",
			Description: "Based on your favorites, you might enjoy similar destinations. How about broadening your horizons?",
			Payload: map[string]any{
				"favorite_count": totalFavorites,
			},
			ConfidenceScore: 0.7,
			CreatedAt:       now,
			IsRelevant:      true,
		})
	}

	insights := []models.TravelInsight{}
	for _, insight := range candidates {
		id, err := e.store.Add(ctx, store.CollectionInsights, &insight)
		if err != nil {
			e.logger.Error("insight_save_failed",
				zap.String("user_id", userID),
				zap.String("insight_type", insight.InsightType),
				zap.Error(err))
			continue
		}
		insight.ID = id
		insights = append(insights, insight)
	}

	e.logger.Info("weekly_insights_generated",
		zap.String("user_id", userID),
		zap.Int("count", len(insights)))
	return insights
}

// DismissExpiredSuggestions marks a user's active suggestions whose
// expires_at has passed as dismissed. Returns how many were dismissed.
func (e *Engine) DismissExpiredSuggestions(ctx context.Context, userID string) (int, error) {
	var active []models.Suggestion
	q := store.Query{
		Filters: []store.Filter{store.Eq("user_id", userID), store.Eq("is_dismissed", false)},
	}
	if err := e.store.Find(ctx, store.CollectionSuggestions, q, &active); err != nil {
		return 0, fmt.Errorf("failed to list suggestions: %w", err)
	}

	now := e.now().UTC()
	dismissed := 0
	for _, s := range active {
		if s.ExpiresAt == nil || s.ExpiresAt.After(now) {
			continue
		}
		if err := e.store.Update(ctx, store.CollectionSuggestions, s.ID, map[string]any{"is_dismissed": true}); err != nil {
			e.logger.Error("suggestion_expiry_failed", zap.String("suggestion_id", s.ID), zap.Error(err))
			continue
		}
		dismissed++
	}

	if dismissed > 0 {
		e.logger.Info("expired_suggestions_dismissed",
			zap.String("user_id", userID),
			zap.Int("count", dismissed))
	}
	return dismissed, nil
}
