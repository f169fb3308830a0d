package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/setjustgo/travel-assistant/internal/models"
	"github.com/setjustgo/travel-assistant/internal/store"
	"go.uber.org/zap"
)

// Default listing limits, matching the read surfaces the app renders.
const (
	DefaultSuggestionLimit  = 10
	DefaultChatHistoryLimit = 20
	DefaultInsightLimit     = 5
)

// Suggestions returns the user's active suggestions, newest first.
func (e *Engine) Suggestions(ctx context.Context, userID string, limit int) ([]models.Suggestion, error) {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	var out []models.Suggestion
	q := store.Query{
		Filters: []store.Filter{store.Eq("user_id", userID), store.Eq("is_dismissed", false)},
		OrderBy: "created_at",
		Desc:    true,
		Limit:   limit,
	}
	if err := e.store.Find(ctx, store.CollectionSuggestions, q, &out); err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	return out, nil
}

// PendingReminders returns the user's unsent reminders that are due now or
// earlier. The due cutoff is applied after the query; the store's filter
// language only covers equality and membership.
func (e *Engine) PendingReminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	var all []models.Reminder
	q := store.Query{
		Filters: []store.Filter{store.Eq("user_id", userID), store.Eq("is_sent", false)},
	}
	if err := e.store.Find(ctx, store.CollectionReminders, q, &all); err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}

	now := e.now().UTC()
	due := make([]models.Reminder, 0, len(all))
	for _, r := range all {
		if !r.ReminderDate.After(now) {
			due = append(due, r)
		}
	}
	return due, nil
}

// ChatHistory returns the user's recent chat turns, newest first.
func (e *Engine) ChatHistory(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = DefaultChatHistoryLimit
	}
	var out []models.ChatMessage
	q := store.Query{
		Filters: []store.Filter{store.Eq("user_id", userID)},
		OrderBy: "created_at",
		Desc:    true,
		Limit:   limit,
	}
	if err := e.store.Find(ctx, store.CollectionChatMessages, q, &out); err != nil {
		return nil, fmt.Errorf("failed to list chat history: %w", err)
	}
	return out, nil
}

// Insights returns the user's relevant insights, newest first.
func (e *Engine) Insights(ctx context.Context, userID string, limit int) ([]models.TravelInsight, error) {
	if limit <= 0 {
		limit = DefaultInsightLimit
	}
	var out []models.TravelInsight
	q := store.Query{
		Filters: []store.Filter{store.Eq("user_id", userID), store.Eq("is_relevant", true)},
		OrderBy: "created_at",
		Desc:    true,
		Limit:   limit,
	}
	if err := e.store.Find(ctx, store.CollectionInsights, q, &out); err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}
	return out, nil
}

// DismissSuggestion marks a suggestion as dismissed. The record stays in the
// store; listings filter it out.
func (e *Engine) DismissSuggestion(ctx context.Context, suggestionID string) error {
	if err := e.store.Update(ctx, store.CollectionSuggestions, suggestionID, map[string]any{"is_dismissed": true}); err != nil {
		return fmt.Errorf("failed to dismiss suggestion %s: %w", suggestionID, err)
	}
	return nil
}

// MarkChatHelpful records user feedback on a chat turn.
func (e *Engine) MarkChatHelpful(ctx context.Context, messageID string, helpful bool) error {
	if err := e.store.Update(ctx, store.CollectionChatMessages, messageID, map[string]any{"is_helpful": helpful}); err != nil {
		return fmt.Errorf("failed to mark chat message %s: %w", messageID, err)
	}
	return nil
}

// MarkInsightIrrelevant soft-deletes an insight.
func (e *Engine) MarkInsightIrrelevant(ctx context.Context, insightID string) error {
	if err := e.store.Update(ctx, store.CollectionInsights, insightID, map[string]any{"is_relevant": false}); err != nil {
		return fmt.Errorf("failed to mark insight %s: %w", insightID, err)
	}
	return nil
}

// GetOrCreateProfile fetches the user's personalization profile, creating it
// with defaults on first access.
func (e *Engine) GetOrCreateProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var existing []models.UserProfile
	q := store.Query{Filters: []store.Filter{store.Eq("user_id", userID)}, Limit: 1}
	if err := e.store.Find(ctx, store.CollectionProfiles, q, &existing); err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if len(existing) > 0 {
		return &existing[0], nil
	}

	profile := models.NewDefaultProfile(userID)
	profile.LastUpdated = e.now().UTC()
	id, err := e.store.Add(ctx, store.CollectionProfiles, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	profile.ID = id
	e.logger.Info("profile_created", zap.String("user_id", userID))
	return profile, nil
}

// UpdateProfile patches the user's profile fields and stamps last_updated.
// The profile is created first if the user does not have one yet.
func (e *Engine) UpdateProfile(ctx context.Context, userID string, fields map[string]any) error {
	profile, err := e.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return err
	}

	patch := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		patch[k] = v
	}
	patch["last_updated"] = e.now().UTC().Format(time.RFC3339Nano)
	if err := e.store.Update(ctx, store.CollectionProfiles, profile.ID, patch); err != nil {
		return fmt.Errorf("failed to update profile for user %s: %w", userID, err)
	}
	return nil
}
