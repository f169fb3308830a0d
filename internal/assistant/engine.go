package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/setjustgo/travel-assistant/internal/models"
	"github.com/setjustgo/travel-assistant/internal/store"
	"go.uber.org/zap"
)

// favoritesLimit caps how many favorite events a single suggestion request
// resolves from the store.
const favoritesLimit = 5

// Engine turns chat messages into responses and persisted records. It holds
// no mutable state; every call is request-scoped and safe to run concurrently.
//
// Store failures never escape the engine: chat paths degrade to apologetic
// fallback text and batch paths to empty result sets, so a storage outage
// reads as a bad answer rather than a broken assistant.
type Engine struct {
	store      store.Store
	classifier Classifier
	responses  map[string]string
	logger     *zap.Logger
	now        func() time.Time
}

// NewEngine creates an engine with the default response set.
func NewEngine(s store.Store, classifier Classifier, logger *zap.Logger) *Engine {
	return &Engine{
		store:      s,
		classifier: classifier,
		responses:  DefaultResponses(),
		logger:     logger,
		now:        time.Now,
	}
}

// ProcessChatMessage classifies the message, generates a response for the
// detected intent, and appends the turn to the chat history. It always
// returns a usable message: if the history write fails, the returned turn
// carries the error intent and a generic apology instead.
func (e *Engine) ProcessChatMessage(ctx context.Context, userID, message string) *models.ChatMessage {
	intent, confidence := e.classifier.Classify(ctx, message)
	response := e.generateResponse(ctx, userID, intent, message)

	turn := &models.ChatMessage{
		UserID:     userID,
		Message:    message,
		Response:   response,
		Intent:     intent,
		Confidence: confidence,
		CreatedAt:  e.now().UTC(),
	}

	id, err := e.store.Add(ctx, store.CollectionChatMessages, turn)
	if err != nil {
		e.logger.Error("chat_message_save_failed",
			zap.String("user_id", userID),
			zap.String("intent", intent),
			zap.Error(err))
		return &models.ChatMessage{
			UserID:    userID,
			Message:   message,
			Response:  e.responses[IntentError],
			Intent:    IntentError,
			CreatedAt: e.now().UTC(),
		}
	}
	turn.ID = id

	e.logger.Info("chat_message_processed",
		zap.String("user_id", userID),
		zap.String("intent", intent),
		zap.Float64("confidence", confidence))

	return turn
}

func (e *Engine) generateResponse(ctx context.Context, userID, intent, message string) string {
	switch intent {
	case IntentSuggestDestination:
		return e.suggestDestinations(ctx, userID)
	case IntentSuggestDates:
		return e.suggestDates(ctx, userID)
	case IntentSetReminder:
		return e.createReminder(ctx, userID, message)
	case IntentShowSchedule:
		return e.scheduleSummary(ctx, userID)
	case IntentShowSummary:
		return e.travelSummary(ctx, userID)
	case IntentCheckConflicts:
		return e.checkConflicts(ctx, userID)
	default:
		if response, ok := e.responses[intent]; ok {
			return response
		}
		return e.responses[IntentUnknown]
	}
}

// suggestDestinations resolves up to favoritesLimit of the user's favorite
// events and persists one destination suggestion when any resolve.
func (e *Engine) suggestDestinations(ctx context.Context, userID string) string {
	user, err := e.store.GetUser(ctx, userID)
	if err != nil {
		e.logger.Warn("destination_suggestion_failed", zap.String("user_id", userID), zap.Error(err))
		return "I couldn't access your data. Please make sure you're signed in."
	}

	if len(user.FavoritePosts) == 0 {
		return "You don't have any favorite destinations yet. Explore some events so I can suggest similar places!"
	}

	favorites := user.FavoritePosts
	if len(favorites) > favoritesLimit {
		favorites = favorites[:favoritesLimit]
	}

	var resolved []map[string]any
	for _, eventID := range favorites {
		event, err := e.store.GetEvent(ctx, eventID)
		if err != nil {
			continue
		}
		resolved = append(resolved, map[string]any{
			"title":       event.Title,
			"destination": event.Title,
			"tags":        event.Tags,
		})
	}

	if len(resolved) == 0 {
		return "I looked through your favorites, but I need more data to make personalized suggestions. Keep exploring events!"
	}

	suggestion := &models.Suggestion{
		UserID:      userID,
		Kind:        models.SuggestionKindDestination,
		Title:       "Recommended Destinations",
		Description: fmt.Sprintf("Based on your %d favorites, here are personalized suggestions.", len(resolved)),
		Priority:    models.PriorityMedium,
		Payload:     map[string]any{"suggestions": resolved},
		CreatedAt:   e.now().UTC(),
	}
	if _, err := e.store.Add(ctx, store.CollectionSuggestions, suggestion); err != nil {
		e.logger.Error("suggestion_save_failed", zap.String("user_id", userID), zap.Error(err))
		return "An error occurred while analyzing your favorites. Please try again later."
	}

	return fmt.Sprintf("Based on your favorites, I found %d similar destinations you might love! Check the suggestions section for details.", len(resolved))
}

// suggestDates analyzes the user's committed trips for open travel windows
// and persists a suggestion carrying both the free and occupied ranges.
func (e *Engine) suggestDates(ctx context.Context, userID string) string {
	user, err := e.store.GetUser(ctx, userID)
	if err != nil {
		e.logger.Warn("date_suggestion_failed", zap.String("user_id", userID), zap.Error(err))
		return "I couldn't access your schedule."
	}

	if len(user.JoinedEvents) == 0 {
		return "You don't have any trips scheduled. How about planning a new adventure?"
	}

	occupied := e.loadDateRanges(ctx, user.JoinedEvents)
	if len(occupied) == 0 {
		return "I couldn't analyze your travel dates. Make sure your events have dates set."
	}

	freePeriods := FindFreePeriods(occupied, e.now().UTC())
	if len(freePeriods) == 0 {
		return "Your schedule is pretty packed! Consider planning trips further in advance."
	}

	suggestion := &models.Suggestion{
		UserID:      userID,
		Kind:        models.SuggestionKindDestination,
		Title:       "Best Dates to Travel",
		Description: "I analyzed your schedule and found free periods ideal for new trips.",
		Priority:    models.PriorityMedium,
		Payload: map[string]any{
			"free_periods":   freePeriods,
			"occupied_dates": occupied,
		},
		CreatedAt: e.now().UTC(),
	}
	if _, err := e.store.Add(ctx, store.CollectionSuggestions, suggestion); err != nil {
		e.logger.Error("suggestion_save_failed", zap.String("user_id", userID), zap.Error(err))
		return "An error occurred while analyzing your schedule. Please try again later."
	}

	return fmt.Sprintf("I analyzed your schedule and found %d free periods ideal for new trips! Check the suggestions for details.", len(freePeriods))
}

// createReminder persists a generic next-day reminder echoing the message.
// No date or entity extraction yet; TODO: parse explicit dates from the
// message once the schedule surface exposes event lookup by title.
func (e *Engine) createReminder(ctx context.Context, userID, message string) string {
	reminder := &models.Reminder{
		UserID:       userID,
		Title:        "Custom Reminder",
		Message:      fmt.Sprintf("Reminder created: %s", message),
		ReminderDate: e.now().UTC().Add(day),
		CreatedAt:    e.now().UTC(),
	}
	if _, err := e.store.Add(ctx, store.CollectionReminders, reminder); err != nil {
		e.logger.Error("reminder_save_failed", zap.String("user_id", userID), zap.Error(err))
		return "An error occurred while creating the reminder. Please try again."
	}
	return "Reminder created successfully! You'll get a notification tomorrow."
}

// scheduleSummary lists the user's upcoming trips, soonest first, capped at
// five bullets. Transient: nothing is persisted.
func (e *Engine) scheduleSummary(ctx context.Context, userID string) string {
	user, err := e.store.GetUser(ctx, userID)
	if err != nil {
		e.logger.Warn("schedule_summary_failed", zap.String("user_id", userID), zap.Error(err))
		return "I couldn't access your schedule."
	}

	if len(user.JoinedEvents) == 0 {
		return "You don't have any trips scheduled right now."
	}

	now := e.now().UTC()
	type upcoming struct {
		title     string
		date      time.Time
		daysUntil int
	}
	var events []upcoming
	for _, eventID := range user.JoinedEvents {
		event, err := e.store.GetEvent(ctx, eventID)
		if err != nil || event.ExitDate.IsZero() || !event.ExitDate.After(now) {
			continue
		}
		events = append(events, upcoming{
			title:     event.Title,
			date:      event.ExitDate,
			daysUntil: wholeDays(event.ExitDate.Sub(now)),
		})
	}

	if len(events) == 0 {
		return "You don't have any trips scheduled for the near future."
	}

	sort.Slice(events, func(i, j int) bool { return events[i].date.Before(events[j].date) })

	var b strings.Builder
	b.WriteString("📅 Your upcoming travel commitments:\n\n")
	shown := events
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for _, ev := range shown {
		fmt.Fprintf(&b, "• %s - in %d days\n", ev.title, ev.daysUntil)
	}
	if len(events) > 5 {
		fmt.Fprintf(&b, "\n... and %d more events.", len(events)-5)
	}
	return b.String()
}

// travelSummary reports trip and favorite counts with an encouragement line.
// Transient: nothing is persisted.
func (e *Engine) travelSummary(ctx context.Context, userID string) string {
	user, err := e.store.GetUser(ctx, userID)
	if err != nil {
		e.logger.Warn("travel_summary_failed", zap.String("user_id", userID), zap.Error(err))
		return "I couldn't access your travel data."
	}

	totalTrips := len(user.JoinedEvents)
	totalFavorites := len(user.FavoritePosts)

	var b strings.Builder
	b.WriteString("📊 Your travel summary:\n\n")
	fmt.Fprintf(&b, "• Total trips: %d\n", totalTrips)
	fmt.Fprintf(&b, "• Favorite destinations: %d\n", totalFavorites)
	if totalTrips > 0 {
		b.WriteString("\n🎯 You're an active traveler! Keep exploring new destinations.")
	} else {
		b.WriteString("\n🌟 How about you start your first adventure? Explore the available events!")
	}
	return b.String()
}

// checkConflicts looks for overlapping trips and persists a high-priority
// suggestion when any are found.
func (e *Engine) checkConflicts(ctx context.Context, userID string) string {
	user, err := e.store.GetUser(ctx, userID)
	if err != nil {
		e.logger.Warn("conflict_check_failed", zap.String("user_id", userID), zap.Error(err))
		return "I couldn't access your schedule."
	}

	if len(user.JoinedEvents) < 2 {
		return "You don't have enough events to check for conflicts."
	}

	events := e.loadDateRanges(ctx, user.JoinedEvents)
	conflicts := findConflicts(events)
	if len(conflicts) == 0 {
		return "✅ Your schedule is in good shape! No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("⚠️ Conflicts detected in your schedule:\n\n")
	for _, c := range conflicts {
		fmt.Fprintf(&b, "• %s and %s\n", c.Event1, c.Event2)
	}

	suggestion := &models.Suggestion{
		UserID:      userID,
		Kind:        models.SuggestionKindScheduleConflict,
		Title:       "Schedule Conflicts",
		Description: fmt.Sprintf("Detected %d date conflicts in your schedule.", len(conflicts)),
		Priority:    models.PriorityHigh,
		Payload:     map[string]any{"conflicts": conflicts},
		CreatedAt:   e.now().UTC(),
	}
	if _, err := e.store.Add(ctx, store.CollectionSuggestions, suggestion); err != nil {
		e.logger.Error("suggestion_save_failed", zap.String("user_id", userID), zap.Error(err))
		return "An error occurred while checking your schedule. Please try again."
	}

	b.WriteString("\nCheck the suggestions section for details.")
	return b.String()
}

// loadDateRanges resolves event IDs to their occupied date ranges, skipping
// unresolvable and undated events.
func (e *Engine) loadDateRanges(ctx context.Context, eventIDs []string) []DateRange {
	var ranges []DateRange
	for _, eventID := range eventIDs {
		event, err := e.store.GetEvent(ctx, eventID)
		if err != nil || !event.HasDates() {
			continue
		}
		ranges = append(ranges, DateRange{
			Start: event.ExitDate,
			End:   event.ReturnDate,
			Title: event.Title,
		})
	}
	return ranges
}
