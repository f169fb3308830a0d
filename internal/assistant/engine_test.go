package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/setjustgo/travel-assistant/internal/models"
	"github.com/setjustgo/travel-assistant/internal/store"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, s store.Store) *Engine {
	t.Helper()
	classifier, err := NewRuleClassifier(DefaultPatterns())
	if err != nil {
		t.Fatalf("NewRuleClassifier failed: %v", err)
	}
	engine := NewEngine(s, classifier, zap.NewNop())
	engine.now = func() time.Time { return testNow }
	return engine
}

func seedUser(t *testing.T, s *store.Memory, user *models.User) {
	t.Helper()
	if err := s.Put(store.CollectionUsers, user.ID, user); err != nil {
		t.Fatalf("Put user failed: %v", err)
	}
}

func seedEvent(t *testing.T, s *store.Memory, event *models.Event) {
	t.Helper()
	if err := s.Put(store.CollectionEvents, event.ID, event); err != nil {
		t.Fatalf("Put event failed: %v", err)
	}
}

// failingStore rejects every write, for exercising fallback paths.
type failingStore struct {
	store.Store
}

func (f *failingStore) Add(ctx context.Context, collection string, record any) (string, error) {
	return "", errors.New("write rejected")
}

func TestProcessChatMessage_DestinationSuggestion(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	seedUser(t, s, &models.User{ID: "u1", FavoritePosts: []string{"e1", "e2"}})
	seedEvent(t, s, &models.Event{ID: "e1", Title: "Lisbon Getaway", Tags: []string{"beach"}})
	seedEvent(t, s, &models.Event{ID: "e2", Title: "Porto Wine Tour", Tags: []string{"food"}})

	engine := newTestEngine(t, s)
	turn := engine.ProcessChatMessage(context.Background(), "u1", "Can you suggest a destination for my next trip?")

	if turn.Intent != IntentSuggestDestination {
		t.Fatalf("Expected intent %q, got %q", IntentSuggestDestination, turn.Intent)
	}
	if !strings.Contains(turn.Response, "2") {
		t.Errorf("Expected response to mention 2 destinations, got %q", turn.Response)
	}
	if turn.ID == "" {
		t.Error("Expected chat message to be persisted with an ID")
	}

	if got := s.Count(store.CollectionSuggestions); got != 1 {
		t.Fatalf("Expected 1 persisted suggestion, got %d", got)
	}
	var suggestions []models.Suggestion
	if err := s.Find(context.Background(), store.CollectionSuggestions, store.Query{}, &suggestions); err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if suggestions[0].Kind != models.SuggestionKindDestination {
		t.Errorf("Expected kind %q, got %q", models.SuggestionKindDestination, suggestions[0].Kind)
	}
	if suggestions[0].Priority != models.PriorityMedium {
		t.Errorf("Expected medium priority, got %q", suggestions[0].Priority)
	}
}

func TestProcessChatMessage_DestinationEdgeCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		user         *models.User
		events       []*models.Event
		wantContains string
	}{
		{
			name:         "unknown user",
			user:         nil,
			wantContains: "couldn't access your data",
		},
		{
			name:         "no favorites",
			user:         &models.User{ID: "u1"},
			wantContains: "don't have any favorite destinations",
		},
		{
			name:         "favorites resolve to nothing",
			user:         &models.User{ID: "u1", FavoritePosts: []string{"gone"}},
			wantContains: "need more data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := store.NewMemory()
			if tt.user != nil {
				seedUser(t, s, tt.user)
			}
			for _, ev := range tt.events {
				seedEvent(t, s, ev)
			}

			engine := newTestEngine(t, s)
			turn := engine.ProcessChatMessage(context.Background(), "u1", "recommend a destination")

			if !strings.Contains(turn.Response, tt.wantContains) {
				t.Errorf("Expected response containing %q, got %q", tt.wantContains, turn.Response)
			}
			if got := s.Count(store.CollectionSuggestions); got != 0 {
				t.Errorf("Expected no persisted suggestions, got %d", got)
			}
		})
	}
}

func TestProcessChatMessage_FavoritesCapped(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	var favorites []string
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("e%d", i)
		favorites = append(favorites, id)
		seedEvent(t, s, &models.Event{ID: id, Title: "Trip " + id})
	}
	seedUser(t, s, &models.User{ID: "u1", FavoritePosts: favorites})

	engine := newTestEngine(t, s)
	turn := engine.ProcessChatMessage(context.Background(), "u1", "recommend a destination")

	if !strings.Contains(turn.Response, "5") {
		t.Errorf("Expected response capped at 5 destinations, got %q", turn.Response)
	}
}

func TestProcessChatMessage_DateSuggestion(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	seedUser(t, s, &models.User{ID: "u1", JoinedEvents: []string{"e1", "e2"}})
	seedEvent(t, s, &models.Event{ID: "e1", Title: "Spring Trip",
		ExitDate: testNow.AddDate(0, 0, 2), ReturnDate: testNow.AddDate(0, 0, 4)})
	seedEvent(t, s, &models.Event{ID: "e2", Title: "Summer Trip",
		ExitDate: testNow.AddDate(0, 0, 20), ReturnDate: testNow.AddDate(0, 0, 25)})

	engine := newTestEngine(t, s)
	turn := engine.ProcessChatMessage(context.Background(), "u1", "when is the best time to travel?")

	if turn.Intent != IntentSuggestDates {
		t.Fatalf("Expected intent %q, got %q", IntentSuggestDates, turn.Intent)
	}
	if !strings.Contains(turn.Response, "1 free period") {
		t.Errorf("Expected one free period in response, got %q", turn.Response)
	}
	if got := s.Count(store.CollectionSuggestions); got != 1 {
		t.Errorf("Expected 1 persisted suggestion, got %d", got)
	}
}

func TestProcessChatMessage_DateSuggestionWithoutDates(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	seedUser(t, s, &models.User{ID: "u1", JoinedEvents: []string{"e1"}})
	seedEvent(t, s, &models.Event{ID: "e1", Title: "Undated Trip"})

	engine := newTestEngine(t, s)
	turn := engine.ProcessChatMessage(context.Background(), "u1", "when should I travel?")

	if !strings.Contains(turn.Response, "have dates set") {
		t.Errorf("Expected undated-events response, got %q", turn.Response)
	}
}

func TestProcessChatMessage_Reminder(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	engine := newTestEngine(t, s)

	turn := engine.ProcessChatMessage(context.Background(), "u1", "remind me to renew my passport")

	if turn.Intent != IntentSetReminder {
		t.Fatalf("Expected intent %q, got %q", IntentSetReminder, turn.Intent)
	}
	if !strings.Contains(turn.Response, "Reminder created successfully") {
		t.Errorf("Unexpected response %q", turn.Response)
	}

	var reminders []models.Reminder
	if err := s.Find(context.Background(), store.CollectionReminders, store.Query{}, &reminders); err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("Expected 1 reminder, got %d", len(reminders))
	}
	if !strings.Contains(reminders[0].Message, "remind me to renew my passport") {
		t.Errorf("Expected reminder to echo the message, got %q", reminders[0].Message)
	}
	if !reminders[0].ReminderDate.Equal(testNow.Add(24 * time.Hour)) {
		t.Errorf("Expected reminder for tomorrow, got %v", reminders[0].ReminderDate)
	}
	if reminders[0].IsSent {
		t.Error("Engine must not mark reminders as sent")
	}
}

func TestProcessChatMessage_ScheduleSummary(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	joined := []string{"past"}
	seedEvent(t, s, &models.Event{ID: "past", Title: "Done Trip",
		ExitDate: testNow.AddDate(0, 0, -10), ReturnDate: testNow.AddDate(0, 0, -5)})
	for i := 0; i < 6; i++ {
		id := fmt.Sprintf("e%d", i)
		joined = append(joined, id)
		seedEvent(t, s, &models.Event{ID: id, Title: "Trip " + id,
			ExitDate: testNow.AddDate(0, 0, 10+i), ReturnDate: testNow.AddDate(0, 0, 12+i)})
	}
	seedUser(t, s, &models.User{ID: "u1", JoinedEvents: joined})

	engine := newTestEngine(t, s)
	turn := engine.ProcessChatMessage(context.Background(), "u1", "what events are upcoming in my agenda?")

	if turn.Intent != IntentShowSchedule {
		t.Fatalf("Expected intent %q, got %q", IntentShowSchedule, turn.Intent)
	}
	if strings.Contains(turn.Response, "Done Trip") {
		t.Errorf("Past events must be excluded, got %q", turn.Response)
	}
	if got := strings.Count(turn.Response, "•"); got != 5 {
		t.Errorf("Expected 5 bullets, got %d in %q", got, turn.Response)
	}
	if !strings.Contains(turn.Response, "1 more events") {
		t.Errorf("Expected overflow line, got %q", turn.Response)
	}
	if got := s.Count(store.CollectionSuggestions); got != 0 {
		t.Errorf("Schedule summary must not persist suggestions, got %d", got)
	}
}

func TestProcessChatMessage_TravelSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		user         *models.User
		wantContains string
	}{
		{
			name:         "active traveler",
			user:         &models.User{ID: "u1", JoinedEvents: []string{"e1", "e2"}, FavoritePosts: []string{"e3"}},
			wantContains: "active traveler",
		},
		{
			name:         "no trips yet",
			user:         &models.User{ID: "u1"},
			wantContains: "start your first adventure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := store.NewMemory()
			seedUser(t, s, tt.user)

			engine := newTestEngine(t, s)
			turn := engine.ProcessChatMessage(context.Background(), "u1", "show me a summary of my trips")

			if turn.Intent != IntentShowSummary {
				t.Fatalf("Expected intent %q, got %q", IntentShowSummary, turn.Intent)
			}
			if !strings.Contains(turn.Response, tt.wantContains) {
				t.Errorf("Expected response containing %q, got %q", tt.wantContains, turn.Response)
			}
			if got := s.Count(store.CollectionSuggestions); got != 0 {
				t.Errorf("Travel summary must not persist suggestions, got %d", got)
			}
		})
	}
}

func TestProcessChatMessage_ConflictCheck(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	seedUser(t, s, &models.User{ID: "u1", JoinedEvents: []string{"e1", "e2"}})
	seedEvent(t, s, &models.Event{ID: "e1", Title: "Lisbon",
		ExitDate: testNow.AddDate(0, 0, 5), ReturnDate: testNow.AddDate(0, 0, 10)})
	seedEvent(t, s, &models.Event{ID: "e2", Title: "Porto",
		ExitDate: testNow.AddDate(0, 0, 8), ReturnDate: testNow.AddDate(0, 0, 12)})

	engine := newTestEngine(t, s)
	turn := engine.ProcessChatMessage(context.Background(), "u1", "is there a conflict in my schedule?")

	if turn.Intent != IntentCheckConflicts {
		t.Fatalf("Expected intent %q, got %q", IntentCheckConflicts, turn.Intent)
	}
	if !strings.Contains(turn.Response, "Lisbon and Porto") {
		t.Errorf("Expected conflict pair in response, got %q", turn.Response)
	}

	var suggestions []models.Suggestion
	if err := s.Find(context.Background(), store.CollectionSuggestions, store.Query{}, &suggestions); err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("Expected 1 suggestion, got %d", len(suggestions))
	}
	if suggestions[0].Kind != models.SuggestionKindScheduleConflict {
		t.Errorf("Expected kind %q, got %q", models.SuggestionKindScheduleConflict, suggestions[0].Kind)
	}
	if suggestions[0].Priority != models.PriorityHigh {
		t.Errorf("Expected high priority, got %q", suggestions[0].Priority)
	}
}

func TestProcessChatMessage_ConflictCheckAllClear(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	seedUser(t, s, &models.User{ID: "u1", JoinedEvents: []string{"e1", "e2"}})
	seedEvent(t, s, &models.Event{ID: "e1", Title: "Lisbon",
		ExitDate: testNow.AddDate(0, 0, 5), ReturnDate: testNow.AddDate(0, 0, 7)})
	seedEvent(t, s, &models.Event{ID: "e2", Title: "Porto",
		ExitDate: testNow.AddDate(0, 0, 15), ReturnDate: testNow.AddDate(0, 0, 18)})

	engine := newTestEngine(t, s)
	turn := engine.ProcessChatMessage(context.Background(), "u1", "any conflict in my schedule?")

	if !strings.Contains(turn.Response, "No conflicts detected") {
		t.Errorf("Expected all-clear response, got %q", turn.Response)
	}
	if got := s.Count(store.CollectionSuggestions); got != 0 {
		t.Errorf("Expected no suggestions, got %d", got)
	}
}

func TestProcessChatMessage_Unknown(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	engine := newTestEngine(t, s)

	turn := engine.ProcessChatMessage(context.Background(), "u1", "what's the weather like?")

	if turn.Intent != IntentUnknown {
		t.Fatalf("Expected intent %q, got %q", IntentUnknown, turn.Intent)
	}
	if turn.Confidence != 0.0 {
		t.Errorf("Expected zero confidence, got %v", turn.Confidence)
	}
	if turn.Response != DefaultResponses()[IntentUnknown] {
		t.Errorf("Expected unknown fallback, got %q", turn.Response)
	}
	if got := s.Count(store.CollectionChatMessages); got != 1 {
		t.Errorf("Unknown turns must still be recorded, got %d", got)
	}
}

func TestProcessChatMessage_PersistenceFailure(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, &failingStore{Store: store.NewMemory()})
	turn := engine.ProcessChatMessage(context.Background(), "u1", "what's the weather like?")

	if turn.Intent != IntentError {
		t.Fatalf("Expected intent %q, got %q", IntentError, turn.Intent)
	}
	if turn.Response != DefaultResponses()[IntentError] {
		t.Errorf("Expected generic apology, got %q", turn.Response)
	}
	if turn.ID != "" {
		t.Errorf("Error turn must not carry an ID, got %q", turn.ID)
	}
}
