package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/setjustgo/travel-assistant/internal/models"
	"github.com/setjustgo/travel-assistant/internal/store"
)

func TestGenerateDailyReminders(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	seedUser(t, s, &models.User{ID: "u1", JoinedEvents: []string{"e3", "e1", "e0", "e5", "past", "undated"}})
	seedEvent(t, s, &models.Event{ID: "e3", Title: "Lisbon", ExitDate: testNow.AddDate(0, 0, 3)})
	seedEvent(t, s, &models.Event{ID: "e1", Title: "Porto", ExitDate: testNow.AddDate(0, 0, 1)})
	seedEvent(t, s, &models.Event{ID: "e0", Title: "Faro", ExitDate: testNow})
	seedEvent(t, s, &models.Event{ID: "e5", Title: "Braga", ExitDate: testNow.AddDate(0, 0, 5)})
	seedEvent(t, s, &models.Event{ID: "past", Title: "Done", ExitDate: testNow.AddDate(0, 0, -2)})
	seedEvent(t, s, &models.Event{ID: "undated", Title: "Someday"})

	engine := newTestEngine(t, s)
	reminders := engine.GenerateDailyReminders(context.Background(), "u1")

	if len(reminders) != 3 {
		t.Fatalf("Expected 3 reminders, got %d: %+v", len(reminders), reminders)
	}

	byEvent := make(map[string]models.Reminder, len(reminders))
	for _, r := range reminders {
		if r.ID == "" {
			t.Errorf("Expected persisted reminder ID for event %s", r.EventID)
		}
		if r.UserID != "u1" {
			t.Errorf("Expected user u1, got %s", r.UserID)
		}
		byEvent[r.EventID] = r
	}

	if r := byEvent["e3"]; r.Title != "Trip in 3 days!" || !strings.Contains(r.Message, "Lisbon") {
		t.Errorf("Unexpected 3-day reminder: %+v", r)
	}
	if r := byEvent["e1"]; r.Title != "Trip tomorrow!" || !strings.Contains(r.Message, "Porto") {
		t.Errorf("Unexpected 1-day reminder: %+v", r)
	}
	if r := byEvent["e0"]; r.Title != "Today's the day!" || !strings.Contains(r.Message, "Faro") {
		t.Errorf("Unexpected same-day reminder: %+v", r)
	}

	if got := s.Count(store.CollectionReminders); got != 3 {
		t.Errorf("Expected 3 persisted reminders, got %d", got)
	}
}

// Running the job twice duplicates every reminder. The duplicates are the
// current contract; scheduling owns once-a-day execution.
func TestGenerateDailyReminders_NotIdempotent(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	seedUser(t, s, &models.User{ID: "u1", JoinedEvents: []string{"e1"}})
	seedEvent(t, s, &models.Event{ID: "e1", Title: "Lisbon", ExitDate: testNow.AddDate(0, 0, 1)})

	engine := newTestEngine(t, s)
	engine.GenerateDailyReminders(context.Background(), "u1")
	engine.GenerateDailyReminders(context.Background(), "u1")

	if got := s.Count(store.CollectionReminders); got != 2 {
		t.Errorf("Expected duplicated reminders on re-run, got %d", got)
	}
}

func TestGenerateDailyReminders_UnknownUser(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, store.NewMemory())
	reminders := engine.GenerateDailyReminders(context.Background(), "missing")

	if len(reminders) != 0 {
		t.Errorf("Expected empty result for unknown user, got %d", len(reminders))
	}
}

func TestGenerateWeeklyInsights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		user      *models.User
		wantTypes []string
	}{
		{
			name:      "below both thresholds",
			user:      &models.User{ID: "u1", JoinedEvents: []string{"e1", "e2"}, FavoritePosts: []string{"e1"}},
			wantTypes: nil,
		},
		{
			name:      "trips threshold only",
			user:      &models.User{ID: "u1", JoinedEvents: []string{"e1", "e2", "e3"}},
			wantTypes: []string{models.InsightTypeTravelPattern},
		},
		{
			name:      "favorites threshold only",
			user:      &models.User{ID: "u1", FavoritePosts: []string{"e1", "e2"}},
			wantTypes: []string{models.InsightTypeDestinationExpansion},
		},
		{
			name:      "both thresholds",
			user:      &models.User{ID: "u1", JoinedEvents: []string{"e1", "e2", "e3"}, FavoritePosts: []string{"e1", "e2"}},
			wantTypes: []string{models.InsightTypeTravelPattern, models.InsightTypeDestinationExpansion},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := store.NewMemory()
			seedUser(t, s, tt.user)

			engine := newTestEngine(t, s)
			insights := engine.GenerateWeeklyInsights(context.Background(), "u1")

			if len(insights) != len(tt.wantTypes) {
				t.Fatalf("Expected %d insights, got %d: %+v", len(tt.wantTypes), len(insights), insights)
			}
			for i, wantType := range tt.wantTypes {
				if insights[i].InsightType != wantType {
					t.Errorf("Insight %d: expected type %q, got %q", i, wantType, insights[i].InsightType)
				}
				if !insights[i].IsRelevant {
					t.Errorf("Insight %d: expected is_relevant true", i)
				}
				if insights[i].ID == "" {
					t.Errorf("Insight %d: expected persisted ID", i)
				}
			}
			if got := s.Count(store.CollectionInsights); got != len(tt.wantTypes) {
				t.Errorf("Expected %d persisted insights, got %d", len(tt.wantTypes), got)
			}
		})
	}
}

func TestGenerateWeeklyInsights_Scores(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	seedUser(t, s, &models.User{ID: "u1",
		JoinedEvents:  []string{"e1", "e2", "e3", "e4"},
		FavoritePosts: []string{"e1", "e2", "e3"}})

	engine := newTestEngine(t, s)
	insights := engine.GenerateWeeklyInsights(context.Background(), "u1")

	if len(insights) != 2 {
		t.Fatalf("Expected 2 insights, got %d", len(insights))
	}
	if insights[0].ConfidenceScore != 0.8 {
		t.Errorf("Expected travel pattern score 0.8, got %v", insights[0].ConfidenceScore)
	}
	if !strings.Contains(insights[0].Description, "4") {
		t.Errorf("Expected trip count in description, got %q", insights[0].Description)
	}
	if insights[1].ConfidenceScore != 0.7 {
		t.Errorf("Expected destination expansion score 0.7, got %v", insights[1].ConfidenceScore)
	}
}

func TestDismissExpiredSuggestions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()

	expired := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)
	suggestions := []*models.Suggestion{
		{UserID: "u1", Kind: models.SuggestionKindDestination, ExpiresAt: &expired},
		{UserID: "u1", Kind: models.SuggestionKindDestination, ExpiresAt: &future},
		{UserID: "u1", Kind: models.SuggestionKindDestination},
		{UserID: "u2", Kind: models.SuggestionKindDestination, ExpiresAt: &expired},
	}
	for _, sg := range suggestions {
		if _, err := s.Add(ctx, store.CollectionSuggestions, sg); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	engine := newTestEngine(t, s)
	dismissed, err := engine.DismissExpiredSuggestions(ctx, "u1")
	if err != nil {
		t.Fatalf("DismissExpiredSuggestions failed: %v", err)
	}
	if dismissed != 1 {
		t.Errorf("Expected 1 dismissed suggestion, got %d", dismissed)
	}

	active, err := engine.Suggestions(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("Suggestions failed: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("Expected 2 active suggestions for u1, got %d", len(active))
	}
}
