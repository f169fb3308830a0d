package workers

import (
	"context"

	"github.com/setjustgo/travel-assistant/internal/assistant"
)

// EngineRunner adapts the suggestion engine to the JobRunner interface.
type EngineRunner struct {
	engine *assistant.Engine
}

// NewEngineRunner wraps an engine for job processing.
func NewEngineRunner(engine *assistant.Engine) *EngineRunner {
	return &EngineRunner{engine: engine}
}

// RunDailyReminders generates departure reminders and returns how many were created.
func (r *EngineRunner) RunDailyReminders(ctx context.Context, userID string) int {
	return len(r.engine.GenerateDailyReminders(ctx, userID))
}

// RunWeeklyInsights generates insights and returns how many were created.
func (r *EngineRunner) RunWeeklyInsights(ctx context.Context, userID string) int {
	return len(r.engine.GenerateWeeklyInsights(ctx, userID))
}

// RunSuggestionGC dismisses expired suggestions and returns how many were swept.
func (r *EngineRunner) RunSuggestionGC(ctx context.Context, userID string) (int, error) {
	return r.engine.DismissExpiredSuggestions(ctx, userID)
}

var _ JobRunner = (*EngineRunner)(nil)
