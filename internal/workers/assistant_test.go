package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/setjustgo/travel-assistant/internal/queue"
	"go.uber.org/zap"
)

type mockMessage struct {
	job      *queue.Job
	acked    bool
	nacked   bool
	requeued bool
}

func (m *mockMessage) Ack() error {
	m.acked = true
	return nil
}

func (m *mockMessage) Nack(requeue bool) error {
	m.nacked = true
	m.requeued = requeue
	return nil
}

func (m *mockMessage) GetJob() *queue.Job {
	return m.job
}

type mockRunner struct {
	reminderCalls []string
	insightCalls  []string
	gcCalls       []string
	gcErr         error
}

func (m *mockRunner) RunDailyReminders(ctx context.Context, userID string) int {
	m.reminderCalls = append(m.reminderCalls, userID)
	return 2
}

func (m *mockRunner) RunWeeklyInsights(ctx context.Context, userID string) int {
	m.insightCalls = append(m.insightCalls, userID)
	return 1
}

func (m *mockRunner) RunSuggestionGC(ctx context.Context, userID string) (int, error) {
	m.gcCalls = append(m.gcCalls, userID)
	if m.gcErr != nil {
		return 0, m.gcErr
	}
	return 3, nil
}

func newJob(jobType queue.JobType) *queue.Job {
	job := queue.NewJob(jobType, "u1")
	return job
}

func TestProcessJob_DailyReminders(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{}
	worker := NewAssistantWorker(runner, nil, zap.NewNop())
	msg := &mockMessage{job: newJob(queue.JobTypeDailyReminders)}

	if err := worker.ProcessJob(context.Background(), msg); err != nil {
		t.Fatalf("ProcessJob failed: %v", err)
	}
	if len(runner.reminderCalls) != 1 || runner.reminderCalls[0] != "u1" {
		t.Errorf("Expected one reminder run for u1, got %v", runner.reminderCalls)
	}
	if !msg.acked {
		t.Error("Expected message to be acked")
	}
}

func TestProcessJob_WeeklyInsights(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{}
	worker := NewAssistantWorker(runner, nil, zap.NewNop())
	msg := &mockMessage{job: newJob(queue.JobTypeWeeklyInsights)}

	if err := worker.ProcessJob(context.Background(), msg); err != nil {
		t.Fatalf("ProcessJob failed: %v", err)
	}
	if len(runner.insightCalls) != 1 {
		t.Errorf("Expected one insight run, got %v", runner.insightCalls)
	}
	if !msg.acked {
		t.Error("Expected message to be acked")
	}
}

func TestProcessJob_SuggestionGC(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{}
	worker := NewAssistantWorker(runner, nil, zap.NewNop())
	msg := &mockMessage{job: newJob(queue.JobTypeSuggestionGC)}

	if err := worker.ProcessJob(context.Background(), msg); err != nil {
		t.Fatalf("ProcessJob failed: %v", err)
	}
	if len(runner.gcCalls) != 1 {
		t.Errorf("Expected one GC run, got %v", runner.gcCalls)
	}
	if !msg.acked {
		t.Error("Expected message to be acked")
	}
}

func TestProcessJob_GCFailureRetries(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{gcErr: errors.New("store down")}
	worker := NewAssistantWorker(runner, nil, zap.NewNop())
	job := newJob(queue.JobTypeSuggestionGC)
	msg := &mockMessage{job: job}

	err := worker.ProcessJob(context.Background(), msg)
	if err == nil {
		t.Fatal("Expected error from failing GC job")
	}
	if !msg.nacked || !msg.requeued {
		t.Error("Expected nack with requeue while retries remain")
	}
	if job.RetryCount != 1 {
		t.Errorf("Expected retry count 1, got %d", job.RetryCount)
	}
}

func TestProcessJob_GCFailureDeadLetters(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{gcErr: errors.New("store down")}
	worker := NewAssistantWorker(runner, nil, zap.NewNop())
	job := newJob(queue.JobTypeSuggestionGC)
	job.RetryCount = job.MaxRetries
	msg := &mockMessage{job: job}

	err := worker.ProcessJob(context.Background(), msg)
	if err == nil {
		t.Fatal("Expected error from exhausted GC job")
	}
	if !msg.nacked || msg.requeued {
		t.Error("Expected nack without requeue after max retries")
	}
}

func TestProcessJob_UnknownType(t *testing.T) {
	t.Parallel()

	worker := NewAssistantWorker(&mockRunner{}, nil, zap.NewNop())
	msg := &mockMessage{job: newJob("mystery")}

	err := worker.ProcessJob(context.Background(), msg)
	if err == nil {
		t.Fatal("Expected error for unknown job type")
	}
	if !msg.nacked || msg.requeued {
		t.Error("Expected nack without requeue for unknown type")
	}
}

func TestProcessJob_NotReadyRequeues(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{}
	worker := NewAssistantWorker(runner, nil, zap.NewNop())
	job := newJob(queue.JobTypeDailyReminders)
	later := time.Now().Add(time.Hour)
	job.NotBefore = &later
	msg := &mockMessage{job: job}

	if err := worker.ProcessJob(context.Background(), msg); err != nil {
		t.Fatalf("ProcessJob failed: %v", err)
	}
	if !msg.nacked || !msg.requeued {
		t.Error("Expected nack with requeue for not-ready job")
	}
	if len(runner.reminderCalls) != 0 {
		t.Errorf("Expected no runs, got %v", runner.reminderCalls)
	}
}

func TestProcessJob_ExpiredDeadLetters(t *testing.T) {
	t.Parallel()

	worker := NewAssistantWorker(&mockRunner{}, nil, zap.NewNop())
	job := newJob(queue.JobTypeDailyReminders)
	past := time.Now().Add(-time.Hour)
	job.NotAfter = &past
	msg := &mockMessage{job: job}

	err := worker.ProcessJob(context.Background(), msg)
	if err == nil {
		t.Fatal("Expected error for expired job")
	}
	if !msg.nacked || msg.requeued {
		t.Error("Expected nack without requeue for expired job")
	}
}
