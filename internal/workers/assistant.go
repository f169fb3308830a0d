package workers

import (
	"context"
	"fmt"

	"github.com/setjustgo/travel-assistant/internal/queue"
	"go.uber.org/zap"
)

// JobRunner is the engine surface the worker drives. Reminder and insight
// jobs report their results as slices; expiry sweeps report a count.
type JobRunner interface {
	RunDailyReminders(ctx context.Context, userID string) int
	RunWeeklyInsights(ctx context.Context, userID string) int
	RunSuggestionGC(ctx context.Context, userID string) (int, error)
}

// AssistantWorker consumes assistant jobs and drives the engine's batch
// operations.
type AssistantWorker struct {
	runner   JobRunner
	jobQueue queue.JobQueue
	logger   *zap.Logger
}

// NewAssistantWorker creates a new assistant worker.
func NewAssistantWorker(runner JobRunner, jobQueue queue.JobQueue, logger *zap.Logger) *AssistantWorker {
	return &AssistantWorker{
		runner:   runner,
		jobQueue: jobQueue,
		logger:   logger,
	}
}

// Run consumes jobs until ctx is cancelled or the delivery stream breaks.
func (w *AssistantWorker) Run(ctx context.Context, prefetchCount int) error {
	msgs, errs, err := w.jobQueue.Consume(ctx, prefetchCount)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case consumeErr, ok := <-errs:
			if !ok {
				return nil
			}
			if consumeErr != nil {
				w.logger.Error("consume_error", zap.Error(consumeErr))
			}
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := w.ProcessJob(ctx, msg); err != nil {
				w.logger.Warn("job_processing_failed",
					zap.String("job_id", msg.Job.ID.String()),
					zap.String("job_type", string(msg.Job.Type)),
					zap.Error(err))
			}
		}
	}
}

// ProcessJob processes a job based on its type
func (w *AssistantWorker) ProcessJob(ctx context.Context, msg queue.MessageInterface) error {
	job := msg.GetJob()

	if !job.ShouldProcess() {
		if job.IsExpired() {
			// Too late to be useful, drop to DLQ for inspection.
			if nackErr := msg.Nack(false); nackErr != nil {
				w.logger.Error("nack_failed", zap.Error(nackErr))
			}
			return fmt.Errorf("job %s expired", job.ID)
		}
		// Not ready yet, requeue for later.
		if nackErr := msg.Nack(true); nackErr != nil {
			w.logger.Error("nack_failed", zap.Error(nackErr))
		}
		return nil
	}

	switch job.Type {
	case queue.JobTypeDailyReminders:
		count := w.runner.RunDailyReminders(ctx, job.UserID)
		w.logger.Info("daily_reminders_job_done",
			zap.String("job_id", job.ID.String()),
			zap.String("user_id", job.UserID),
			zap.Int("reminders", count))
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack job: %w", ackErr)
		}
		return nil

	case queue.JobTypeWeeklyInsights:
		count := w.runner.RunWeeklyInsights(ctx, job.UserID)
		w.logger.Info("weekly_insights_job_done",
			zap.String("job_id", job.ID.String()),
			zap.String("user_id", job.UserID),
			zap.Int("insights", count))
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack job: %w", ackErr)
		}
		return nil

	case queue.JobTypeSuggestionGC:
		count, err := w.runner.RunSuggestionGC(ctx, job.UserID)
		if err != nil {
			return w.handleJobError(msg, job, err)
		}
		w.logger.Info("suggestion_gc_job_done",
			zap.String("job_id", job.ID.String()),
			zap.String("user_id", job.UserID),
			zap.Int("dismissed", count))
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack job: %w", ackErr)
		}
		return nil

	default:
		if nackErr := msg.Nack(false); nackErr != nil { // Unknown job type, send to DLQ
			w.logger.Error("nack_failed", zap.Error(nackErr))
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

// handleJobError retries a failed job while budget remains, then dead-letters it.
func (w *AssistantWorker) handleJobError(msg queue.MessageInterface, job *queue.Job, err error) error {
	if job.CanRetry() {
		job.IncrementRetry()
		w.logger.Warn("job_retrying",
			zap.String("job_id", job.ID.String()),
			zap.String("job_type", string(job.Type)),
			zap.Int("attempt", job.RetryCount),
			zap.Int("max_retries", job.MaxRetries),
			zap.Error(err))
		if nackErr := msg.Nack(true); nackErr != nil {
			w.logger.Error("nack_failed", zap.Error(nackErr))
		}
		return fmt.Errorf("job failed (will retry): %w", err)
	}

	w.logger.Error("job_dead_lettered",
		zap.String("job_id", job.ID.String()),
		zap.String("job_type", string(job.Type)),
		zap.Int("max_retries", job.MaxRetries),
		zap.Error(err))
	if nackErr := msg.Nack(false); nackErr != nil {
		w.logger.Error("nack_failed", zap.Error(nackErr))
	}
	return fmt.Errorf("job failed (max retries): %w", err)
}
