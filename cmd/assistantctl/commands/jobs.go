package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/setjustgo/travel-assistant/internal/config"
	"github.com/setjustgo/travel-assistant/internal/queue"
	"github.com/setjustgo/travel-assistant/internal/validation"
)

// NewJobsCmd creates the jobs command with an enqueue subcommand.
func NewJobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Manage background jobs",
		Long:  "Enqueue daily reminder, weekly insight, and suggestion GC jobs for a user.",
	}
	cmd.AddCommand(newJobsEnqueueCmd())
	return cmd
}

func newJobsEnqueueCmd() *cobra.Command {
	var jobType string
	var userID string
	cmd := &cobra.Command{
		Use:   "enqueue",
		Short: "Enqueue a background job",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobType = strings.TrimSpace(jobType)
			userID = strings.TrimSpace(userID)
			if userID == "" {
				return fmt.Errorf("--user is required")
			}
			if err := validation.ValidateJobType(jobType); err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			jobQueue, err := queue.NewRabbitMQQueue(cfg.RabbitMQURL, zap.NewNop())
			if err != nil {
				return fmt.Errorf("connect to rabbitmq: %w", err)
			}
			defer func() { _ = jobQueue.Close() }()

			job := queue.NewJob(queue.JobType(jobType), userID)
			if err := jobQueue.Enqueue(context.Background(), job); err != nil {
				return fmt.Errorf("enqueue job: %w", err)
			}
			fmt.Printf("Enqueued %s job %s for user %s\n", job.Type, job.ID, job.UserID)
			return nil
		},
	}
	cmd.Flags().StringVar(&jobType, "type", "", "Job type (daily_reminders, weekly_insights, suggestion_gc) (required)")
	cmd.Flags().StringVar(&userID, "user", "", "User ID the job targets (required)")
	return cmd
}
