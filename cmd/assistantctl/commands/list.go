package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/setjustgo/travel-assistant/internal/assistant"
	"github.com/setjustgo/travel-assistant/internal/config"
	"github.com/setjustgo/travel-assistant/internal/store"
)

// NewListCmd creates the list command with per-record-type subcommands.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assistant records for a user",
		Long:  "List suggestions, pending reminders, or insights straight from the database.",
	}
	cmd.AddCommand(newListSuggestionsCmd())
	cmd.AddCommand(newListRemindersCmd())
	cmd.AddCommand(newListInsightsCmd())
	return cmd
}

// openEngine connects to the database and builds a read-only engine.
// The caller must close the returned DB.
func openEngine() (*assistant.Engine, *store.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	classifier, err := assistant.NewRuleClassifier(assistant.DefaultPatterns())
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("compile intent patterns: %w", err)
	}
	return assistant.NewEngine(store.NewPostgres(db), classifier, zap.NewNop()), db, nil
}

func requireUser(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("--user is required")
	}
	return userID, nil
}

func newListSuggestionsCmd() *cobra.Command {
	var userID string
	var limit int
	cmd := &cobra.Command{
		Use:   "suggestions",
		Short: "List a user's active suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := requireUser(userID)
			if err != nil {
				return err
			}
			engine, db, err := openEngine()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			suggestions, err := engine.Suggestions(context.Background(), userID, limit)
			if err != nil {
				return fmt.Errorf("list suggestions: %w", err)
			}
			if len(suggestions) == 0 {
				fmt.Println("No active suggestions.")
				return nil
			}
			for _, s := range suggestions {
				fmt.Printf("%s  [%s/%s]  %s\n", s.ID, s.Kind, s.Priority, s.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User ID (required)")
	cmd.Flags().IntVar(&limit, "limit", assistant.DefaultSuggestionLimit, "Maximum records to list")
	return cmd
}

func newListRemindersCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "List a user's due, unsent reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := requireUser(userID)
			if err != nil {
				return err
			}
			engine, db, err := openEngine()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			reminders, err := engine.PendingReminders(context.Background(), userID)
			if err != nil {
				return fmt.Errorf("list reminders: %w", err)
			}
			if len(reminders) == 0 {
				fmt.Println("No pending reminders.")
				return nil
			}
			for _, r := range reminders {
				fmt.Printf("%s  due %s  %s\n", r.ID, r.ReminderDate.Format(time.RFC3339), r.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User ID (required)")
	return cmd
}

func newListInsightsCmd() *cobra.Command {
	var userID string
	var limit int
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "List a user's relevant insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := requireUser(userID)
			if err != nil {
				return err
			}
			engine, db, err := openEngine()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			insights, err := engine.Insights(context.Background(), userID, limit)
			if err != nil {
				return fmt.Errorf("list insights: %w", err)
			}
			if len(insights) == 0 {
				fmt.Println("No insights.")
				return nil
			}
			for _, in := range insights {
				fmt.Printf("%s  [%s %.2f]  %s\n", in.ID, in.InsightType, in.ConfidenceScore, in.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User ID (required)")
	cmd.Flags().IntVar(&limit, "limit", assistant.DefaultInsightLimit, "Maximum records to list")
	return cmd
}
