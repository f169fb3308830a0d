package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/setjustgo/travel-assistant/internal/assistant"
)

// NewClassifyCmd creates the classify command. It runs the rule classifier
// locally without touching the database or the broker.
func NewClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <message>",
		Short: "Classify a chat message into an intent",
		Long:  "Run the rule classifier against a message and print the detected intent and confidence.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := assistant.NewRuleClassifier(assistant.DefaultPatterns())
			if err != nil {
				return fmt.Errorf("compile intent patterns: %w", err)
			}

			message := strings.Join(args, " ")
			intent, confidence := classifier.Classify(context.Background(), message)
			fmt.Printf("Intent:     %s\n", intent)
			fmt.Printf("Confidence: %.2f\n", confidence)
			return nil
		},
	}
}
