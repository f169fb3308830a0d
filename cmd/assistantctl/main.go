package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/setjustgo/travel-assistant/cmd/assistantctl/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "assistantctl",
		Short: "Operations tool for the travel assistant",
		Long:  "CLI tool for classifying messages, enqueueing background jobs, and inspecting assistant records",
	}

	rootCmd.AddCommand(commands.NewClassifyCmd())
	rootCmd.AddCommand(commands.NewJobsCmd())
	rootCmd.AddCommand(commands.NewListCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
