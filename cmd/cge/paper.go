package main

import (
	"context"

	"github.com/spf13/cobra"
)

var paperCmd = &cobra.Command{
	Use:   "paper <paper-id>",
	Short: "Fetch a single paper's citation metrics without building a graph",
	Args:  cobra.ExactArgs(1),
	RunE:  runPaper,
}

func init() {
	rootCmd.AddCommand(paperCmd)
}

func runPaper(cmd *cobra.Command, args []string) error {
	svc, err := serviceFromFlags(cmd)
	if err != nil {
		return err
	}

	result, err := svc.PaperSummary(context.Background(), args[0])
	if err != nil {
		return err
	}
	return outputJSON(result)
}
