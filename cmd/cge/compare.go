package main

import (
	"context"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <paper-id> <paper-id> [paper-id...]",
	Short: "Compare 2-5 papers over their shared references and citers",
	Args:  cobra.RangeArgs(2, 5),
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	svc, err := serviceFromFlags(cmd)
	if err != nil {
		return err
	}
	result, err := svc.Compare(context.Background(), args)
	if err != nil {
		return err
	}
	return outputJSON(result)
}
