package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <paper-id>",
	Short: "Build a graph around paper-id and produce an area-level summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	svc, err := serviceFromFlags(cmd)
	if err != nil {
		return err
	}
	depth, _ := cmd.Flags().GetInt("depth")
	direction := directionFromFlags(cmd)

	graph, err := svc.BuildGraph(context.Background(), args[0], depth, direction)
	if err != nil {
		return err
	}

	clustering := svc.Cluster(graph, 0, 0)
	result := svc.Summarize(graph, clustering, time.Now().Year())
	return outputJSON(result)
}
