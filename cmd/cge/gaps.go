package main

import (
	"context"

	"github.com/spf13/cobra"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps <paper-id>",
	Short: "Build a graph around paper-id and infer candidate research gaps",
	Args:  cobra.ExactArgs(1),
	RunE:  runGaps,
}

func init() {
	rootCmd.AddCommand(gapsCmd)
}

func runGaps(cmd *cobra.Command, args []string) error {
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
	return outputJSON(svc.Gaps(graph, clustering))
}
