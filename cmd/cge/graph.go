package main

import (
	"context"

	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <paper-id>",
	Short: "Build a citation graph from a root paper and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
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
	return outputJSON(graph)
}
