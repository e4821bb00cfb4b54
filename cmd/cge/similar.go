package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matsen/citegraph/internal/similarity"
)

var similarMethod string
var similarTopK int

var similarCmd = &cobra.Command{
	Use:   "similar <paper-id>",
	Short: "Build a graph around paper-id and rank the most similar papers in it",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

func init() {
	rootCmd.AddCommand(similarCmd)
	similarCmd.Flags().StringVar(&similarMethod, "method", "citation_overlap", "bibliographic_coupling, co_citation, or citation_overlap")
	similarCmd.Flags().IntVar(&similarTopK, "top-k", 10, "Number of results to return")
}

func runSimilar(cmd *cobra.Command, args []string) error {
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

	results, err := svc.Similar(graph, args[0], similarity.Method(similarMethod), similarTopK)
	if err != nil {
		return err
	}
	return outputJSON(results)
}
