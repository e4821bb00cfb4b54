package main

import (
	"context"

	"github.com/spf13/cobra"
)

var clustersMinSize int

var clustersCmd = &cobra.Command{
	Use:   "clusters <paper-id>",
	Short: "Build a graph around paper-id and detect topical communities",
	Args:  cobra.ExactArgs(1),
	RunE:  runClusters,
}

func init() {
	rootCmd.AddCommand(clustersCmd)
	clustersCmd.Flags().IntVar(&clustersMinSize, "min-cluster-size", 3, "Minimum papers for a reported cluster")
}

func runClusters(cmd *cobra.Command, args []string) error {
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

	result := svc.Cluster(graph, clustersMinSize, 0)
	return outputJSON(result)
}
