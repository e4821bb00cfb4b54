// Package main provides the cge CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cge",
	Short: "Citation graph engine: traverse and analyse scholarly citation networks",
	Long: `cge builds a bounded citation graph from a single paper identifier and
runs local analyses over it: similarity scoring, community detection,
research-gap inference, area summarisation, and multi-paper comparison.

Output is JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.PersistentFlags().String("s2-api-key", "", "Semantic Scholar API key (overrides S2_API_KEY)")
	rootCmd.PersistentFlags().Int("depth", 2, "BFS depth for graph construction (1-3)")
	rootCmd.PersistentFlags().String("direction", "both", "Traversal direction: citations, references, or both")
	rootCmd.PersistentFlags().Int("max-per-level", 0, "Cap on relationships taken from each fetch in a BFS level (0 = default)")
	rootCmd.PersistentFlags().String("config", "", "Optional YAML file with default limits and API key")
}
