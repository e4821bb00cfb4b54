package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matsen/citegraph/internal/metadata"
)

var (
	searchYear         string
	searchFieldsOfStudy []string
	searchMinCitations int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the upstream metadata service for papers",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchYear, "year", "", "Year filter: YYYY, YYYY-YYYY, YYYY-, or -YYYY")
	searchCmd.Flags().StringSliceVar(&searchFieldsOfStudy, "fields-of-study", nil, "Restrict to these fields of study")
	searchCmd.Flags().IntVar(&searchMinCitations, "min-citations", 0, "Minimum citation count")
}

func runSearch(cmd *cobra.Command, args []string) error {
	svc, err := serviceFromFlags(cmd)
	if err != nil {
		return err
	}

	filters := metadata.SearchFilters{
		YearFilter:    searchYear,
		FieldsOfStudy: searchFieldsOfStudy,
	}
	if searchMinCitations > 0 {
		filters.MinCitations = &searchMinCitations
	}

	result := svc.Search(context.Background(), args[0], filters)
	return outputJSON(result)
}
