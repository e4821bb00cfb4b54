package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/citegraph/internal/citegraph"
	"github.com/matsen/citegraph/internal/config"
	"github.com/matsen/citegraph/internal/service"
)

// serviceFromFlags builds a CitationService from the root command's
// persistent flags, falling back to the S2_API_KEY environment
// variable when --s2-api-key is unset, and to --config's YAML file
// for any limit left at its default. A positive --max-per-level
// overrides the per-level cap from both.
func serviceFromFlags(cmd *cobra.Command) (*service.CitationService, error) {
	apiKey, _ := cmd.Flags().GetString("s2-api-key")
	if apiKey == "" {
		apiKey = os.Getenv("S2_API_KEY")
	}

	cfg := config.Default()
	cfg.S2APIKey = apiKey

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfigFile(configPath, cfg)
	if err != nil {
		return nil, err
	}

	if maxPerLevel, _ := cmd.Flags().GetInt("max-per-level"); maxPerLevel > 0 {
		cfg.MaxPapersPerLevel = maxPerLevel
	}

	return service.New(cfg), nil
}

// directionFromFlags reads --direction and maps it to a
// citegraph.Direction, defaulting to "both" for anything unrecognised.
func directionFromFlags(cmd *cobra.Command) citegraph.Direction {
	raw, _ := cmd.Flags().GetString("direction")
	switch raw {
	case string(citegraph.DirectionCitations):
		return citegraph.DirectionCitations
	case string(citegraph.DirectionReferences):
		return citegraph.DirectionReferences
	default:
		return citegraph.DirectionBoth
	}
}
