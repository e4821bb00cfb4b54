package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matsen/citegraph/internal/config"
)

// fileConfig is the on-disk shape accepted by --config. It is a thin
// convenience for local runs only: a CLI user can keep their usual
// flags in a file instead of retyping them. It has no bearing on the
// core library, which never reads from disk.
type fileConfig struct {
	S2APIKey          string `yaml:"s2_api_key"`
	RequestTimeout    string `yaml:"request_timeout"`
	MaxCitations      int    `yaml:"max_citations"`
	MaxReferences     int    `yaml:"max_references"`
	MaxGraphDepth     int    `yaml:"max_graph_depth"`
	MaxPapersPerLevel int    `yaml:"max_papers_per_level"`
	MaxSearchResults  int    `yaml:"max_search_results"`
}

// loadConfigFile reads a YAML file at path and applies it on top of
// cfg. The file's API key is used only when cfg has none; every other
// field the file sets (a non-empty timeout, a positive limit) replaces
// cfg's value. An empty path is a no-op.
func loadConfigFile(path string, cfg config.Config) (config.Config, error) {
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file %q: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return cfg, fmt.Errorf("parsing config file %q: %w", path, err)
	}

	if cfg.S2APIKey == "" {
		cfg.S2APIKey = fc.S2APIKey
	}
	if fc.RequestTimeout != "" {
		if d, err := time.ParseDuration(fc.RequestTimeout); err == nil {
			cfg.RequestTimeout = d
		} else {
			return cfg, fmt.Errorf("config file %q: invalid request_timeout %q: %w", path, fc.RequestTimeout, err)
		}
	}
	if fc.MaxCitations > 0 {
		cfg.MaxCitations = fc.MaxCitations
	}
	if fc.MaxReferences > 0 {
		cfg.MaxReferences = fc.MaxReferences
	}
	if fc.MaxGraphDepth > 0 {
		cfg.MaxGraphDepth = fc.MaxGraphDepth
	}
	if fc.MaxPapersPerLevel > 0 {
		cfg.MaxPapersPerLevel = fc.MaxPapersPerLevel
	}
	if fc.MaxSearchResults > 0 {
		cfg.MaxSearchResults = fc.MaxSearchResults
	}

	return cfg, nil
}
