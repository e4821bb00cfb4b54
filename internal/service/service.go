// Package service wires the Metadata Client, Graph Builder, and
// analysers into the value-oriented facade that callers (the CLI,
// embedding applications) use: a CitationService constructed once from
// a metadata client and a config, passed explicitly rather than
// reached through package-level globals, per spec.md §9.3.
package service

import (
	"context"

	"github.com/matsen/citegraph/internal/builder"
	"github.com/matsen/citegraph/internal/citegraph"
	"github.com/matsen/citegraph/internal/cluster"
	"github.com/matsen/citegraph/internal/comparison"
	"github.com/matsen/citegraph/internal/config"
	"github.com/matsen/citegraph/internal/gaps"
	"github.com/matsen/citegraph/internal/metadata"
	"github.com/matsen/citegraph/internal/similarity"
	"github.com/matsen/citegraph/internal/summary"
)

// CitationService is the facade over the citation graph engine's core
// operations. It holds no mutable state beyond its configuration and
// metadata client; every operation is a pure function of its
// arguments plus whatever the metadata client currently returns.
type CitationService struct {
	client  *metadata.Client
	builder *builder.Builder
	cfg     config.Config
}

// New constructs a CitationService. cfg is backfilled with documented
// defaults via config.Config.WithDefaults.
func New(cfg config.Config) *CitationService {
	cfg = cfg.WithDefaults()

	var opts []metadata.ClientOption
	if cfg.S2APIKey != "" {
		opts = append(opts, metadata.WithAPIKey(cfg.S2APIKey))
	}
	opts = append(opts, metadata.WithTimeout(cfg.RequestTimeout))

	client := metadata.NewClient(opts...)
	return &CitationService{
		client:  client,
		builder: builder.New(client, cfg),
		cfg:     cfg,
	}
}

// BuildGraph runs the Graph Builder from rootID, per spec.md §4.3.
func (s *CitationService) BuildGraph(ctx context.Context, rootID string, depth int, direction citegraph.Direction) (*citegraph.Graph, error) {
	return s.builder.Build(ctx, rootID, depth, direction, s.cfg.MaxPapersPerLevel)
}

// Similar runs the Similarity Analyser against a previously built graph.
func (s *CitationService) Similar(graph *citegraph.Graph, sourceID string, method similarity.Method, topK int) ([]similarity.PaperSimilarity, error) {
	return similarity.TopSimilar(graph, sourceID, method, topK)
}

// Cluster runs the Cluster Analyser against a previously built graph.
func (s *CitationService) Cluster(graph *citegraph.Graph, minClusterSize, maxIterations int) cluster.Result {
	return cluster.Detect(graph, minClusterSize, maxIterations)
}

// Gaps runs the Gap Analyser against a previously built graph and its
// clustering result.
func (s *CitationService) Gaps(graph *citegraph.Graph, clustering cluster.Result) []gaps.Gap {
	return gaps.Detect(graph, clustering)
}

// Summarize runs the Summary Generator against a previously built
// graph and its clustering result.
func (s *CitationService) Summarize(graph *citegraph.Graph, clustering cluster.Result, currentYear int) summary.Summary {
	return summary.Generate(graph, clustering, currentYear)
}

// Compare runs the Comparison Analyser: it first materialises a
// single-hop graph over paperIDs (spec.md §4.3's _build_from_papers
// variant), then computes the set-algebraic comparison over it.
func (s *CitationService) Compare(ctx context.Context, paperIDs []string) (comparison.Result, error) {
	if len(paperIDs) < 2 || len(paperIDs) > 5 {
		return comparison.Result{}, metadata.ErrInvalidArgument
	}
	graph, err := s.builder.BuildFromPapers(ctx, paperIDs)
	if err != nil {
		return comparison.Result{}, err
	}
	return comparison.Compare(graph, paperIDs)
}

// Search runs a direct search against the upstream metadata service,
// bypassing graph construction.
func (s *CitationService) Search(ctx context.Context, query string, filters metadata.SearchFilters) metadata.SearchResult {
	return s.client.Search(ctx, query, s.cfg.MaxSearchResults, filters)
}

// PaperSummaryInfo is a quick, metrics-only projection of a single
// paper's metadata, fetched without building a graph.
type PaperSummaryInfo struct {
	PaperID                  string
	Title                    string
	Year                     *int
	CitationCount            *int
	ReferenceCount           *int
	InfluentialCitationCount *int
	ArXivID                  *string
	DOI                      *string
}

// PaperSummary fetches a single paper and projects it down to its
// citation metrics, skipping the Graph Builder entirely. Returns nil
// if the upstream service cannot resolve paperID.
func (s *CitationService) PaperSummary(ctx context.Context, paperID string) (*PaperSummaryInfo, error) {
	paper, err := s.client.GetPaper(ctx, paperID)
	if err != nil {
		return nil, err
	}
	if paper == nil {
		return nil, nil
	}
	return &PaperSummaryInfo{
		PaperID:                  paper.PaperID,
		Title:                    paper.Title,
		Year:                     paper.Year,
		CitationCount:            paper.CitationCount,
		ReferenceCount:           paper.ReferenceCount,
		InfluentialCitationCount: paper.InfluentialCitationCount,
		ArXivID:                  paper.ArXivID,
		DOI:                      paper.DOI,
	}, nil
}
