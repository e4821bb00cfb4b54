// Package builder implements the Graph Builder: a level-synchronous,
// bounded-concurrency breadth-first expansion from a root paper into a
// citegraph.Graph, per spec.md §4.3.
package builder

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matsen/citegraph/internal/citegraph"
	"github.com/matsen/citegraph/internal/config"
	"github.com/matsen/citegraph/internal/metadata"
)

// MetadataClient is the subset of *metadata.Client the builder depends
// on, so tests can substitute a fake.
type MetadataClient interface {
	GetPaper(ctx context.Context, paperID string) (*citegraph.PaperInfo, error)
	GetCitations(ctx context.Context, paperID string, limit int) []citegraph.CitationRelationship
	GetReferences(ctx context.Context, paperID string, limit int) []citegraph.CitationRelationship
}

// concurrencyLimit bounds outstanding fetch tasks within a single BFS
// level, per spec.md §5 ("recommended 8-16 outstanding").
const concurrencyLimit = 12

// Builder constructs citegraph.Graph values from a MetadataClient.
type Builder struct {
	client MetadataClient
	cfg    config.Config
}

// New returns a Builder that fetches through client, applying the
// depth and per-level caps from cfg.
func New(client MetadataClient, cfg config.Config) *Builder {
	return &Builder{client: client, cfg: cfg.WithDefaults()}
}

// task is one enqueued fetch within a BFS level: fetch relationships
// for pivot in the given direction.
type task struct {
	pivot     string
	direction citegraph.Direction
}

// fetchResult is the outcome of one task: the relationships returned,
// paired with which side of each relationship is the "pivot" so the
// caller can find the opposite endpoint.
type fetchResult struct {
	task          task
	relationships []citegraph.CitationRelationship
}

// Build runs the level-synchronous BFS described in spec.md §4.3.
// depth is clamped to [1,3] and to the configured MaxGraphDepth.
// maxPerLevel bounds how many relationship items are taken from each
// individual fetch.
func (b *Builder) Build(ctx context.Context, rootID string, depth int, direction citegraph.Direction, maxPerLevel int) (*citegraph.Graph, error) {
	if direction != citegraph.DirectionCitations && direction != citegraph.DirectionReferences && direction != citegraph.DirectionBoth {
		return nil, metadata.ErrInvalidArgument
	}

	depth = clampDepth(depth)
	if depth > b.cfg.MaxGraphDepth {
		depth = b.cfg.MaxGraphDepth
	}
	if maxPerLevel <= 0 {
		maxPerLevel = b.cfg.MaxPapersPerLevel
	}

	now := time.Now()
	graph := &citegraph.Graph{
		RootPaperID: rootID,
		Papers:      make(map[string]citegraph.PaperInfo),
		Edges:       nil,
		Depth:       depth,
		Direction:   direction,
		CreatedAt:   now,
	}

	root, err := b.client.GetPaper(ctx, rootID)
	if err != nil || root == nil {
		placeholder := citegraph.Placeholder(rootID, now)
		root = &placeholder
	}
	graph.Papers[rootID] = *root

	visited := map[string]struct{}{}
	frontier := []string{rootID}
	edgeSeen := map[citegraph.Edge]struct{}{}

	for level := 0; level < depth && len(frontier) > 0; level++ {
		tasks := make([]task, 0, len(frontier)*2)
		for _, pid := range frontier {
			if _, seen := visited[pid]; seen {
				continue
			}
			visited[pid] = struct{}{}

			if direction == citegraph.DirectionCitations || direction == citegraph.DirectionBoth {
				tasks = append(tasks, task{pivot: pid, direction: citegraph.DirectionCitations})
			}
			if direction == citegraph.DirectionReferences || direction == citegraph.DirectionBoth {
				tasks = append(tasks, task{pivot: pid, direction: citegraph.DirectionReferences})
			}
		}
		if len(tasks) == 0 {
			break
		}

		results := b.runLevel(ctx, tasks, maxPerLevel)

		var nextFrontier []string
		for _, res := range results {
			for _, rel := range res.relationships {
				other := otherEndpoint(res.task, rel)

				if _, known := graph.Papers[other.PaperID]; !known {
					graph.Papers[other.PaperID] = other
					nextFrontier = append(nextFrontier, other.PaperID)
				}

				edge := citegraph.Edge{CitingID: rel.CitingPaper.PaperID, CitedID: rel.CitedPaper.PaperID}
				if _, dup := edgeSeen[edge]; !dup {
					edgeSeen[edge] = struct{}{}
					graph.Edges = append(graph.Edges, edge)
				}
			}
		}

		frontier = nextFrontier
	}

	return graph, nil
}

// otherEndpoint returns the paper opposite the task's pivot within the
// relationship. For a DirectionCitations task the pivot is the cited
// paper and the citing paper is new; for DirectionReferences the pivot
// is the citing paper and the cited paper is new.
func otherEndpoint(t task, rel citegraph.CitationRelationship) citegraph.PaperInfo {
	if t.direction == citegraph.DirectionCitations {
		return rel.CitingPaper
	}
	return rel.CitedPaper
}

// runLevel executes all tasks for one BFS level with bounded
// concurrency, collecting each task's first maxPerLevel relationships.
// A single task's failure (recovered inside the metadata client as an
// empty slice) never aborts the level; other tasks' results are kept.
func (b *Builder) runLevel(ctx context.Context, tasks []task, maxPerLevel int) []fetchResult {
	results := make([]fetchResult, len(tasks))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrencyLimit)

	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			var rels []citegraph.CitationRelationship
			switch t.direction {
			case citegraph.DirectionCitations:
				rels = b.client.GetCitations(gctx, t.pivot, maxPerLevel)
			case citegraph.DirectionReferences:
				rels = b.client.GetReferences(gctx, t.pivot, maxPerLevel)
			}
			if len(rels) > maxPerLevel {
				rels = rels[:maxPerLevel]
			}

			mu.Lock()
			results[i] = fetchResult{task: t, relationships: rels}
			mu.Unlock()
			return nil
		})
	}
	// Tasks here never return an error (the metadata client recovers
	// all failures to empty results), so Wait cannot fail.
	_ = g.Wait()

	return results
}

// comparisonFetchLimit bounds the references/citations pulled per
// input paper for BuildFromPapers, per spec.md §4.8.
const comparisonFetchLimit = 50

// BuildFromPapers constructs a citegraph.Graph for the Comparison
// Analyser: for each input id it fetches the paper itself, its
// references, and its citations (no BFS expansion beyond that single
// hop), accumulating papers and edges across all inputs. The returned
// graph's RootPaperID is empty; comparison.Compare operates over the
// full paper set instead of a single root.
func (b *Builder) BuildFromPapers(ctx context.Context, paperIDs []string) (*citegraph.Graph, error) {
	now := time.Now()
	graph := &citegraph.Graph{
		Papers:    make(map[string]citegraph.PaperInfo),
		Direction: citegraph.DirectionBoth,
		CreatedAt: now,
	}
	edgeSeen := map[citegraph.Edge]struct{}{}

	for _, id := range paperIDs {
		p, err := b.client.GetPaper(ctx, id)
		if err != nil || p == nil {
			placeholder := citegraph.Placeholder(id, now)
			p = &placeholder
		}
		if _, known := graph.Papers[id]; !known {
			graph.Papers[id] = *p
		}

		for _, rel := range b.client.GetReferences(ctx, id, comparisonFetchLimit) {
			addRelationship(graph, edgeSeen, rel)
		}
		for _, rel := range b.client.GetCitations(ctx, id, comparisonFetchLimit) {
			addRelationship(graph, edgeSeen, rel)
		}
	}

	return graph, nil
}

// addRelationship merges one relationship's endpoints and edge into
// graph, skipping a paper already known and an edge already recorded.
func addRelationship(graph *citegraph.Graph, edgeSeen map[citegraph.Edge]struct{}, rel citegraph.CitationRelationship) {
	if _, known := graph.Papers[rel.CitingPaper.PaperID]; !known {
		graph.Papers[rel.CitingPaper.PaperID] = rel.CitingPaper
	}
	if _, known := graph.Papers[rel.CitedPaper.PaperID]; !known {
		graph.Papers[rel.CitedPaper.PaperID] = rel.CitedPaper
	}

	edge := citegraph.Edge{CitingID: rel.CitingPaper.PaperID, CitedID: rel.CitedPaper.PaperID}
	if _, dup := edgeSeen[edge]; !dup {
		edgeSeen[edge] = struct{}{}
		graph.Edges = append(graph.Edges, edge)
	}
}

// clampDepth restricts depth to the [1,3] range spec.md §4.3 mandates.
func clampDepth(depth int) int {
	if depth < 1 {
		return 1
	}
	if depth > 3 {
		return 3
	}
	return depth
}
