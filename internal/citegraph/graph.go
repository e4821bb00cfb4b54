package citegraph

import (
	"sync"
	"time"
)

// Graph is the central value produced by graph construction: a root
// paper, the set of papers discovered, the directed citation edges
// between them, and the parameters the traversal used.
//
// Invariants (enforced by the builder, never by mutation here):
//   - every id appearing in Edges is a key of Papers;
//   - RootPaperID is a key of Papers (except for graphs from
//     builder.BuildFromPapers, whose RootPaperID is empty);
//   - Edges contains no duplicate (citing, cited) pairs.
//
// A Graph is built once and never mutated afterward; it is safe for
// concurrent read access by multiple analysers.
type Graph struct {
	RootPaperID string
	Papers      map[string]PaperInfo
	Edges       []Edge
	Depth       int
	Direction   Direction
	CreatedAt   time.Time

	once       sync.Once
	adjOut     map[string]map[string]struct{}
	adjIn      map[string]map[string]struct{}
	adjUndir   map[string]map[string]struct{}
}

// NodeCount returns the number of papers in the graph.
func (g *Graph) NodeCount() int {
	return len(g.Papers)
}

// EdgeCount returns the number of citation edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}

// buildAdjacency derives the three adjacency views once, lazily, and
// caches them for the lifetime of the Graph.
func (g *Graph) buildAdjacency() {
	g.once.Do(func() {
		out := make(map[string]map[string]struct{}, len(g.Papers))
		in := make(map[string]map[string]struct{}, len(g.Papers))
		undir := make(map[string]map[string]struct{}, len(g.Papers))

		addTo := func(m map[string]map[string]struct{}, a, b string) {
			s, ok := m[a]
			if !ok {
				s = make(map[string]struct{})
				m[a] = s
			}
			s[b] = struct{}{}
		}

		for _, e := range g.Edges {
			addTo(out, e.CitingID, e.CitedID)
			addTo(in, e.CitedID, e.CitingID)
			addTo(undir, e.CitingID, e.CitedID)
			addTo(undir, e.CitedID, e.CitingID)
		}

		g.adjOut = out
		g.adjIn = in
		g.adjUndir = undir
	})
}

// AdjacencyOut returns, for each paper id with at least one outgoing
// edge, the set of paper ids it cites.
func (g *Graph) AdjacencyOut() map[string]map[string]struct{} {
	g.buildAdjacency()
	return g.adjOut
}

// AdjacencyIn returns, for each paper id with at least one incoming
// edge, the set of paper ids that cite it.
func (g *Graph) AdjacencyIn() map[string]map[string]struct{} {
	g.buildAdjacency()
	return g.adjIn
}

// AdjacencyUndirected returns the symmetric neighbour sets used by
// clustering: (a, b) in Edges implies b is a neighbour of a and a is a
// neighbour of b.
func (g *Graph) AdjacencyUndirected() map[string]map[string]struct{} {
	g.buildAdjacency()
	return g.adjUndir
}

// CitingPapers returns the ids of papers that cite paperID.
func (g *Graph) CitingPapers(paperID string) []string {
	var out []string
	for _, e := range g.Edges {
		if e.CitedID == paperID {
			out = append(out, e.CitingID)
		}
	}
	return out
}

// ReferencedPapers returns the ids of papers that paperID cites.
func (g *Graph) ReferencedPapers(paperID string) []string {
	var out []string
	for _, e := range g.Edges {
		if e.CitingID == paperID {
			out = append(out, e.CitedID)
		}
	}
	return out
}

// HasEdge reports whether the exact directed pair is already present.
func (g *Graph) HasEdge(citingID, citedID string) bool {
	for _, e := range g.Edges {
		if e.CitingID == citingID && e.CitedID == citedID {
			return true
		}
	}
	return false
}
