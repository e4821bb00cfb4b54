package builder

import (
	"context"
	"sort"
	"testing"

	"github.com/matsen/citegraph/internal/citegraph"
	"github.com/matsen/citegraph/internal/config"
)

// fakeClient is an in-memory MetadataClient backed by a small fixed
// citation network, used to exercise the BFS without any network I/O.
type fakeClient struct {
	papers     map[string]citegraph.PaperInfo
	citations  map[string][]citegraph.CitationRelationship
	references map[string][]citegraph.CitationRelationship
}

func (f *fakeClient) GetPaper(ctx context.Context, paperID string) (*citegraph.PaperInfo, error) {
	p, ok := f.papers[paperID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeClient) GetCitations(ctx context.Context, paperID string, limit int) []citegraph.CitationRelationship {
	return f.citations[paperID]
}

func (f *fakeClient) GetReferences(ctx context.Context, paperID string, limit int) []citegraph.CitationRelationship {
	return f.references[paperID]
}

func paper(id string) citegraph.PaperInfo {
	return citegraph.PaperInfo{PaperID: id, Title: "Paper " + id}
}

// newFixture builds: A --cites--> B --cites--> C, and D --cites--> B,
// so expanding "both" from B at depth 2 discovers A, C, D and, at
// depth 1 from A alone (references direction), discovers only B.
func newFixture() *fakeClient {
	return &fakeClient{
		papers: map[string]citegraph.PaperInfo{
			"A": paper("A"), "B": paper("B"), "C": paper("C"), "D": paper("D"),
		},
		references: map[string][]citegraph.CitationRelationship{
			"A": {{CitingPaper: paper("A"), CitedPaper: paper("B")}},
			"B": {{CitingPaper: paper("B"), CitedPaper: paper("C")}},
		},
		citations: map[string][]citegraph.CitationRelationship{
			"B": {
				{CitingPaper: paper("A"), CitedPaper: paper("B")},
				{CitingPaper: paper("D"), CitedPaper: paper("B")},
			},
		},
	}
}

func TestBuild_DirectionReferences(t *testing.T) {
	b := New(newFixture(), config.Default())
	g, err := b.Build(context.Background(), "A", 2, citegraph.DirectionReferences, 50)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if g.RootPaperID != "A" {
		t.Errorf("RootPaperID = %q, want A", g.RootPaperID)
	}
	for _, id := range []string{"A", "B", "C"} {
		if _, ok := g.Papers[id]; !ok {
			t.Errorf("expected paper %q in graph", id)
		}
	}
	if _, ok := g.Papers["D"]; ok {
		t.Errorf("did not expect paper D to be reached via references-only BFS from A")
	}

	wantEdges := map[citegraph.Edge]bool{
		{CitingID: "A", CitedID: "B"}: true,
		{CitingID: "B", CitedID: "C"}: true,
	}
	if len(g.Edges) != len(wantEdges) {
		t.Fatalf("got %d edges, want %d: %v", len(g.Edges), len(wantEdges), g.Edges)
	}
	for _, e := range g.Edges {
		if !wantEdges[e] {
			t.Errorf("unexpected edge %+v", e)
		}
	}
}

func TestBuild_DirectionBoth_DedupesSharedEdge(t *testing.T) {
	b := New(newFixture(), config.Default())
	// Depth 2: A->B comes from B's citations at level 1 and again from
	// A's references at level 2.
	g, err := b.Build(context.Background(), "B", 2, citegraph.DirectionBoth, 50)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ids := make([]string, 0, len(g.Papers))
	for id := range g.Papers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	want := []string{"A", "B", "C", "D"}
	if len(ids) != len(want) {
		t.Fatalf("got papers %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got papers %v, want %v", ids, want)
		}
	}

	edgeAB := 0
	for _, e := range g.Edges {
		if e == (citegraph.Edge{CitingID: "A", CitedID: "B"}) {
			edgeAB++
		}
	}
	if edgeAB != 1 {
		t.Errorf("edge A->B appeared %d times, want 1 (deduplicated across references and citations tasks)", edgeAB)
	}
}

func TestBuild_RootNotFound_UsesPlaceholder(t *testing.T) {
	b := New(&fakeClient{papers: map[string]citegraph.PaperInfo{}}, config.Default())
	g, err := b.Build(context.Background(), "missing", 1, citegraph.DirectionReferences, 50)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root, ok := g.Papers["missing"]
	if !ok {
		t.Fatal("expected placeholder for unresolved root")
	}
	if root.Title != "Unknown" {
		t.Errorf("placeholder title = %q, want Unknown", root.Title)
	}
	if len(g.Edges) != 0 {
		t.Errorf("expected no edges for an isolated placeholder root, got %v", g.Edges)
	}
}

func TestBuild_ClampsDepth(t *testing.T) {
	b := New(newFixture(), config.Default())
	g, err := b.Build(context.Background(), "A", 99, citegraph.DirectionReferences, 50)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.Depth != 3 {
		t.Errorf("Depth = %d, want clamped to 3", g.Depth)
	}
}

func TestBuild_InvalidDirection(t *testing.T) {
	b := New(newFixture(), config.Default())
	_, err := b.Build(context.Background(), "A", 1, citegraph.Direction("sideways"), 50)
	if err == nil {
		t.Fatal("expected an error for an invalid direction")
	}
}
