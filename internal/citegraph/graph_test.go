package citegraph

import (
	"testing"
	"time"
)

func paper(id string) PaperInfo {
	return PaperInfo{PaperID: id, Title: id, FetchedAt: time.Now()}
}

func TestGraph_Adjacency(t *testing.T) {
	g := &Graph{
		RootPaperID: "A",
		Papers: map[string]PaperInfo{
			"A": paper("A"), "B": paper("B"), "C": paper("C"),
		},
		Edges: []Edge{
			{CitingID: "A", CitedID: "B"},
			{CitingID: "C", CitedID: "B"},
		},
		Depth:     1,
		Direction: DirectionBoth,
		CreatedAt: time.Now(),
	}

	out := g.AdjacencyOut()
	if _, ok := out["A"]["B"]; !ok {
		t.Errorf("expected A -> B in adjacency-out")
	}

	in := g.AdjacencyIn()
	if len(in["B"]) != 2 {
		t.Errorf("expected 2 citers of B, got %d", len(in["B"]))
	}

	undir := g.AdjacencyUndirected()
	if _, ok := undir["B"]["A"]; !ok {
		t.Errorf("expected undirected B ~ A")
	}
	if _, ok := undir["B"]["C"]; !ok {
		t.Errorf("expected undirected B ~ C")
	}

	if !g.HasEdge("A", "B") {
		t.Errorf("HasEdge(A, B) = false, want true")
	}
	if g.HasEdge("B", "A") {
		t.Errorf("HasEdge(B, A) = true, want false (directed)")
	}
}

func TestGraph_CitingAndReferencedPapers(t *testing.T) {
	g := &Graph{
		Papers: map[string]PaperInfo{"A": paper("A"), "B": paper("B"), "C": paper("C")},
		Edges: []Edge{
			{CitingID: "A", CitedID: "B"},
			{CitingID: "A", CitedID: "C"},
		},
	}

	refs := g.ReferencedPapers("A")
	if len(refs) != 2 {
		t.Fatalf("expected 2 referenced papers, got %d", len(refs))
	}

	citers := g.CitingPapers("B")
	if len(citers) != 1 || citers[0] != "A" {
		t.Errorf("expected [A] citers of B, got %v", citers)
	}
}
