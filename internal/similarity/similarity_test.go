package similarity

import (
	"testing"

	"github.com/matsen/citegraph/internal/citegraph"
)

// buildGraph constructs: A,B both cite X and Y (bibliographic coupling
// signal); C and D are both cited by A (co-citation signal for C,D).
func buildGraph() *citegraph.Graph {
	papers := map[string]citegraph.PaperInfo{}
	for _, id := range []string{"A", "B", "C", "D", "X", "Y"} {
		papers[id] = citegraph.PaperInfo{PaperID: id, Title: id}
	}
	return &citegraph.Graph{
		RootPaperID: "A",
		Papers:      papers,
		Edges: []citegraph.Edge{
			{CitingID: "A", CitedID: "X"},
			{CitingID: "A", CitedID: "Y"},
			{CitingID: "B", CitedID: "X"},
			{CitingID: "B", CitedID: "Y"},
			{CitingID: "A", CitedID: "C"},
			{CitingID: "A", CitedID: "D"},
		},
	}
}

func TestTopSimilar_BibliographicCoupling(t *testing.T) {
	g := buildGraph()
	results, err := TopSimilar(g, "A", MethodBibliographicCoupling, 10)
	if err != nil {
		t.Fatalf("TopSimilar: %v", err)
	}

	var forB *PaperSimilarity
	for i := range results {
		if results[i].PaperID == "B" {
			forB = &results[i]
		}
	}
	if forB == nil {
		t.Fatal("expected B in results (shares X,Y with A)")
	}
	if forB.Score != 0.5 {
		t.Errorf("score = %v, want 0.5 (A cites X,Y,C,D; B cites X,Y: 2 shared of 4)", forB.Score)
	}
	if forB.SharedRefs != 2 {
		t.Errorf("SharedRefs = %d, want 2", forB.SharedRefs)
	}
}

func TestTopSimilar_CoCitation(t *testing.T) {
	g := buildGraph()
	results, err := TopSimilar(g, "C", MethodCoCitation, 10)
	if err != nil {
		t.Fatalf("TopSimilar: %v", err)
	}

	var forD *PaperSimilarity
	for i := range results {
		if results[i].PaperID == "D" {
			forD = &results[i]
		}
	}
	if forD == nil {
		t.Fatal("expected D in results (both cited only by A)")
	}
	if forD.Score != 1.0 {
		t.Errorf("score = %v, want 1.0", forD.Score)
	}
}

func TestTopSimilar_ExcludesZeroScores(t *testing.T) {
	g := buildGraph()
	results, err := TopSimilar(g, "X", MethodBibliographicCoupling, 10)
	if err != nil {
		t.Fatalf("TopSimilar: %v", err)
	}
	for _, r := range results {
		if r.Score <= 0 {
			t.Errorf("unexpected zero/negative score for %q", r.PaperID)
		}
	}
}

func TestTopSimilar_UnknownMethod(t *testing.T) {
	g := buildGraph()
	_, err := TopSimilar(g, "A", Method("unknown"), 10)
	if err == nil {
		t.Fatal("expected an error for an unrecognised method")
	}
}

func TestTopSimilar_TruncatesToTopK(t *testing.T) {
	g := buildGraph()
	results, err := TopSimilar(g, "A", MethodCitationOverlap, 1)
	if err != nil {
		t.Fatalf("TopSimilar: %v", err)
	}
	if len(results) > 1 {
		t.Errorf("got %d results, want at most 1", len(results))
	}
}
