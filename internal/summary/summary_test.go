package summary

import (
	"testing"

	"github.com/matsen/citegraph/internal/citegraph"
	"github.com/matsen/citegraph/internal/cluster"
)

func yr(y int) *int { return &y }
func cnt(c int) *int { return &c }

func buildGraph() *citegraph.Graph {
	return &citegraph.Graph{
		RootPaperID: "root",
		Papers: map[string]citegraph.PaperInfo{
			"root": {PaperID: "root", Title: "A Survey of Graph Neural Networks for Citation Analysis and Beyond the Usual Scope", Year: yr(2020)},
			"p1":   {PaperID: "p1", Title: "Foundational Work", Year: yr(2018), CitationCount: cnt(100)},
			"p2":   {PaperID: "p2", Title: "Recent Transformer Advances", Year: yr(2024), CitationCount: cnt(50)},
			"p3":   {PaperID: "p3", Title: "Bridging Paper", Year: yr(2022), CitationCount: cnt(10)},
		},
		Edges: []citegraph.Edge{
			{CitingID: "root", CitedID: "p1"},
			{CitingID: "p3", CitedID: "p1"},
			{CitingID: "p3", CitedID: "p2"},
		},
	}
}

func TestGenerate_FoundationalPapers(t *testing.T) {
	s := Generate(buildGraph(), cluster.Result{}, 2025)
	if len(s.FoundationalPapers) == 0 || s.FoundationalPapers[0] != "p1" {
		t.Errorf("FoundationalPapers = %v, want p1 first (highest in-degree)", s.FoundationalPapers)
	}
}

func TestGenerate_RecentInfluential_ExcludesOldPapers(t *testing.T) {
	s := Generate(buildGraph(), cluster.Result{}, 2025)
	for _, id := range s.RecentInfluential {
		if id == "p1" {
			t.Errorf("p1 (2018) should not appear in recent_influential relative to current year 2025")
		}
	}
}

func TestGenerate_Timeline_SortedByYear(t *testing.T) {
	s := Generate(buildGraph(), cluster.Result{}, 2025)
	for i := 1; i < len(s.Timeline); i++ {
		if s.Timeline[i].Year <= s.Timeline[i-1].Year {
			t.Errorf("timeline not sorted ascending: %+v", s.Timeline)
		}
	}
}

func TestGenerate_AreaName_Truncates(t *testing.T) {
	s := Generate(buildGraph(), cluster.Result{}, 2025)
	if len(s.AreaName) == 0 {
		t.Fatal("expected a non-empty area name")
	}
	if s.AreaName[len(s.AreaName)-3:] != "..." {
		t.Errorf("expected truncated area name to end in ..., got %q", s.AreaName)
	}
}

func TestGenerate_AreaName_ShortTitleStillSuffixed(t *testing.T) {
	graph := &citegraph.Graph{
		RootPaperID: "root",
		Papers: map[string]citegraph.PaperInfo{
			"root": {PaperID: "root", Title: "Short Title"},
		},
	}
	s := Generate(graph, cluster.Result{}, 2025)
	if s.AreaName != "Short Title..." {
		t.Errorf("AreaName = %q, want %q", s.AreaName, "Short Title...")
	}
}

func TestGenerate_FoundationalPapers_ExcludesZeroInDegree(t *testing.T) {
	s := Generate(buildGraph(), cluster.Result{}, 2025)
	for _, id := range s.FoundationalPapers {
		if id == "root" || id == "p3" {
			t.Errorf("FoundationalPapers should exclude papers with no incoming edge, got %v", s.FoundationalPapers)
		}
	}
}

func TestGenerate_MethodologyTrends_CountsPapersNotOccurrences(t *testing.T) {
	graph := &citegraph.Graph{
		RootPaperID: "root",
		Papers: map[string]citegraph.PaperInfo{
			"root": {PaperID: "root", Title: "root"},
			"p1":   {PaperID: "p1", Title: "Transformer transformer transformer networks"},
			"p2":   {PaperID: "p2", Title: "Another transformer-based approach"},
		},
	}
	s := Generate(graph, cluster.Result{}, 2025)
	for _, kc := range s.MethodologyTrends {
		if kc.Keyword == "transformer" && kc.Count != 2 {
			t.Errorf("transformer count = %d, want 2 (one per paper mentioning it)", kc.Count)
		}
	}
}

func TestGenerate_BridgingPapers(t *testing.T) {
	clustering := cluster.Result{
		Clusters: []cluster.Cluster{
			{Label: "Cluster A", PaperIDs: []string{"p1"}},
			{Label: "Cluster B", PaperIDs: []string{"p2"}},
		},
	}
	s := Generate(buildGraph(), clustering, 2025)
	found := false
	for _, id := range s.BridgingPapers {
		if id == "p3" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected p3 (cites into both clusters) in BridgingPapers, got %v", s.BridgingPapers)
	}
}

func TestGenerate_MethodologyTrends(t *testing.T) {
	s := Generate(buildGraph(), cluster.Result{}, 2025)
	foundTransformer := false
	for _, kc := range s.MethodologyTrends {
		if kc.Keyword == "transformer" {
			foundTransformer = true
		}
	}
	if !foundTransformer {
		t.Errorf("expected 'transformer' keyword to be detected, got %v", s.MethodologyTrends)
	}
}
