// Package summary produces an area-level digest of a citation graph:
// foundational and recently-influential papers, bridging papers,
// a publication timeline, major themes, and methodology trends, per
// spec.md §4.7.
package summary

import (
	"sort"
	"strings"

	"github.com/matsen/citegraph/internal/citegraph"
	"github.com/matsen/citegraph/internal/cluster"
)

const topN = 5
const recentYearsWindow = 3
const areaNameMaxLen = 50

// methodologyKeywords is the fixed vocabulary scanned for in
// title+abstract text, per spec.md §6.
var methodologyKeywords = []string{
	"neural", "deep learning", "transformer", "attention", "cnn", "rnn",
	"bert", "gpt", "llm", "reinforcement", "supervised", "unsupervised",
	"graph neural", "diffusion", "generative", "contrastive",
}

// YearEntry is one row of the publication timeline.
type YearEntry struct {
	Year        int
	PaperCount  int
	KeyPaperID  string
}

// KeywordCount is one methodology keyword with its occurrence count.
type KeywordCount struct {
	Keyword string
	Count   int
}

// Summary is the full area-level digest of a graph.
type Summary struct {
	AreaName           string
	FoundationalPapers []string
	RecentInfluential  []string
	BridgingPapers     []string
	Timeline           []YearEntry
	MajorThemes        []string
	MethodologyTrends  []KeywordCount
}

// Generate builds a Summary for graph, given its clustering result and
// the current year (injected rather than read from the clock, so
// "recent" is reproducible for a given call).
func Generate(graph *citegraph.Graph, clustering cluster.Result, currentYear int) Summary {
	return Summary{
		AreaName:           areaName(graph),
		FoundationalPapers: foundationalPapers(graph),
		RecentInfluential:  recentInfluential(graph, currentYear),
		BridgingPapers:     bridgingPapers(graph, clustering),
		Timeline:           timeline(graph),
		MajorThemes:        majorThemes(clustering),
		MethodologyTrends:  methodologyTrends(graph),
	}
}

// areaName takes the first areaNameMaxLen characters of the root
// paper's title and unconditionally appends "...", or returns "" if
// the root has no title.
func areaName(graph *citegraph.Graph) string {
	root, ok := graph.Papers[graph.RootPaperID]
	if !ok || root.Title == "" {
		return ""
	}
	runes := []rune(root.Title)
	if len(runes) > areaNameMaxLen {
		runes = runes[:areaNameMaxLen]
	}
	return string(runes) + "..."
}

// foundationalPapers returns the top 5 cited papers by in-degree,
// excluding papers with no incoming edge.
func foundationalPapers(graph *citegraph.Graph) []string {
	inDegree := map[string]int{}
	for _, e := range graph.Edges {
		inDegree[e.CitedID]++
	}

	var ids []string
	for id := range inDegree {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	sort.SliceStable(ids, func(i, j int) bool {
		return inDegree[ids[i]] > inDegree[ids[j]]
	})
	return truncate(ids, topN)
}

// recentInfluential ranks papers with year >= currentYear-recentYearsWindow
// by recency-weighted citation count.
func recentInfluential(graph *citegraph.Graph, currentYear int) []string {
	var candidates []string
	for id, p := range graph.Papers {
		if p.Year == nil || *p.Year < currentYear-recentYearsWindow {
			continue
		}
		candidates = append(candidates, id)
	}
	sort.Strings(candidates)

	score := func(id string) float64 {
		p := graph.Papers[id]
		citations := 0
		if p.CitationCount != nil {
			citations = *p.CitationCount
		}
		age := currentYear - *p.Year + 1
		if age < 1 {
			age = 1
		}
		return float64(citations) / float64(age)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return score(candidates[i]) > score(candidates[j])
	})
	return truncate(candidates, topN)
}

// bridgingPapers returns the papers citing members of at least two
// distinct clusters, ranked by distinct-cluster count.
func bridgingPapers(graph *citegraph.Graph, clustering cluster.Result) []string {
	paperCluster := map[string]int{}
	for i, c := range clustering.Clusters {
		for _, id := range c.PaperIDs {
			paperCluster[id] = i
		}
	}

	distinctClusters := map[string]map[int]struct{}{}
	for _, e := range graph.Edges {
		ci, ok := paperCluster[e.CitedID]
		if !ok {
			continue
		}
		set, exists := distinctClusters[e.CitingID]
		if !exists {
			set = map[int]struct{}{}
			distinctClusters[e.CitingID] = set
		}
		set[ci] = struct{}{}
	}

	var candidates []string
	for id, set := range distinctClusters {
		if len(set) >= 2 {
			candidates = append(candidates, id)
		}
	}
	sort.Strings(candidates)
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(distinctClusters[candidates[i]]) > len(distinctClusters[candidates[j]])
	})
	return truncate(candidates, topN)
}

// timeline groups papers by publication year, reporting each year's
// paper count and its highest-cited paper.
func timeline(graph *citegraph.Graph) []YearEntry {
	byYear := map[int][]string{}
	for id, p := range graph.Papers {
		if p.Year == nil {
			continue
		}
		byYear[*p.Year] = append(byYear[*p.Year], id)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	entries := make([]YearEntry, 0, len(years))
	for _, y := range years {
		ids := byYear[y]
		sort.Strings(ids)
		keyPaper := ids[0]
		bestCitations := citationCountOf(graph, keyPaper)
		for _, id := range ids[1:] {
			c := citationCountOf(graph, id)
			if c > bestCitations {
				bestCitations = c
				keyPaper = id
			}
		}
		entries = append(entries, YearEntry{Year: y, PaperCount: len(ids), KeyPaperID: keyPaper})
	}
	return entries
}

func citationCountOf(graph *citegraph.Graph, id string) int {
	p := graph.Papers[id]
	if p.CitationCount == nil {
		return 0
	}
	return *p.CitationCount
}

// majorThemes reports the labels of the top topN clusters (clustering
// is already sorted by descending paper count).
func majorThemes(clustering cluster.Result) []string {
	var out []string
	for i, c := range clustering.Clusters {
		if i >= topN {
			break
		}
		out = append(out, c.Label)
	}
	return out
}

// methodologyTrends counts, for each fixed keyword, the number of
// papers whose title+abstract mentions it at least once (not raw
// substring occurrences), returning the top topN by count.
func methodologyTrends(graph *citegraph.Graph) []KeywordCount {
	counts := make([]int, len(methodologyKeywords))
	for _, p := range graph.Papers {
		text := strings.ToLower(p.Title)
		if p.Abstract != nil {
			text += " " + strings.ToLower(*p.Abstract)
		}
		for i, kw := range methodologyKeywords {
			if strings.Contains(text, kw) {
				counts[i]++
			}
		}
	}

	results := make([]KeywordCount, 0, len(methodologyKeywords))
	for i, kw := range methodologyKeywords {
		if counts[i] > 0 {
			results = append(results, KeywordCount{Keyword: kw, Count: counts[i]})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Count > results[j].Count
	})
	return truncate(results, topN)
}

func sortedIDs(graph *citegraph.Graph) []string {
	ids := make([]string, 0, len(graph.Papers))
	for id := range graph.Papers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func truncate[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
