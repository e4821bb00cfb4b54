// Package cluster groups the papers of a citation graph into topical
// communities using label propagation over the graph's undirected
// adjacency, per spec.md §4.5.
package cluster

import (
	"regexp"
	"sort"
	"strings"

	"github.com/matsen/citegraph/internal/citegraph"
)

// DefaultMinClusterSize is the minimum number of papers a cluster must
// have to be reported rather than folded into unclustered_papers.
const DefaultMinClusterSize = 3

// DefaultMaxIterations bounds label-propagation sweeps.
const DefaultMaxIterations = 50

const keyTermCount = 10

// stopWords is the fixed vocabulary excluded from key-term extraction
// and comparison theme extraction, per spec.md §6.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "of": {}, "in": {}, "for": {}, "on": {},
	"with": {}, "to": {}, "and": {}, "is": {}, "are": {}, "by": {},
	"from": {}, "using": {}, "via": {}, "based": {}, "towards": {},
	"its": {}, "as": {}, "at": {}, "be": {}, "or": {}, "this": {}, "that": {},
}

// methodTerms identifies clusters whose key terms mark them as
// method-oriented for the Gap Analyser's methodological-gap detector.
var methodTerms = map[string]struct{}{
	"algorithm": {}, "model": {}, "method": {}, "approach": {}, "network": {}, "learning": {},
}

var tokenPattern = regexp.MustCompile(`[a-zA-Z]{3,}`)

// Cluster is one community of papers surfaced by label propagation.
type Cluster struct {
	Label          string
	CentralPaperID string
	PaperIDs       []string
	CohesionScore  float64
	KeyTerms       []string
	MinYear        *int
	MaxYear        *int
}

// Result is the outcome of clustering a graph.
type Result struct {
	Clusters          []Cluster
	UnclusteredPapers []string
}

// IsMethodCluster reports whether any of c's key terms mark it as
// method-oriented (used by the Gap Analyser's methodological split).
func (c Cluster) IsMethodCluster() bool {
	for _, term := range c.KeyTerms {
		if _, ok := methodTerms[term]; ok {
			return true
		}
	}
	return false
}

// Tokens extracts the fixed-vocabulary tokens of a piece of text:
// lowercased runs of [a-zA-Z]{3,}, minus stop words.
func Tokens(text string) []string {
	lower := strings.ToLower(text)
	matches := tokenPattern.FindAllString(lower, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, stop := stopWords[m]; stop {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Detect runs label propagation over graph and groups the result into
// clusters of at least minClusterSize papers, sorted by descending
// paper count.
func Detect(graph *citegraph.Graph, minClusterSize, maxIterations int) Result {
	if minClusterSize <= 0 {
		minClusterSize = DefaultMinClusterSize
	}
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	ids := sortedPaperIDs(graph)
	if len(ids) < minClusterSize {
		return Result{UnclusteredPapers: ids}
	}

	adj := graph.AdjacencyUndirected()
	labels := make(map[string]string, len(ids))
	for _, id := range ids {
		labels[id] = id
	}

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for _, id := range ids {
			neighbours := adj[id]
			if len(neighbours) == 0 {
				continue
			}
			newLabel := mostCommonLabel(neighbours, labels, ids)
			if newLabel != labels[id] {
				labels[id] = newLabel
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	groups := map[string][]string{}
	for _, id := range ids {
		l := labels[id]
		groups[l] = append(groups[l], id)
	}

	var clusters []Cluster
	var unclustered []string
	groupLabels := make([]string, 0, len(groups))
	for l := range groups {
		groupLabels = append(groupLabels, l)
	}
	sort.Strings(groupLabels)

	for _, l := range groupLabels {
		members := groups[l]
		if len(members) < minClusterSize {
			unclustered = append(unclustered, members...)
			continue
		}
		clusters = append(clusters, buildCluster(graph, members, adj))
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return len(clusters[i].PaperIDs) > len(clusters[j].PaperIDs)
	})
	sort.Strings(unclustered)

	return Result{Clusters: clusters, UnclusteredPapers: unclustered}
}

// mostCommonLabel returns the label held by the largest number of
// neighbours, breaking ties by the first-seen order of ids (the
// deterministic paper iteration order).
func mostCommonLabel(neighbours map[string]struct{}, labels map[string]string, order []string) string {
	counts := map[string]int{}
	for n := range neighbours {
		counts[labels[n]]++
	}

	best := ""
	bestCount := -1
	seen := map[string]struct{}{}
	orderedLabels := make([]string, 0, len(counts))
	for _, id := range order {
		l := labels[id]
		if _, dup := seen[l]; dup {
			continue
		}
		if _, present := counts[l]; !present {
			continue
		}
		seen[l] = struct{}{}
		orderedLabels = append(orderedLabels, l)
	}
	for _, l := range orderedLabels {
		if counts[l] > bestCount {
			bestCount = counts[l]
			best = l
		}
	}
	return best
}

// buildCluster derives a Cluster's summary statistics from its member
// paper ids.
func buildCluster(graph *citegraph.Graph, members []string, adj map[string]map[string]struct{}) Cluster {
	memberSet := make(map[string]struct{}, len(members))
	for _, id := range members {
		memberSet[id] = struct{}{}
	}

	internalDegree := make(map[string]int, len(members))
	totalInternalDegree := 0
	for _, id := range members {
		deg := 0
		for n := range adj[id] {
			if _, inCluster := memberSet[n]; inCluster {
				deg++
			}
		}
		internalDegree[id] = deg
		totalInternalDegree += deg
	}
	internalEdges := totalInternalDegree / 2

	n := len(members)
	maxPossible := n * (n - 1) / 2
	cohesion := 0.0
	if maxPossible > 0 {
		cohesion = float64(internalEdges) / float64(maxPossible)
		if cohesion > 1 {
			cohesion = 1
		}
	}

	central := centralPaper(members, internalDegree)
	keyTerms := extractKeyTerms(graph, members)

	var minYear, maxYear *int
	for _, id := range members {
		y := graph.Papers[id].Year
		if y == nil {
			continue
		}
		if minYear == nil || *y < *minYear {
			v := *y
			minYear = &v
		}
		if maxYear == nil || *y > *maxYear {
			v := *y
			maxYear = &v
		}
	}

	sortedMembers := append([]string(nil), members...)
	sort.Strings(sortedMembers)

	return Cluster{
		Label:          clusterLabel(keyTerms),
		CentralPaperID: central,
		PaperIDs:       sortedMembers,
		CohesionScore:  cohesion,
		KeyTerms:       keyTerms,
		MinYear:        minYear,
		MaxYear:        maxYear,
	}
}

// centralPaper returns the member with the highest in-cluster degree,
// ties broken by natural paper_id order.
func centralPaper(members []string, internalDegree map[string]int) string {
	sorted := append([]string(nil), members...)
	sort.Strings(sorted)

	best := sorted[0]
	bestDeg := internalDegree[best]
	for _, id := range sorted[1:] {
		if internalDegree[id] > bestDeg {
			best = id
			bestDeg = internalDegree[id]
		}
	}
	return best
}

// extractKeyTerms returns the top keyTermCount tokens by frequency
// across the titles of members.
func extractKeyTerms(graph *citegraph.Graph, members []string) []string {
	counts := map[string]int{}
	var order []string
	for _, id := range members {
		for _, tok := range Tokens(graph.Papers[id].Title) {
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > keyTermCount {
		order = order[:keyTermCount]
	}
	return order
}

// clusterLabel title-cases the first three key terms, or reports the
// cluster as unlabeled when there are none.
func clusterLabel(keyTerms []string) string {
	if len(keyTerms) == 0 {
		return "Unlabeled Cluster"
	}
	n := len(keyTerms)
	if n > 3 {
		n = 3
	}
	titled := make([]string, n)
	for i := 0; i < n; i++ {
		titled[i] = strings.ToUpper(keyTerms[i][:1]) + keyTerms[i][1:]
	}
	return strings.Join(titled, " / ")
}

// sortedPaperIDs returns the graph's paper ids in deterministic
// (natural string) order.
func sortedPaperIDs(graph *citegraph.Graph) []string {
	ids := make([]string, 0, len(graph.Papers))
	for id := range graph.Papers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
