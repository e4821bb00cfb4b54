// Package comparison implements the set-algebraic multi-paper
// comparison operation over a graph built by the Comparison Analyser's
// single-hop graph variant, per spec.md §4.8.
package comparison

import (
	"sort"

	"github.com/matsen/citegraph/internal/citegraph"
	"github.com/matsen/citegraph/internal/cluster"
	"github.com/matsen/citegraph/internal/metadata"
)

const (
	minPapers            = 2
	maxPapers            = 5
	sharedTruncate       = 10
	uniqueTruncate       = 5
	themeTruncate        = 5
	distinguishTruncate  = 3
)

// Result is the outcome of comparing a set of papers over a shared
// citation graph.
type Result struct {
	CitationCounts        map[string]int
	SharedReferences      []citegraph.PaperInfo
	UniqueReferences      map[string][]citegraph.PaperInfo
	SharedCiters          []citegraph.PaperInfo
	CitationOverlapScore  float64
	CommonThemes          []string
	DistinguishingAspects map[string][]string
}

// Compare computes Result for paperIDs over graph. Returns
// metadata.ErrInvalidArgument if paperIDs has fewer than 2 or more
// than 5 entries.
func Compare(graph *citegraph.Graph, paperIDs []string) (Result, error) {
	if len(paperIDs) < minPapers || len(paperIDs) > maxPapers {
		return Result{}, metadata.ErrInvalidArgument
	}

	cites := graph.AdjacencyOut()
	citedBy := graph.AdjacencyIn()

	citationCounts := map[string]int{}
	for _, id := range paperIDs {
		p := graph.Papers[id]
		if p.CitationCount != nil {
			citationCounts[id] = *p.CitationCount
		}
	}

	sharedRefIDs := intersectAll(setsFor(paperIDs, cites))
	sharedCiterIDs := intersectAll(setsFor(paperIDs, citedBy))

	uniqueRefs := map[string][]citegraph.PaperInfo{}
	for _, id := range paperIDs {
		others := unionExcept(paperIDs, id, cites)
		var onlyMine []string
		for ref := range cites[id] {
			if _, inOthers := others[ref]; !inOthers {
				onlyMine = append(onlyMine, ref)
			}
		}
		sort.Strings(onlyMine)
		uniqueRefs[id] = toPaperInfos(graph, truncateStrings(onlyMine, uniqueTruncate))
	}

	overlapScore := jaccardOfSets(setsFor(paperIDs, citedBy))

	commonThemes := commonTokens(graph, paperIDs)
	distinguishing := distinguishingAspects(graph, paperIDs)

	sortedSharedRefs := sortStrings(sharedRefIDs)
	sortedSharedCiters := sortStrings(sharedCiterIDs)

	return Result{
		CitationCounts:        citationCounts,
		SharedReferences:      toPaperInfos(graph, truncateStrings(sortedSharedRefs, sharedTruncate)),
		UniqueReferences:      uniqueRefs,
		SharedCiters:          toPaperInfos(graph, truncateStrings(sortedSharedCiters, sharedTruncate)),
		CitationOverlapScore:  overlapScore,
		CommonThemes:          commonThemes,
		DistinguishingAspects: distinguishing,
	}, nil
}

func setsFor(paperIDs []string, adj map[string]map[string]struct{}) []map[string]struct{} {
	sets := make([]map[string]struct{}, len(paperIDs))
	for i, id := range paperIDs {
		sets[i] = adj[id]
	}
	return sets
}

// intersectAll returns the intersection of all non-nil sets. An empty
// input slice yields an empty intersection.
func intersectAll(sets []map[string]struct{}) map[string]struct{} {
	if len(sets) == 0 {
		return map[string]struct{}{}
	}
	result := map[string]struct{}{}
	for k := range sets[0] {
		result[k] = struct{}{}
	}
	for _, s := range sets[1:] {
		for k := range result {
			if _, ok := s[k]; !ok {
				delete(result, k)
			}
		}
	}
	return result
}

// unionExcept unions adj[id] over every paper id in paperIDs other
// than exclude.
func unionExcept(paperIDs []string, exclude string, adj map[string]map[string]struct{}) map[string]struct{} {
	result := map[string]struct{}{}
	for _, id := range paperIDs {
		if id == exclude {
			continue
		}
		for k := range adj[id] {
			result[k] = struct{}{}
		}
	}
	return result
}

// jaccardOfSets returns |intersection|/|union| across all sets, 0 if
// the union is empty.
func jaccardOfSets(sets []map[string]struct{}) float64 {
	union := map[string]struct{}{}
	for _, s := range sets {
		for k := range s {
			union[k] = struct{}{}
		}
	}
	if len(union) == 0 {
		return 0
	}
	intersection := intersectAll(sets)
	return float64(len(intersection)) / float64(len(union))
}

// commonTokens returns the intersection of each paper's title tokens,
// truncated to themeTruncate, sorted for determinism.
func commonTokens(graph *citegraph.Graph, paperIDs []string) []string {
	tokenSets := make([]map[string]struct{}, len(paperIDs))
	for i, id := range paperIDs {
		set := map[string]struct{}{}
		for _, tok := range cluster.Tokens(graph.Papers[id].Title) {
			set[tok] = struct{}{}
		}
		tokenSets[i] = set
	}
	common := intersectAll(tokenSets)
	return truncateStrings(sortStrings(common), themeTruncate)
}

// distinguishingAspects returns, per paper, the title tokens that
// appear in exactly that one paper's token set, truncated to
// distinguishTruncate.
func distinguishingAspects(graph *citegraph.Graph, paperIDs []string) map[string][]string {
	tokenSets := make(map[string]map[string]struct{}, len(paperIDs))
	occurrences := map[string]int{}
	for _, id := range paperIDs {
		set := map[string]struct{}{}
		for _, tok := range cluster.Tokens(graph.Papers[id].Title) {
			set[tok] = struct{}{}
		}
		tokenSets[id] = set
		for tok := range set {
			occurrences[tok]++
		}
	}

	out := map[string][]string{}
	for _, id := range paperIDs {
		var distinguishing []string
		for tok := range tokenSets[id] {
			if occurrences[tok] == 1 {
				distinguishing = append(distinguishing, tok)
			}
		}
		sort.Strings(distinguishing)
		out[id] = truncateStrings(distinguishing, distinguishTruncate)
	}
	return out
}

func sortStrings(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func truncateStrings(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func toPaperInfos(graph *citegraph.Graph, ids []string) []citegraph.PaperInfo {
	out := make([]citegraph.PaperInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, graph.Papers[id])
	}
	return out
}
