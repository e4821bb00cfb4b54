// Package gaps infers candidate research gaps from a clustered
// citation graph: under-bridged cluster pairs, stalling topics, and
// method/domain combinations that have not yet been connected, per
// spec.md §4.6.
package gaps

import (
	"sort"
	"strconv"

	"github.com/matsen/citegraph/internal/citegraph"
	"github.com/matsen/citegraph/internal/cluster"
)

// Kind classifies the inferred gap.
type Kind string

const (
	KindBridging       Kind = "bridging"
	KindTemporal       Kind = "temporal"
	KindMethodological Kind = "methodological"
)

const (
	bridgingDensityThreshold = 0.05
	bridgingMaxConfidence    = 0.9
	temporalConfidence       = 0.6
	methodologicalConfidence = 0.5
	methodologicalCap        = 10
	minClusterPapersForGap   = 3
	minDistinctYearsForGap   = 3
)

// Gap is a single inferred research gap, with the evidence (paper
// ids) that motivated it.
type Gap struct {
	Kind        Kind
	Description string
	Confidence  float64
	Evidence    []string
}

// Detect finds bridging, temporal, and methodological gaps in graph
// given its clustering result.
func Detect(graph *citegraph.Graph, clustering cluster.Result) []Gap {
	paperCluster := map[string]int{}
	for i, c := range clustering.Clusters {
		for _, id := range c.PaperIDs {
			paperCluster[id] = i
		}
	}

	crossCount := crossClusterCounts(graph, paperCluster)

	var out []Gap
	out = append(out, bridgingGaps(clustering.Clusters, crossCount)...)
	out = append(out, temporalGaps(graph, clustering.Clusters)...)
	out = append(out, methodologicalGaps(clustering.Clusters, crossCount)...)
	return out
}

// crossClusterCounts counts edges whose endpoints fall in different
// clusters, keyed by the unordered pair of cluster indices.
func crossClusterCounts(graph *citegraph.Graph, paperCluster map[string]int) map[[2]int]int {
	counts := map[[2]int]int{}
	for _, e := range graph.Edges {
		ci, ok1 := paperCluster[e.CitingID]
		cj, ok2 := paperCluster[e.CitedID]
		if !ok1 || !ok2 || ci == cj {
			continue
		}
		counts[pairKey(ci, cj)]++
	}
	return counts
}

func pairKey(i, j int) [2]int {
	if i < j {
		return [2]int{i, j}
	}
	return [2]int{j, i}
}

// bridgingGaps emits one gap for every unordered pair of clusters (each
// with at least minClusterPapersForGap papers) whose cross-cluster
// edge density falls below bridgingDensityThreshold.
func bridgingGaps(clusters []cluster.Cluster, crossCount map[[2]int]int) []Gap {
	var out []Gap
	for i := 0; i < len(clusters); i++ {
		for j := i + 1; j < len(clusters); j++ {
			a, b := clusters[i], clusters[j]
			if len(a.PaperIDs) < minClusterPapersForGap || len(b.PaperIDs) < minClusterPapersForGap {
				continue
			}
			count := crossCount[pairKey(i, j)]
			r := float64(count) / float64(len(a.PaperIDs)*len(b.PaperIDs))
			if r >= bridgingDensityThreshold {
				continue
			}
			confidence := 1 - 10*r
			if confidence > bridgingMaxConfidence {
				confidence = bridgingMaxConfidence
			}
			out = append(out, Gap{
				Kind:        KindBridging,
				Description: "sparse connection between \"" + a.Label + "\" and \"" + b.Label + "\"",
				Confidence:  confidence,
				Evidence:    []string{a.CentralPaperID, b.CentralPaperID},
			})
		}
	}
	return out
}

// temporalGaps emits a gap for each cluster with at least
// minDistinctYearsForGap distinct publication years whose recent
// activity (sum of paper counts over the two latest years) has
// dropped to less than half of its earliest activity (sum over the
// two earliest years).
func temporalGaps(graph *citegraph.Graph, clusters []cluster.Cluster) []Gap {
	var out []Gap
	for _, c := range clusters {
		counts := map[int]int{}
		for _, id := range c.PaperIDs {
			y := graph.Papers[id].Year
			if y == nil {
				continue
			}
			counts[*y]++
		}
		if len(counts) < minDistinctYearsForGap {
			continue
		}

		years := make([]int, 0, len(counts))
		for y := range counts {
			years = append(years, y)
		}
		sort.Ints(years)

		earlyCount := counts[years[0]] + counts[years[1]]
		recentCount := counts[years[len(years)-1]] + counts[years[len(years)-2]]

		if earlyCount <= 0 || float64(recentCount)/float64(earlyCount) >= 0.5 {
			continue
		}

		out = append(out, Gap{
			Kind:        KindTemporal,
			Description: "publication activity in \"" + c.Label + "\" has declined since " + yearsSpan(years),
			Confidence:  temporalConfidence,
			Evidence:    []string{c.CentralPaperID},
		})
	}
	return out
}

// methodologicalGaps pairs every method-oriented cluster against every
// domain-oriented cluster with fewer than 2 cross-cluster edges,
// capped at methodologicalCap gaps in iteration order.
func methodologicalGaps(clusters []cluster.Cluster, crossCount map[[2]int]int) []Gap {
	var methodIdx, domainIdx []int
	for i, c := range clusters {
		if c.IsMethodCluster() {
			methodIdx = append(methodIdx, i)
		} else {
			domainIdx = append(domainIdx, i)
		}
	}

	var out []Gap
	for _, mi := range methodIdx {
		for _, di := range domainIdx {
			if len(out) >= methodologicalCap {
				return out
			}
			if crossCount[pairKey(mi, di)] >= 2 {
				continue
			}
			out = append(out, Gap{
				Kind:        KindMethodological,
				Description: "method \"" + clusters[mi].Label + "\" has not been applied to \"" + clusters[di].Label + "\"",
				Confidence:  methodologicalConfidence,
				Evidence:    []string{clusters[mi].CentralPaperID, clusters[di].CentralPaperID},
			})
		}
	}
	return out
}

func yearsSpan(years []int) string {
	if len(years) == 0 {
		return ""
	}
	return strconv.Itoa(years[0]) + "-" + strconv.Itoa(years[len(years)-1])
}
