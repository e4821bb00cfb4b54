// Package similarity computes pairwise paper similarity over a built
// citation graph, per spec.md §4.4.
package similarity

import (
	"sort"

	"github.com/matsen/citegraph/internal/citegraph"
	"github.com/matsen/citegraph/internal/metadata"
)

// Method selects the similarity scoring function.
type Method string

const (
	MethodBibliographicCoupling Method = "bibliographic_coupling"
	MethodCoCitation            Method = "co_citation"
	MethodCitationOverlap       Method = "citation_overlap"
)

// citationOverlapCoCitationWeight is the weight citation_overlap gives
// to the co-citation Jaccard term; co-citation is the stronger signal.
const citationOverlapCoCitationWeight = 0.6
const citationOverlapCouplingWeight = 1 - citationOverlapCoCitationWeight

const (
	strongThreshold   = 0.5
	moderateThreshold = 0.2
)

// PaperSimilarity is one scored pairing of the source paper against
// another paper in the same graph.
type PaperSimilarity struct {
	PaperID      string
	Score        float64
	SharedRefs   int
	SharedCiters int
	Explanation  string
}

// TopSimilar returns the top-k most similar papers to sourceID within
// graph under method, ordered by descending score, excluding zero
// scores. Returns metadata.ErrInvalidArgument for an unrecognised
// method.
func TopSimilar(graph *citegraph.Graph, sourceID string, method Method, topK int) ([]PaperSimilarity, error) {
	switch method {
	case MethodBibliographicCoupling, MethodCoCitation, MethodCitationOverlap:
	default:
		return nil, metadata.ErrInvalidArgument
	}
	if topK <= 0 {
		topK = 10
	}

	cites := graph.AdjacencyOut()
	citedBy := graph.AdjacencyIn()

	results := make([]PaperSimilarity, 0, len(graph.Papers))
	for otherID := range graph.Papers {
		if otherID == sourceID {
			continue
		}

		jRefs, sharedRefs := jaccard(cites[sourceID], cites[otherID])
		jCiters, sharedCiters := jaccard(citedBy[sourceID], citedBy[otherID])

		var score float64
		switch method {
		case MethodBibliographicCoupling:
			score = jRefs
		case MethodCoCitation:
			score = jCiters
		case MethodCitationOverlap:
			score = citationOverlapCouplingWeight*jRefs + citationOverlapCoCitationWeight*jCiters
		}
		if score <= 0 {
			continue
		}

		results = append(results, PaperSimilarity{
			PaperID:      otherID,
			Score:        score,
			SharedRefs:   sharedRefs,
			SharedCiters: sharedCiters,
			Explanation:  explain(score),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].PaperID < results[j].PaperID
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// jaccard returns |a∩b|/|a∪b| (0 if the union is empty) along with the
// intersection size.
func jaccard(a, b map[string]struct{}) (float64, int) {
	if len(a) == 0 && len(b) == 0 {
		return 0, 0
	}

	intersection := 0
	for id := range a {
		if _, ok := b[id]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0, 0
	}
	return float64(intersection) / float64(union), intersection
}

// explain classifies score into a short textual strength label.
func explain(score float64) string {
	switch {
	case score > strongThreshold:
		return "strong similarity"
	case score > moderateThreshold:
		return "moderate similarity"
	default:
		return "weak similarity"
	}
}
