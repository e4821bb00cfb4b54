package metadata

import (
	"encoding/json"
	"time"

	"github.com/matsen/citegraph/internal/citegraph"
)

// parsePaper converts a wire paper into a PaperInfo, applying the
// defaulting rules from spec.md §4.2: a missing title yields
// citegraph.UnknownTitle, a missing author list yields an empty slice,
// all other optional fields are left absent (nil).
func parsePaper(w wirePaper, originalID string, fetchedAt time.Time) citegraph.PaperInfo {
	id := w.PaperID
	if originalID != "" {
		id = originalID
	}

	title := w.Title
	if title == "" {
		title = citegraph.UnknownTitle
	}

	authors := make([]string, 0, len(w.Authors))
	for _, a := range w.Authors {
		name := a.Name
		if name == "" {
			name = "Unknown"
		}
		authors = append(authors, name)
	}

	p := citegraph.PaperInfo{
		PaperID:                  id,
		Title:                    title,
		Authors:                  authors,
		Year:                     w.Year,
		Venue:                    nonEmpty(w.Venue),
		Abstract:                 nonEmpty(w.Abstract),
		ArXivID:                  nonEmptyStr(w.ExternalIDs.ArXiv),
		DOI:                      nonEmptyStr(w.ExternalIDs.DOI),
		CitationCount:            w.CitationCount,
		ReferenceCount:           w.ReferenceCount,
		InfluentialCitationCount: w.InfluentialCitationCount,
		FetchedAt:                fetchedAt,
	}
	if w.PaperID != "" {
		s2id := w.PaperID
		p.S2PaperID = &s2id
	}
	return p
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func nonEmptyStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseContexts pairs the parallel contexts/intents sequences from a
// citation item by index: if intents is shorter than contexts, the
// remaining contexts get citegraph.IntentUnknown. When an element of
// intents carries more than one intent, the first is taken.
func parseContexts(item wireCitationItem) []citegraph.CitationContext {
	out := make([]citegraph.CitationContext, 0, len(item.Contexts))
	for i, text := range item.Contexts {
		intent := citegraph.IntentUnknown
		if i < len(item.Intents) {
			if s, ok := firstIntent(item.Intents[i]); ok {
				intent = citegraph.ParseIntent(s)
			}
		}
		out = append(out, citegraph.CitationContext{
			Text:          text,
			Intent:        intent,
			IsInfluential: item.IsInfluential,
		})
	}
	return out
}

// firstIntent decodes one element of the intents array, which upstream
// sends as either a bare string or a list of strings; the first intent
// is taken when a list is given.
func firstIntent(raw json.RawMessage) (string, bool) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString == "" {
			return "", false
		}
		return asString, true
	}

	var asList []string
	if err := json.Unmarshal(raw, &asList); err == nil && len(asList) > 0 {
		return asList[0], true
	}

	return "", false
}
