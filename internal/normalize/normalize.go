// Package normalize canonicalises paper identifiers into the forms the
// upstream metadata service recognises (ARXIV:, DOI:, or a raw 40-char
// Semantic Scholar hex id).
package normalize

import (
	"regexp"
	"strings"
)

// s2IDPattern matches a raw 40-character lowercase-hex Semantic Scholar
// paper id.
var s2IDPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// PaperID normalises a raw identifier into the API-recognised form.
//
// Rules, applied in order:
//  1. strip whitespace;
//  2. a "prefix:value" form (not a DOI, which also contains colons via
//     its own grammar starting "10.") is rewritten; an "arxiv:" prefix
//     is rewritten to "ARXIV:" with any trailing "vN" version suffix
//     stripped, anything else passes through unchanged;
//  3. a bare 40-character lowercase-hex string is a Semantic Scholar id
//     and passes through unchanged;
//  4. a "10." prefix is a bare DOI and gets "DOI:" prepended;
//  5. anything else is treated as a bare arXiv id: the version suffix is
//     stripped and "ARXIV:" is prepended.
func PaperID(raw string) string {
	id := strings.TrimSpace(raw)

	if strings.Contains(id, ":") && !strings.HasPrefix(id, "10.") {
		prefix, rest, _ := strings.Cut(id, ":")
		if strings.EqualFold(prefix, "arxiv") {
			return "ARXIV:" + stripVersion(rest)
		}
		return id
	}

	if s2IDPattern.MatchString(id) {
		return id
	}

	if strings.HasPrefix(id, "10.") {
		return "DOI:" + id
	}

	return "ARXIV:" + stripVersion(id)
}

// stripVersion drops everything from the first lowercase "v" after the
// first character onward, which removes an arXiv version suffix, e.g.
// "2103.12345v2" -> "2103.12345".
func stripVersion(id string) string {
	if idx := strings.IndexByte(id, 'v'); idx > 0 {
		return id[:idx]
	}
	return id
}
