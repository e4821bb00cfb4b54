package normalize

import "testing"

func TestPaperID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare arxiv id", "2103.12345", "ARXIV:2103.12345"},
		{"bare arxiv id with version", "2103.12345v2", "ARXIV:2103.12345"},
		{"arxiv prefix lowercase", "arxiv:2103.12345", "ARXIV:2103.12345"},
		{"arxiv prefix mixed case", "ArXiv:2103.12345v1", "ARXIV:2103.12345"},
		{"doi bare", "10.1038/nature12373", "DOI:10.1038/nature12373"},
		{"doi prefixed already", "DOI:10.1038/nature12373", "DOI:10.1038/nature12373"},
		{"s2 hex id", "649def34f8be52c8b66281af98ae884c09aef375", "649def34f8be52c8b66281af98ae884c09aef375"},
		{"unknown prefix passthrough", "PMID:19872477", "PMID:19872477"},
		{"surrounding whitespace", "  2103.12345  ", "ARXIV:2103.12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PaperID(tt.in); got != tt.want {
				t.Errorf("PaperID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
