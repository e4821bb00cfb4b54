// Package metadata issues requests against the remote scholarly graph
// metadata service (paper lookup, citations, references, batch
// lookup, search), parses responses into citegraph values, and
// translates transport failures into empty results rather than fatal
// errors — per spec.md §4.2 and §7, only caller misuse surfaces as an
// error from this package.
package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/matsen/citegraph/internal/citegraph"
	"github.com/matsen/citegraph/internal/normalize"
)

const (
	// BaseURL is the upstream graph metadata service's API root.
	BaseURL = "https://api.semanticscholar.org/graph/v1"

	// DefaultTimeout is the default per-request timeout.
	DefaultTimeout = 60 * time.Second

	// MaxLimit is the remote service's maximum page size; caller-supplied
	// limits above this are silently clamped.
	MaxLimit = 100

	// defaultRequestsPerSecond matches the documented ~1 rps with an API
	// key; callers without a key should configure a slower limiter.
	defaultRequestsPerSecond = 1.0
)

// paperFields is the field set requested for paper metadata, per
// spec.md §6.
var paperFields = []string{
	"paperId", "externalIds", "title", "authors", "year", "venue",
	"abstract", "citationCount", "referenceCount", "influentialCitationCount",
}

// Client is a rate-limited HTTP client for the upstream metadata
// service. The limiter and http.Client are safe for concurrent use, so
// a single Client is shared across the Graph Builder's per-level
// fan-out.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
	timeout    time.Duration
	diag       *Diagnostics
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the x-api-key header sent on every request.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient overrides the underlying *http.Client (tests, custom
// transports).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the API root (tests).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithRateLimit overrides the global requests-per-second ceiling.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// WithDiagnostics attaches a recorder for recovered per-request
// failures.
func WithDiagnostics(d *Diagnostics) ClientOption {
	return func(c *Client) { c.diag = d }
}

// NewClient constructs a Client. With no API key the limiter defaults
// to roughly one request per second; pass WithRateLimit to match the
// unauthenticated ~1-req/3s ceiling from spec.md §5.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), 1),
		baseURL:    BaseURL,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do executes a rate-limited request with the given method against
// path and query values (body may be nil), returning the raw body. A non-2xx response becomes an
// *APIError; 404 is reported via ErrNotFound so callers can treat it
// as absence rather than failure.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", ErrNetworkError, err)
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if c.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	full := c.baseURL + path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(reqCtx, method, full, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetworkError, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(data)}
	}

	return data, nil
}

// clampLimit caps a caller-supplied limit at MaxLimit, per spec.md
// §4.2. Non-positive values fall back to MaxLimit.
func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// GetPaper fetches a single paper's metadata. A 404 upstream, or any
// other transport/decode failure, yields (nil, nil) — absence is a
// visible result, not an error; the failure is recorded to
// diagnostics when one is attached.
func (c *Client) GetPaper(ctx context.Context, paperID string) (*citegraph.PaperInfo, error) {
	s2ID := normalize.PaperID(paperID)
	fields := strings.Join(paperFields, ",")

	data, err := c.do(ctx, http.MethodGet, "/paper/"+url.PathEscape(s2ID), url.Values{"fields": {fields}}, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		c.diag.Record("get_paper", paperID, err)
		return nil, nil
	}

	var w wirePaper
	if err := json.Unmarshal(data, &w); err != nil {
		c.diag.Record("get_paper", paperID, fmt.Errorf("%w: %v", ErrInvalidResponse, err))
		return nil, nil
	}
	if w.PaperID == "" && w.Title == "" {
		return nil, nil
	}

	p := parsePaper(w, paperID, time.Now())
	return &p, nil
}

// GetCitations returns relationships where the given paper is the
// cited endpoint (arcs citing -> paperID). limit is clamped at
// MaxLimit. Any failure yields an empty slice.
func (c *Client) GetCitations(ctx context.Context, paperID string, limit int) []citegraph.CitationRelationship {
	return c.getRelationships(ctx, "get_citations", paperID, limit, "/citations", func(item wireCitationItem, cited citegraph.PaperInfo) (citegraph.CitationRelationship, bool) {
		if item.CitingPaper == nil {
			return citegraph.CitationRelationship{}, false
		}
		citing := parsePaper(*item.CitingPaper, "", time.Now())
		return citegraph.CitationRelationship{
			CitingPaper:   citing,
			CitedPaper:    cited,
			Contexts:      parseContexts(item),
			IsInfluential: item.IsInfluential,
		}, true
	})
}

// GetReferences returns relationships where the given paper is the
// citing endpoint (arcs paperID -> cited). limit is clamped at
// MaxLimit. Any failure yields an empty slice.
func (c *Client) GetReferences(ctx context.Context, paperID string, limit int) []citegraph.CitationRelationship {
	return c.getRelationships(ctx, "get_references", paperID, limit, "/references", func(item wireCitationItem, citing citegraph.PaperInfo) (citegraph.CitationRelationship, bool) {
		if item.CitedPaper == nil {
			return citegraph.CitationRelationship{}, false
		}
		cited := parsePaper(*item.CitedPaper, "", time.Now())
		return citegraph.CitationRelationship{
			CitingPaper:   citing,
			CitedPaper:    cited,
			Contexts:      parseContexts(item),
			IsInfluential: item.IsInfluential,
		}, true
	})
}

// getRelationships is shared plumbing for GetCitations/GetReferences:
// fetch the pivot paper, fetch the paged relationship list, and adapt
// each item via build.
func (c *Client) getRelationships(
	ctx context.Context,
	op, paperID string,
	limit int,
	suffix string,
	build func(item wireCitationItem, pivot citegraph.PaperInfo) (citegraph.CitationRelationship, bool),
) []citegraph.CitationRelationship {
	limit = clampLimit(limit)
	s2ID := normalize.PaperID(paperID)

	pivot, err := c.GetPaper(ctx, paperID)
	if err != nil || pivot == nil {
		p := citegraph.Placeholder(paperID, time.Now())
		pivot = &p
	}

	nestedPrefix := "citingPaper."
	if suffix == "/references" {
		nestedPrefix = "citedPaper."
	}
	fields := make([]string, 0, len(paperFields)+3)
	for _, f := range paperFields {
		fields = append(fields, nestedPrefix+f)
	}
	fields = append(fields, "contexts", "intents", "isInfluential")

	query := url.Values{
		"fields": {strings.Join(fields, ",")},
		"limit":  {strconv.Itoa(limit)},
	}

	data, err := c.do(ctx, http.MethodGet, "/paper/"+url.PathEscape(s2ID)+suffix, query, nil)
	if err != nil {
		if !IsNotFound(err) {
			c.diag.Record(op, paperID, err)
		}
		return nil
	}

	var page wirePagedResponse
	if err := json.Unmarshal(data, &page); err != nil {
		c.diag.Record(op, paperID, fmt.Errorf("%w: %v", ErrInvalidResponse, err))
		return nil
	}

	out := make([]citegraph.CitationRelationship, 0, len(page.Data))
	for _, item := range page.Data {
		rel, ok := build(item, *pivot)
		if !ok {
			continue
		}
		out = append(out, rel)
	}
	return out
}

// GetPapersBatch fetches metadata for many papers in one request.
// Papers the upstream could not resolve map to nil.
func (c *Client) GetPapersBatch(ctx context.Context, paperIDs []string) map[string]*citegraph.PaperInfo {
	result := make(map[string]*citegraph.PaperInfo, len(paperIDs))
	if len(paperIDs) == 0 {
		return result
	}

	normalized := make([]string, len(paperIDs))
	for i, id := range paperIDs {
		normalized[i] = normalize.PaperID(id)
	}

	reqBody, err := json.Marshal(map[string][]string{"ids": normalized})
	if err != nil {
		for _, id := range paperIDs {
			result[id] = nil
		}
		return result
	}

	fields := strings.Join(paperFields, ",")
	data, err := c.do(ctx, http.MethodPost, "/paper/batch", url.Values{"fields": {fields}}, bytes.NewReader(reqBody))
	if err != nil {
		c.diag.Record("get_papers_batch", strings.Join(paperIDs, ","), err)
		for _, id := range paperIDs {
			result[id] = nil
		}
		return result
	}

	var wirePapers []*wirePaper
	if err := json.Unmarshal(data, &wirePapers); err != nil {
		c.diag.Record("get_papers_batch", strings.Join(paperIDs, ","), fmt.Errorf("%w: %v", ErrInvalidResponse, err))
		for _, id := range paperIDs {
			result[id] = nil
		}
		return result
	}

	for i, id := range paperIDs {
		if i >= len(wirePapers) || wirePapers[i] == nil {
			result[id] = nil
			continue
		}
		p := parsePaper(*wirePapers[i], id, time.Now())
		result[id] = &p
	}
	return result
}

// SearchFilters holds the optional search parameters from spec.md §4.2.
type SearchFilters struct {
	YearFilter     string // "YYYY", "YYYY-YYYY", "YYYY-", "-YYYY"
	FieldsOfStudy  []string
	MinCitations   *int
}

// SearchResult is the outcome of Search: the page of papers, the total
// upstream match count, and the next offset if more results remain.
type SearchResult struct {
	Papers     []citegraph.PaperInfo
	Total      int
	NextOffset *int
}

// Search queries the upstream search endpoint. limit is clamped at
// MaxLimit. Any transport/decode failure yields an empty SearchResult.
func (c *Client) Search(ctx context.Context, query string, limit int, filters SearchFilters) SearchResult {
	limit = clampLimit(limit)
	fields := strings.Join(paperFields, ",")

	values := url.Values{
		"query":  {query},
		"limit":  {strconv.Itoa(limit)},
		"fields": {fields},
	}
	if filters.YearFilter != "" {
		values.Set("year", filters.YearFilter)
	}
	if len(filters.FieldsOfStudy) > 0 {
		values.Set("fieldsOfStudy", strings.Join(filters.FieldsOfStudy, ","))
	}
	if filters.MinCitations != nil {
		values.Set("minCitationCount", strconv.Itoa(*filters.MinCitations))
	}

	data, err := c.do(ctx, http.MethodGet, "/paper/search", values, nil)
	if err != nil {
		c.diag.Record("search", query, err)
		return SearchResult{}
	}

	var resp wireSearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.diag.Record("search", query, fmt.Errorf("%w: %v", ErrInvalidResponse, err))
		return SearchResult{}
	}

	papers := make([]citegraph.PaperInfo, 0, len(resp.Data))
	for _, w := range resp.Data {
		papers = append(papers, parsePaper(w, "", time.Now()))
	}

	return SearchResult{Papers: papers, Total: resp.Total, NextOffset: resp.Next}
}
