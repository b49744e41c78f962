// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/frontier-search/internal/httputil"
	"github.com/pdiddy/frontier-search/pkg/types"
)

const (
	// DefaultArxivBaseURL is the arXiv Atom query endpoint.
	DefaultArxivBaseURL = "http://export.arxiv.org/api/query"

	arxivAPIName    = "arXiv API"
	arxivAPIVersion = "arxiv-atom-1.0"
)

// DefaultArxivCategories are searched when a request names none.
var DefaultArxivCategories = []string{"cs.AI", "cs.LG", "cs.CL", "cs.CV", "stat.ML", "cs.MA"}

// arXiv sort orders accepted by ArxivOptions.SortBy.
const (
	SortRelevance = "relevance"
	SortDate      = "date"
)

// ArxivOptions are the per-request filters of the archive adapter.
type ArxivOptions struct {
	// MaxResults defaults to 10 and is clamped to 100.
	MaxResults int

	// SortBy is "relevance" (default) or "date" (submission date).
	SortBy string

	// Categories overrides the configured category list.
	Categories []string
}

// Arxiv queries the arXiv Atom API.
type Arxiv struct {
	base
	cfg types.ArxivConfig
}

// NewArxiv creates an arXiv adapter. Zero config fields take defaults.
func NewArxiv(client httputil.Doer, cfg types.ArxivConfig, opts ...Option) *Arxiv {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultArxivBaseURL
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultArxivCategories
	}
	return &Arxiv{base: newBase(types.SourceArxiv, client, opts), cfg: cfg}
}

// Search runs a free-text query restricted to a category list.
func (a *Arxiv) Search(ctx context.Context, query string, opts ArxivOptions) types.Envelope {
	ctx, op := a.begin(ctx, "search")

	query = strings.TrimSpace(query)
	if query == "" {
		return op.done(a.failure(invalidParam("query is required")))
	}
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = SortRelevance
	}
	if sortBy != SortRelevance && sortBy != SortDate {
		return op.done(a.failure(invalidParam("unknown sort order %q, valid: %s, %s", sortBy, SortRelevance, SortDate)))
	}
	cats := opts.Categories
	if len(cats) == 0 {
		cats = a.cfg.Categories
	}

	reqURL := buildArxivURL(a.cfg.BaseURL, query, cats, sortBy, clampResults(opts.MaxResults, maxResultsCap))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return op.done(a.failure(fmt.Errorf("creating request: %w", err)))
	}
	if a.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", a.cfg.UserAgent)
	}

	body, err := a.fetch(ctx, arxivAPIName, req, false, 0)
	if err != nil {
		return op.done(a.failure(err))
	}

	entries := ParseAtom(string(body))
	papers := make([]types.Paper, 0, len(entries))
	for _, e := range entries {
		papers = append(papers, normalizeArxivEntry(e))
	}

	meta := a.meta(arxivAPIVersion)
	meta["categories_searched"] = cats
	meta["sort_by"] = sortBy
	return op.done(a.success(query, papers, meta))
}

// buildArxivURL constructs the query URL. The search_query value keeps its
// literal "+AND+" / "+OR+" operators, so it is assembled by hand rather than
// through url.Values.
func buildArxivURL(baseURL, query string, cats []string, sortBy string, maxResults int) string {
	catTerms := make([]string, len(cats))
	for i, c := range cats {
		catTerms[i] = "cat:" + url.QueryEscape(c)
	}
	searchQuery := "all:" + url.QueryEscape(query)
	if len(catTerms) > 0 {
		searchQuery += "+AND+(" + strings.Join(catTerms, "+OR+") + ")"
	}

	sortParam := "relevance"
	if sortBy == SortDate {
		sortParam = "submittedDate"
	}

	return fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=%s&sortOrder=descending",
		baseURL, searchQuery, maxResults, sortParam)
}

// normalizeArxivEntry maps one Atom entry into the unified record.
func normalizeArxivEntry(e AtomEntry) types.Paper {
	absURL := e.AbsURL
	if absURL == "" {
		absURL = e.ID
	}
	return types.Paper{
		Title:      e.Title,
		Authors:    e.Authors,
		Year:       yearOf(e.Published),
		Abstract:   TruncateAbstract(e.Summary),
		URL:        absURL,
		PDFURL:     e.PDFURL,
		CodeRepos:  []types.CodeRepo{},
		KeyMethods: []string{},
		SourceSpecific: map[string]any{
			"arxiv_id":   ArxivID(e.ID),
			"categories": e.Categories,
			"published":  e.Published,
			"updated":    e.Updated,
		},
	}
}
