// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/frontier-search/internal/httputil"
	"github.com/pdiddy/frontier-search/pkg/types"
)

const (
	// DefaultSemanticBaseURL is the Semantic Scholar graph API root.
	DefaultSemanticBaseURL = "https://api.semanticscholar.org/graph/v1"

	semanticAPIName    = "S2 API"
	semanticAPIVersion = "semantic-scholar-graph-v1"
	semanticPaperPage  = "https://www.semanticscholar.org/paper/"

	semanticFields = "title,authors,year,abstract,tldr,url,openAccessPdf,citationCount," +
		"influentialCitationCount,fieldsOfStudy,venue,externalIds,publicationDate"

	// semanticDetailFields adds the reference and citation lists reduced to
	// what PaperSummary carries.
	semanticDetailFields = semanticFields +
		",references.title,references.year,references.citationCount" +
		",citations.title,citations.year,citations.citationCount"

	// detailListLimit bounds top_references and recent_citations.
	detailListLimit = 10
)

// Field fallbacks for citation-graph records.
var (
	s2Data          = Fallback{"data"}
	s2Total         = Fallback{"total"}
	s2PaperID       = Fallback{"paperId"}
	s2Title         = Fallback{"title"}
	s2Authors       = Fallback{"authors"}
	s2AuthorName    = Fallback{"name"}
	s2Year          = Fallback{"year"}
	s2Abstract      = Fallback{"abstract"}
	s2TLDR          = Fallback{"tldr.text"}
	s2URL           = Fallback{"url"}
	s2PDF           = Fallback{"openAccessPdf.url"}
	s2Citations     = Fallback{"citationCount"}
	s2Influential   = Fallback{"influentialCitationCount"}
	s2Fields        = Fallback{"fieldsOfStudy"}
	s2Venue         = Fallback{"venue", "publicationVenue.name"}
	s2DOI           = Fallback{"externalIds.DOI"}
	s2ArXiv         = Fallback{"externalIds.ArXiv"}
	s2PubDate       = Fallback{"publicationDate"}
	s2References    = Fallback{"references"}
	s2CitationsList = Fallback{"citations"}
)

// SemanticOptions are the per-request filters of the citation-graph adapter.
type SemanticOptions struct {
	// MaxResults defaults to 10 and is clamped to 100.
	MaxResults int

	// YearFrom restricts results to this year and later; 0 disables it.
	YearFrom int

	// OpenAccess restricts results to papers with an open PDF.
	OpenAccess bool
}

// SemanticScholar queries the Semantic Scholar graph API. It is the only
// adapter that retries, because the shared-key tier is rate limited.
type SemanticScholar struct {
	base
	cfg        types.SemanticScholarConfig
	maxRetries int
}

// NewSemanticScholar creates a citation-graph adapter. Zero config fields
// take defaults.
func NewSemanticScholar(client httputil.Doer, cfg types.SemanticScholarConfig, opts ...Option) *SemanticScholar {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultSemanticBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	maxRetries := httputil.DefaultMaxRetries
	if cfg.MaxRetries != nil {
		maxRetries = *cfg.MaxRetries
	}
	return &SemanticScholar{
		base:       newBase(types.SourceSemanticScholar, client, opts),
		cfg:        cfg,
		maxRetries: maxRetries,
	}
}

// Search runs a relevance-ranked paper search.
func (s *SemanticScholar) Search(ctx context.Context, query string, opts SemanticOptions) types.Envelope {
	ctx, op := s.begin(ctx, "search")

	query = strings.TrimSpace(query)
	if query == "" {
		return op.done(s.failure(invalidParam("query is required")))
	}
	if opts.YearFrom < 0 {
		return op.done(s.failure(invalidParam("year_from must be a positive year, got %d", opts.YearFrom)))
	}

	params := url.Values{
		"query":  {query},
		"limit":  {strconv.Itoa(clampResults(opts.MaxResults, maxResultsCap))},
		"fields": {semanticFields},
	}
	if opts.YearFrom > 0 {
		params.Set("year", fmt.Sprintf("%d-", opts.YearFrom))
	}
	if opts.OpenAccess {
		params.Set("openAccessPdf", "")
	}

	body, err := s.get(ctx, s.cfg.BaseURL+"/paper/search?"+params.Encode())
	if err != nil {
		return op.done(s.failure(err))
	}
	if !gjson.ValidBytes(body) {
		return op.done(s.failure(fmt.Errorf("%w: parsing %s response", ErrMalformedResponse, semanticAPIName)))
	}
	doc := gjson.ParseBytes(body)

	items := s2Data.Array(doc)
	papers := make([]types.Paper, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			continue
		}
		papers = append(papers, normalizeSemanticPaper(item))
	}

	meta := s.meta(semanticAPIVersion)
	meta["total_available"] = s2Total.IntOr(doc, len(papers))
	return op.done(s.success(query, papers, meta))
}

// Detail fetches one paper with its first references and citations.
// id is any identifier the graph API accepts (paperId, "arXiv:...", "DOI:...").
func (s *SemanticScholar) Detail(ctx context.Context, id string) types.DetailEnvelope {
	ctx, op := s.begin(ctx, "detail")

	id = strings.TrimSpace(id)
	if id == "" {
		return op.doneDetail(s.detailFailure(invalidParam("paper id is required")))
	}

	reqURL := s.cfg.BaseURL + "/paper/" + url.PathEscape(id) + "?fields=" + url.QueryEscape(semanticDetailFields)
	body, err := s.get(ctx, reqURL)
	if err != nil {
		return op.doneDetail(s.detailFailure(err))
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return op.doneDetail(s.detailFailure(fmt.Errorf("%w: %s detail is not an object", ErrMalformedResponse, semanticAPIName)))
	}

	refs := s2References.Array(doc)
	detail := &types.PaperDetail{
		Paper:           normalizeSemanticPaper(doc),
		ReferencesCount: types.IntPtr(len(refs)),
		TopReferences:   summarize(refs),
		RecentCitations: summarize(s2CitationsList.Array(doc)),
	}
	return op.doneDetail(types.DetailEnvelope{
		Success: true,
		Source:  s.source,
		Paper:   detail,
		Meta:    s.meta(semanticAPIVersion),
	})
}

func (s *SemanticScholar) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}
	if s.cfg.APIKey != "" {
		req.Header.Set("x-api-key", s.cfg.APIKey)
	}
	return s.fetch(ctx, semanticAPIName, req, true, s.maxRetries)
}

// normalizeSemanticPaper maps one graph paper into the unified record.
func normalizeSemanticPaper(p gjson.Result) types.Paper {
	authors := []string{}
	for _, a := range s2Authors.Array(p) {
		authors = append(authors, s2AuthorName.String(a, ""))
	}

	paperID := s2PaperID.String(p, "")
	pageURL := s2URL.String(p, "")
	if pageURL == "" && paperID != "" {
		pageURL = semanticPaperPage + paperID
	}

	return types.Paper{
		Title:      s2Title.String(p, ""),
		Authors:    authors,
		Year:       s2Year.IntPtr(p),
		Abstract:   TruncateAbstract(s2Abstract.String(p, "")),
		TLDR:       s2TLDR.String(p, ""),
		URL:        pageURL,
		PDFURL:     s2PDF.String(p, ""),
		Citations:  types.IntPtr(s2Citations.IntOr(p, 0)),
		CodeRepos:  []types.CodeRepo{},
		KeyMethods: []string{},
		SourceSpecific: map[string]any{
			"s2_paper_id":           paperID,
			"influential_citations": s2Influential.IntOr(p, 0),
			"fields_of_study":       s2Fields.Strings(p),
			"venue":                 s2Venue.String(p, ""),
			"doi":                   s2DOI.String(p, ""),
			"arxiv_id":              s2ArXiv.String(p, ""),
			"publication_date":      s2PubDate.String(p, ""),
		},
	}
}

// summarize reduces the first detailListLimit papers to PaperSummary.
func summarize(items []gjson.Result) []types.PaperSummary {
	out := []types.PaperSummary{}
	for _, item := range items {
		if len(out) == detailListLimit {
			break
		}
		out = append(out, types.PaperSummary{
			Title:     s2Title.String(item, ""),
			Year:      s2Year.IntPtr(item),
			Citations: s2Citations.IntPtr(item),
		})
	}
	return out
}
