// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/frontier-search/internal/httputil"
	"github.com/pdiddy/frontier-search/pkg/types"
)

const (
	// DefaultHFBaseURL is the Hugging Face API root.
	DefaultHFBaseURL = "https://huggingface.co/api"

	hfAPIName      = "HF Papers API"
	hfDailyAPIName = "HF Daily Papers API"
	hfAPIVersion   = "huggingface-papers-v1"

	// hfPaperPage is the native paper page, used when the id is not an
	// arXiv identifier.
	hfPaperPage = "https://huggingface.co/papers/"
)

// Field fallbacks for curated-feed records. Each list is tried in order.
var (
	hfPaper        = Fallback{"paper"}
	hfAuthors      = Fallback{"authors"}
	hfAuthorName   = Fallback{"name", "user.fullname", "user.user"}
	hfTitle        = Fallback{"title"}
	hfSummary      = Fallback{"summary"}
	hfPublished    = Fallback{"publishedAt"}
	hfID           = Fallback{"id"}
	hfAISummary    = Fallback{"ai_summary"}
	hfAIKeywords   = Fallback{"ai_keywords"}
	hfGithubRepo   = Fallback{"githubRepo"}
	hfGithubStars  = Fallback{"githubStars"}
	hfUpvotes      = Fallback{"upvotes"}
	hfNumComments  = Fallback{"numComments"}
	hfOrganization = Fallback{"organization.fullname", "organization.name"}
	hfHighTitle    = Fallback{"highlightedTitle"}
	hfHighSummary  = Fallback{"highlightedSummary"}
	hfSubmittedOn  = Fallback{"submittedOnDailyAt"}
)

// arxivIDPattern matches new-style (2301.07041, optionally versioned) and
// old-style (hep-th/9901001) arXiv identifiers.
var arxivIDPattern = regexp.MustCompile(`^(\d{4}\.\d{4,5}|[a-z\-]+(\.[A-Z]{2})?/\d{7})(v\d+)?$`)

// HFOptions are the per-request filters of the curated-feed adapter.
type HFOptions struct {
	// MaxResults defaults to 10 and is clamped to 100.
	MaxResults int
}

// HFPapers queries the Hugging Face papers feed.
type HFPapers struct {
	base
	cfg types.HFPapersConfig
}

// NewHFPapers creates a curated-feed adapter. Zero config fields take defaults.
func NewHFPapers(client httputil.Doer, cfg types.HFPapersConfig, opts ...Option) *HFPapers {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultHFBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &HFPapers{base: newBase(types.SourceHFPapers, client, opts), cfg: cfg}
}

// Search runs a free-text query against the papers index.
func (h *HFPapers) Search(ctx context.Context, query string, opts HFOptions) types.Envelope {
	ctx, op := h.begin(ctx, "search")

	query = strings.TrimSpace(query)
	if query == "" {
		return op.done(h.failure(invalidParam("query is required")))
	}
	params := url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(clampResults(opts.MaxResults, maxResultsCap))},
	}
	items, err := h.list(ctx, hfAPIName, h.cfg.BaseURL+"/papers/search?"+params.Encode())
	if err != nil {
		return op.done(h.failure(err))
	}

	papers := make([]types.Paper, 0, len(items))
	for _, item := range items {
		p, ok := normalizeHFItem(item)
		if !ok {
			continue
		}
		p.SourceSpecific["highlighted_title"] = hfHighTitle.String(item, "")
		p.SourceSpecific["highlighted_summary"] = hfHighSummary.String(item, "")
		papers = append(papers, p)
	}
	return op.done(h.success(query, papers, h.meta(hfAPIVersion)))
}

// Trending returns today's curated daily papers. It takes no query.
func (h *HFPapers) Trending(ctx context.Context, opts HFOptions) types.Envelope {
	ctx, op := h.begin(ctx, "trending")

	reqURL := fmt.Sprintf("%s/daily_papers?limit=%d", h.cfg.BaseURL, clampResults(opts.MaxResults, maxResultsCap))
	items, err := h.list(ctx, hfDailyAPIName, reqURL)
	if err != nil {
		return op.done(h.failure(err))
	}

	papers := make([]types.Paper, 0, len(items))
	for _, item := range items {
		p, ok := normalizeHFItem(item)
		if !ok {
			continue
		}
		paper, _ := paperObject(item)
		p.SourceSpecific["submitted_on_daily"] = hfSubmittedOn.String(paper, "")
		papers = append(papers, p)
	}

	meta := h.meta(hfAPIVersion)
	meta["type"] = "daily_trending"
	return op.done(h.success("trending", papers, meta))
}

// Detail fetches one paper by its arXiv identifier.
func (h *HFPapers) Detail(ctx context.Context, id string) types.DetailEnvelope {
	ctx, op := h.begin(ctx, "detail")

	id = strings.TrimSpace(id)
	if id == "" {
		return op.doneDetail(h.detailFailure(invalidParam("paper id is required")))
	}
	body, err := h.get(ctx, hfAPIName, h.cfg.BaseURL+"/papers/"+url.PathEscape(id))
	if err != nil {
		return op.doneDetail(h.detailFailure(err))
	}

	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return op.doneDetail(h.detailFailure(fmt.Errorf("%w: %s detail is not an object", ErrMalformedResponse, hfAPIName)))
	}
	p, _ := normalizeHFItem(doc)
	// The requested id is authoritative for the detail links.
	if p.URL == "" {
		p.URL, p.PDFURL = hfLinks(id)
	}
	return op.doneDetail(types.DetailEnvelope{
		Success: true,
		Source:  h.source,
		Paper:   &types.PaperDetail{Paper: p},
		Meta:    h.meta(hfAPIVersion),
	})
}

func (h *HFPapers) get(ctx context.Context, api, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if h.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", h.cfg.UserAgent)
	}
	return h.fetch(ctx, api, req, false, 0)
}

// list fetches a JSON array. A body that parses but is not an array is an
// empty result, matching the feed's behavior for unknown queries.
func (h *HFPapers) list(ctx context.Context, api, reqURL string) ([]gjson.Result, error) {
	body, err := h.get(ctx, api, reqURL)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: parsing %s response", ErrMalformedResponse, api)
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsArray() {
		return nil, nil
	}
	return doc.Array(), nil
}

// paperObject unwraps {"paper": {...}} items; bare paper objects pass through.
func paperObject(item gjson.Result) (gjson.Result, bool) {
	if p, ok := hfPaper.Object(item); ok {
		return p, true
	}
	if item.IsObject() {
		return item, true
	}
	return gjson.Result{}, false
}

// normalizeHFItem maps one feed item into the unified record. ok is false
// only when the item is not a JSON object at all.
func normalizeHFItem(item gjson.Result) (types.Paper, bool) {
	paper, ok := paperObject(item)
	if !ok {
		return types.Paper{}, false
	}

	authors := []string{}
	for _, a := range hfAuthors.Array(paper) {
		authors = append(authors, hfAuthorName.String(a, ""))
	}

	codeRepos := []types.CodeRepo{}
	if repo := hfGithubRepo.String(paper, ""); repo != "" {
		codeRepos = append(codeRepos, types.CodeRepo{
			URL:       repo,
			Stars:     hfGithubStars.IntOr(paper, 0),
			Framework: "unknown",
		})
	}

	id := hfID.String(paper, "")
	absURL, pdfURL := hfLinks(id)

	return types.Paper{
		Title:      hfTitle.String(paper, ""),
		Authors:    authors,
		Year:       yearOf(hfPublished.String(paper, "")),
		Abstract:   TruncateAbstract(hfSummary.String(paper, "")),
		TLDR:       hfAISummary.String(paper, ""),
		URL:        absURL,
		PDFURL:     pdfURL,
		CodeRepos:  codeRepos,
		KeyMethods: hfAIKeywords.Strings(paper),
		SourceSpecific: map[string]any{
			"arxiv_id":     id,
			"upvotes":      hfUpvotes.IntOr(paper, 0),
			"num_comments": hfNumComments.IntOr(item, 0),
			"organization": hfOrganization.String(paper, ""),
		},
	}, true
}

// hfLinks derives the abs and PDF links for a feed id. arXiv ids always
// produce arXiv links, even when the feed carries its own hosting link.
func hfLinks(id string) (absURL, pdfURL string) {
	switch {
	case id == "":
		return "", ""
	case arxivIDPattern.MatchString(id):
		return "https://arxiv.org/abs/" + id, "https://arxiv.org/pdf/" + id
	default:
		return hfPaperPage + url.PathEscape(id), ""
	}
}
