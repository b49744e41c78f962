// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/frontier-search/pkg/types"
)

const s2SearchBody = `{
  "total": 1234,
  "offset": 0,
  "data": [
    {
      "paperId": "204e3073870fae3d05bcbc2f6a8e263d9b72e776",
      "title": "Attention is All you Need",
      "authors": [{"authorId": "40348417", "name": "Ashish Vaswani"}, {"authorId": "1846258", "name": "Noam M. Shazeer"}],
      "year": 2017,
      "abstract": "The dominant sequence transduction models...",
      "tldr": {"model": "tldr@v2.0.0", "text": "A new simple network architecture."},
      "url": "https://www.semanticscholar.org/paper/204e3073870fae3d05bcbc2f6a8e263d9b72e776",
      "openAccessPdf": {"url": "https://arxiv.org/pdf/1706.03762", "status": "GREEN"},
      "citationCount": 100000,
      "influentialCitationCount": 15000,
      "fieldsOfStudy": ["Computer Science"],
      "venue": "Neural Information Processing Systems",
      "externalIds": {"DOI": "10.5555/3295222.3295349", "ArXiv": "1706.03762"},
      "publicationDate": "2017-06-12"
    },
    {
      "paperId": "abc123",
      "title": "Sparse Record",
      "authors": null,
      "year": null,
      "abstract": null,
      "tldr": null,
      "openAccessPdf": null,
      "citationCount": null
    }
  ]
}`

func newTestSemantic(t *testing.T, rec *recorder, apiKey string) *SemanticScholar {
	t.Helper()
	return NewSemanticScholar(rec.Client(), types.SemanticScholarConfig{
		BaseURL: rec.URL + "/graph/v1",
		APIKey:  apiKey,
	}, WithClock(fixedClock))
}

func TestSemanticSearch(t *testing.T) {
	rec := newRecorder(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
		writeBody(w, http.StatusOK, s2SearchBody)
	})
	env := newTestSemantic(t, rec, "").Search(context.Background(), "attention", SemanticOptions{})
	require.True(t, env.Success, env.Error)
	assert.Equal(t, types.SourceSemanticScholar, env.Source)
	require.Len(t, env.Results, 2)
	assert.Equal(t, 1234, env.Meta["total_available"])
	assert.Equal(t, "semantic-scholar-graph-v1", env.Meta["api_version"])

	p := env.Results[0]
	assert.Equal(t, "Attention is All you Need", p.Title)
	assert.Equal(t, []string{"Ashish Vaswani", "Noam M. Shazeer"}, p.Authors)
	require.NotNil(t, p.Year)
	assert.Equal(t, 2017, *p.Year)
	assert.Equal(t, "A new simple network architecture.", p.TLDR)
	assert.Equal(t, "https://arxiv.org/pdf/1706.03762", p.PDFURL)
	require.NotNil(t, p.Citations)
	assert.Equal(t, 100000, *p.Citations)
	assert.Equal(t, "204e3073870fae3d05bcbc2f6a8e263d9b72e776", p.SourceSpecific["s2_paper_id"])
	assert.Equal(t, 15000, p.SourceSpecific["influential_citations"])
	assert.Equal(t, []string{"Computer Science"}, p.SourceSpecific["fields_of_study"])
	assert.Equal(t, "10.5555/3295222.3295349", p.SourceSpecific["doi"])
	assert.Equal(t, "1706.03762", p.SourceSpecific["arxiv_id"])

	sparse := env.Results[1]
	assert.Nil(t, sparse.Year)
	assert.Empty(t, sparse.Abstract)
	assert.Empty(t, sparse.TLDR)
	assert.Empty(t, sparse.PDFURL)
	assert.NotNil(t, sparse.Authors)
	require.NotNil(t, sparse.Citations)
	assert.Equal(t, 0, *sparse.Citations, "missing citation count defaults to zero")
	assert.Equal(t, "https://www.semanticscholar.org/paper/abc123", sparse.URL)

	req, _ := rec.Last()
	assert.Equal(t, "/graph/v1/paper/search", req.URL.Path)
	q := req.URL.Query()
	assert.Equal(t, "attention", q.Get("query"))
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, semanticFields, q.Get("fields"))
	assert.NotContains(t, q, "year")
	assert.NotContains(t, q, "openAccessPdf")
	assert.Empty(t, req.Header.Get("x-api-key"))
}

func TestSemanticSearchFilters(t *testing.T) {
	rec := newRecorder(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
		writeBody(w, http.StatusOK, `{"total": 0, "data": []}`)
	})
	env := newTestSemantic(t, rec, "s2-key").Search(context.Background(), "diffusion",
		SemanticOptions{MaxResults: 5, YearFrom: 2023, OpenAccess: true})
	require.True(t, env.Success, env.Error)
	assert.Empty(t, env.Results)

	req, _ := rec.Last()
	q := req.URL.Query()
	assert.Equal(t, "2023-", q.Get("year"))
	assert.Contains(t, q, "openAccessPdf")
	assert.Equal(t, "5", q.Get("limit"))
	assert.Equal(t, "s2-key", req.Header.Get("x-api-key"))
}

func TestSemanticSearchRetriesTransientFailures(t *testing.T) {
	rec := newRecorder(t, func(w http.ResponseWriter, _ *http.Request, call int) {
		if call == 1 {
			writeBody(w, http.StatusServiceUnavailable, "busy")
			return
		}
		writeBody(w, http.StatusOK, s2SearchBody)
	})
	env := newTestSemantic(t, rec, "").Search(context.Background(), "attention", SemanticOptions{})
	require.True(t, env.Success, env.Error)
	assert.Len(t, env.Results, 2)
	assert.Equal(t, 2, rec.Calls())
}

func TestSemanticSearchRetriesExhausted(t *testing.T) {
	rec := newRecorder(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
		writeBody(w, http.StatusTooManyRequests, "rate limited")
	})
	env := newTestSemantic(t, rec, "").Search(context.Background(), "x", SemanticOptions{})
	assert.False(t, env.Success)
	assert.Equal(t, "S2 API returned HTTP 429 after retries: rate limited", env.Error)
	assert.Equal(t, 4, rec.Calls(), "one attempt plus three retries")

	var se *StatusError
	require.ErrorAs(t, env.Err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.True(t, se.Retried)
}

func TestSemanticSearchKeepsContextLogger(t *testing.T) {
	rec := newRecorder(t, func(w http.ResponseWriter, _ *http.Request, call int) {
		if call == 1 {
			writeBody(w, http.StatusServiceUnavailable, "busy")
			return
		}
		writeBody(w, http.StatusOK, s2SearchBody)
	})
	var buf bytes.Buffer
	reqLog := zerolog.New(&buf).With().Str("request_id", "req-42").Logger()
	ctx := reqLog.WithContext(context.Background())

	env := newTestSemantic(t, rec, "").Search(ctx, "attention", SemanticOptions{})
	require.True(t, env.Success, env.Error)

	out := buf.String()
	assert.Contains(t, out, `"message":"transient failure, retrying"`)
	assert.Contains(t, out, `"request_id":"req-42"`)
	assert.Contains(t, out, `"source":"semantic_scholar"`)
}

func TestSemanticSearchRetriesDisabled(t *testing.T) {
	rec := newRecorder(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
		writeBody(w, http.StatusServiceUnavailable, "busy")
	})
	s := NewSemanticScholar(rec.Client(), types.SemanticScholarConfig{
		BaseURL:    rec.URL + "/graph/v1",
		MaxRetries: types.IntPtr(0),
	}, WithClock(fixedClock))

	env := s.Search(context.Background(), "x", SemanticOptions{})
	assert.False(t, env.Success)
	assert.Equal(t, "S2 API returned HTTP 503: busy", env.Error)
	assert.Equal(t, 1, rec.Calls())
}

func TestSemanticSearchNonRetryableStatus(t *testing.T) {
	rec := newRecorder(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
		writeBody(w, http.StatusNotFound, "not found")
	})
	env := newTestSemantic(t, rec, "").Search(context.Background(), "x", SemanticOptions{})
	assert.False(t, env.Success)
	assert.Equal(t, "S2 API returned HTTP 404: not found", env.Error)
	assert.Equal(t, 1, rec.Calls())
}

func TestSemanticSearchErrorExcerptBounded(t *testing.T) {
	rec := newRecorder(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
		writeBody(w, http.StatusBadRequest, strings.Repeat("x", 1000))
	})
	env := newTestSemantic(t, rec, "").Search(context.Background(), "x", SemanticOptions{})
	assert.False(t, env.Success)
	assert.Equal(t, "S2 API returned HTTP 400: "+strings.Repeat("x", 200), env.Error)
}

func TestSemanticSearchInvalidParameters(t *testing.T) {
	rec := newRecorder(t, func(w http.ResponseWriter, _ *http.Request, _ int) {})
	s := newTestSemantic(t, rec, "")

	env := s.Search(context.Background(), "", SemanticOptions{})
	assert.ErrorIs(t, env.Err, ErrInvalidParameter)

	env = s.Search(context.Background(), "x", SemanticOptions{YearFrom: -1})
	assert.ErrorIs(t, env.Err, ErrInvalidParameter)

	assert.Zero(t, rec.Calls())
}

func TestSemanticDetail(t *testing.T) {
	var refs, cites []string
	for i := 0; i < 15; i++ {
		refs = append(refs, fmt.Sprintf(`{"title": "Ref %d", "year": %d, "citationCount": %d}`, i, 2000+i, i))
		cites = append(cites, fmt.Sprintf(`{"title": "Cite %d", "year": null}`, i))
	}
	body := fmt.Sprintf(`{"paperId": "p1", "title": "Detailed", "year": 2020, "citationCount": 5,
		"venue": "ICML", "externalIds": {"DOI": "10.1/abc"},
		"references": [%s], "citations": [%s]}`, strings.Join(refs, ","), strings.Join(cites, ","))

	rec := newRecorder(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
		writeBody(w, http.StatusOK, body)
	})
	env := newTestSemantic(t, rec, "").Detail(context.Background(), "arXiv:1706.03762")
	require.True(t, env.Success, env.Error)
	require.NotNil(t, env.Paper)

	d := env.Paper
	assert.Equal(t, "Detailed", d.Title)
	require.NotNil(t, d.ReferencesCount)
	assert.Equal(t, 15, *d.ReferencesCount)
	require.Len(t, d.TopReferences, 10)
	require.Len(t, d.RecentCitations, 10)
	assert.Equal(t, "Ref 0", d.TopReferences[0].Title)
	require.NotNil(t, d.TopReferences[9].Year)
	assert.Equal(t, 2009, *d.TopReferences[9].Year)
	assert.Nil(t, d.RecentCitations[0].Year)
	assert.Nil(t, d.RecentCitations[0].Citations)
	assert.Equal(t, "ICML", d.SourceSpecific["venue"])
	assert.Equal(t, "10.1/abc", d.SourceSpecific["doi"])

	req, _ := rec.Last()
	assert.Equal(t, "/graph/v1/paper/arXiv:1706.03762", req.URL.Path)
	assert.Equal(t, semanticDetailFields, req.URL.Query().Get("fields"))

	out := roundTrip(t, env)
	paper := out["paper"].(map[string]any)
	assert.EqualValues(t, 15, paper["references_count"])
	assert.Len(t, paper["top_references"], 10)
}

func TestSemanticDetailEmptyID(t *testing.T) {
	rec := newRecorder(t, func(w http.ResponseWriter, _ *http.Request, _ int) {})
	env := newTestSemantic(t, rec, "").Detail(context.Background(), " ")
	assert.False(t, env.Success)
	assert.ErrorIs(t, env.Err, ErrInvalidParameter)
	assert.Zero(t, rec.Calls())
}
