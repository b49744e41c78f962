// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/frontier-search/internal/search"
	"github.com/pdiddy/frontier-search/pkg/types"
)

func (s *Server) arxivSearch(w http.ResponseWriter, r *http.Request) {
	p := params{r: r}
	opts := search.ArxivOptions{
		MaxResults: p.intValue("max_results"),
		SortBy:     p.stringValue("sort_by"),
		Categories: p.listValue("categories"),
	}
	if p.err != nil {
		writeEnvelope(w, paramFailure(types.SourceArxiv, p.err))
		return
	}
	writeEnvelope(w, s.sources.Arxiv.Search(r.Context(), p.stringValue("q"), opts))
}

func (s *Server) hfSearch(w http.ResponseWriter, r *http.Request) {
	p := params{r: r}
	opts := search.HFOptions{MaxResults: p.intValue("max_results")}
	if p.err != nil {
		writeEnvelope(w, paramFailure(types.SourceHFPapers, p.err))
		return
	}
	writeEnvelope(w, s.sources.HF.Search(r.Context(), p.stringValue("q"), opts))
}

func (s *Server) hfTrending(w http.ResponseWriter, r *http.Request) {
	p := params{r: r}
	opts := search.HFOptions{MaxResults: p.intValue("max_results")}
	if p.err != nil {
		writeEnvelope(w, paramFailure(types.SourceHFPapers, p.err))
		return
	}
	writeEnvelope(w, s.sources.HF.Trending(r.Context(), opts))
}

func (s *Server) hfDetail(w http.ResponseWriter, r *http.Request) {
	writeDetail(w, s.sources.HF.Detail(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) semanticSearch(w http.ResponseWriter, r *http.Request) {
	p := params{r: r}
	opts := search.SemanticOptions{
		MaxResults: p.intValue("max_results"),
		YearFrom:   p.intValue("year_from"),
		OpenAccess: p.boolValue("open_access"),
	}
	if p.err != nil {
		writeEnvelope(w, paramFailure(types.SourceSemanticScholar, p.err))
		return
	}
	writeEnvelope(w, s.sources.Semantic.Search(r.Context(), p.stringValue("q"), opts))
}

func (s *Server) semanticDetail(w http.ResponseWriter, r *http.Request) {
	writeDetail(w, s.sources.Semantic.Detail(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) perplexitySearch(w http.ResponseWriter, r *http.Request) {
	p := params{r: r}
	opts := search.PerplexityOptions{
		Model:       p.stringValue("model"),
		MaxTokens:   p.intValue("max_tokens"),
		Temperature: p.floatValue("temperature"),
		Mode:        search.QueryMode(p.stringValue("mode")),
		Days:        p.intValue("days"),
	}
	if p.err != nil {
		writeEnvelope(w, paramFailure(types.SourcePerplexity, p.err))
		return
	}
	writeEnvelope(w, s.sources.Perplexity.Search(r.Context(), p.stringValue("q"), opts))
}

// params reads query parameters, keeping the first conversion error.
type params struct {
	r   *http.Request
	err error
}

func (p *params) stringValue(name string) string {
	return strings.TrimSpace(p.r.URL.Query().Get(name))
}

func (p *params) listValue(name string) []string {
	raw := p.stringValue(name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (p *params) intValue(name string) int {
	raw := p.stringValue(name)
	if raw == "" || p.err != nil {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.err = errors.New(name + " must be an integer, got " + strconv.Quote(raw))
	}
	return n
}

func (p *params) floatValue(name string) *float64 {
	raw := p.stringValue(name)
	if raw == "" || p.err != nil {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.err = errors.New(name + " must be a number, got " + strconv.Quote(raw))
		return nil
	}
	return &f
}

func (p *params) boolValue(name string) bool {
	raw := p.stringValue(name)
	if raw == "" || p.err != nil {
		return false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		p.err = errors.New(name + " must be a boolean, got " + strconv.Quote(raw))
	}
	return b
}

func paramFailure(source types.Source, err error) types.Envelope {
	wrapped := errors.Join(search.ErrInvalidParameter, err)
	return types.Envelope{
		Source: source,
		Error:  search.ErrInvalidParameter.Error() + ": " + err.Error(),
		Err:    wrapped,
	}
}

func writeEnvelope(w http.ResponseWriter, env types.Envelope) {
	status := http.StatusOK
	if !env.Success {
		status = statusFor(env.Err)
	}
	writeJSON(w, status, env)
}

func writeDetail(w http.ResponseWriter, env types.DetailEnvelope) {
	status := http.StatusOK
	if !env.Success {
		status = statusFor(env.Err)
	}
	writeJSON(w, status, env)
}

// statusFor maps an adapter failure class to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, search.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, search.ErrMissingCredential):
		return http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, search.ErrUpstreamStatus),
		errors.Is(err, search.ErrTransport),
		errors.Is(err, search.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}
