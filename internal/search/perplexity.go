// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/frontier-search/internal/httputil"
	"github.com/pdiddy/frontier-search/pkg/types"
)

const (
	// DefaultPerplexityBaseURL is the OpenRouter chat-completions endpoint.
	DefaultPerplexityBaseURL = "https://openrouter.ai/api/v1/chat/completions"

	// PerplexityKeyEnv names the environment secret holding the OpenRouter key.
	PerplexityKeyEnv = "OPENROUTER_API_KEY"

	// DefaultPerplexityModel is used when a request names no model.
	DefaultPerplexityModel = "sonar-pro"

	defaultPerplexityReferer = "https://github.com/pdiddy/frontier-search"
	defaultPerplexityTitle   = "frontier-search"

	perplexityAPIName    = "OpenRouter API"
	perplexityAPIVersion = "openrouter-perplexity-v1"

	defaultMaxTokens   = 4000
	defaultTemperature = 0.2
)

// PerplexityModels maps the accepted short model names to OpenRouter ids.
var PerplexityModels = map[string]string{
	"sonar":               "perplexity/sonar",
	"sonar-pro":           "perplexity/sonar-pro",
	"sonar-reasoning":     "perplexity/sonar-reasoning",
	"sonar-reasoning-pro": "perplexity/sonar-reasoning-pro",
}

// Field fallbacks for chat-completion payloads.
var (
	pplxAnswer      = Fallback{"choices.0.message.content", "choices.0.text"}
	pplxCitations   = Fallback{"citations"}
	pplxAnnotations = Fallback{"choices.0.message.annotations"}
	pplxAnnotURL    = Fallback{"url_citation.url"}
	pplxUsage       = Fallback{"usage"}
)

// PerplexityOptions are the per-request settings of the LLM-backed adapter.
type PerplexityOptions struct {
	// Model is a key of PerplexityModels; empty means DefaultPerplexityModel.
	Model string

	// MaxTokens defaults to 4000.
	MaxTokens int

	// Temperature defaults to 0.2. A pointer so that 0 stays expressible.
	Temperature *float64

	// Mode rewrites the query before dispatch; empty means ModePlain.
	Mode QueryMode

	// Days is the ModeRecent window; 0 means DefaultRecentDays.
	Days int
}

// Perplexity asks Perplexity Sonar models through OpenRouter for a
// web-grounded answer with citations.
type Perplexity struct {
	base
	cfg types.PerplexityConfig
}

// NewPerplexity creates the LLM-backed adapter. cfg.APIKey may be empty; the
// adapter then fails every call before touching the network.
func NewPerplexity(client httputil.Doer, cfg types.PerplexityConfig, opts ...Option) *Perplexity {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultPerplexityBaseURL
	}
	if cfg.Referer == "" {
		cfg.Referer = defaultPerplexityReferer
	}
	if cfg.Title == "" {
		cfg.Title = defaultPerplexityTitle
	}
	return &Perplexity{base: newBase(types.SourcePerplexity, client, opts), cfg: cfg}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Search sends query, rewritten per opts.Mode, and returns a single Answer.
func (p *Perplexity) Search(ctx context.Context, query string, opts PerplexityOptions) types.Envelope {
	ctx, op := p.begin(ctx, "search")

	if p.cfg.APIKey == "" {
		return op.done(p.failure(fmt.Errorf("%w: %s not set. Get one at https://openrouter.ai/keys",
			ErrMissingCredential, PerplexityKeyEnv)))
	}

	modelName := opts.Model
	if modelName == "" {
		modelName = DefaultPerplexityModel
	}
	modelID, ok := PerplexityModels[modelName]
	if !ok {
		return op.done(p.failure(invalidParam("unknown model: %s. Available: %s",
			modelName, strings.Join(ModelNames(), ", "))))
	}

	topic := strings.TrimSpace(query)
	if topic == "" {
		return op.done(p.failure(invalidParam("query is required")))
	}
	mode := opts.Mode
	if mode == "" {
		mode = ModePlain
	}
	prompt, err := BuildQuery(topic, mode, opts.Days)
	if err != nil {
		return op.done(p.failure(err))
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := defaultTemperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	payload, err := json.Marshal(chatRequest{
		Model:       modelID,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return op.done(p.failure(fmt.Errorf("marshaling request: %w", err)))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return op.done(p.failure(fmt.Errorf("creating request: %w", err)))
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", p.cfg.Referer)
	req.Header.Set("X-Title", p.cfg.Title)
	if p.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", p.cfg.UserAgent)
	}

	body, err := p.fetch(ctx, perplexityAPIName, req, false, 0)
	if err != nil {
		return op.done(p.failure(err))
	}
	if !gjson.ValidBytes(body) {
		return op.done(p.failure(fmt.Errorf("%w: parsing %s response", ErrMalformedResponse, perplexityAPIName)))
	}
	doc := gjson.ParseBytes(body)

	var tokensUsed any
	if usage, ok := pplxUsage.Object(doc); ok {
		tokensUsed = usage.Value()
	}

	meta := p.meta(perplexityAPIVersion)
	meta["model_id"] = modelID
	meta["tokens_used"] = tokensUsed
	meta["query_mode"] = string(mode)
	meta["prompt"] = prompt

	return op.done(types.Envelope{
		Success: true,
		Query:   topic,
		Source:  p.source,
		Answers: []types.Answer{{
			Answer:    pplxAnswer.String(doc, ""),
			Citations: answerCitations(doc),
			Model:     modelName,
		}},
		Meta: meta,
	})
}

// answerCitations returns the provider's citation list verbatim. Responses
// without one fall back to the url_citation annotations on the message.
func answerCitations(doc gjson.Result) []string {
	if doc.Get("citations").IsArray() {
		return pplxCitations.Strings(doc)
	}
	urls := []string{}
	for _, a := range pplxAnnotations.Array(doc) {
		if u := pplxAnnotURL.String(a, ""); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// ModelNames returns the accepted short model names, sorted.
func ModelNames() []string {
	names := make([]string, 0, len(PerplexityModels))
	for name := range PerplexityModels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
