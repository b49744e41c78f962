// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search turns four structurally different academic sources (arXiv
// Atom XML, Hugging Face papers JSON, Semantic Scholar graph JSON, and an
// OpenRouter chat completion) into one stable envelope.
//
// Every adapter operation returns a types.Envelope or types.DetailEnvelope
// and never a Go error: failures are reported with Success=false and a
// classified Err. Adapters hold no mutable state, so one instance may serve
// concurrent callers.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/pdiddy/frontier-search/internal/httputil"
	"github.com/pdiddy/frontier-search/internal/observability"
	"github.com/pdiddy/frontier-search/pkg/types"
)

const (
	defaultMaxResults = 10
	maxResultsCap     = 100
)

// timestampFormat matches the millisecond ISO-8601 form callers expect.
const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Option customizes an adapter at construction.
type Option func(*base)

// WithLogger sets the adapter logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(b *base) { b.log = l }
}

// WithMetrics records every operation on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(b *base) { b.metrics = m }
}

// WithClock replaces time.Now for meta timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

// base carries what every adapter shares. It is never mutated after
// construction.
type base struct {
	source  types.Source
	client  httputil.Doer
	log     zerolog.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

func newBase(source types.Source, client httputil.Doer, opts []Option) base {
	if client == nil {
		client = http.DefaultClient
	}
	b := base{
		source: source,
		client: client,
		log:    zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// operation tracks one adapter call for logging and metrics.
type operation struct {
	b     *base
	name  string
	start time.Time
	log   zerolog.Logger
}

// begin starts an operation. A logger already on ctx, such as a request
// logger, takes precedence over the adapter logger so its fields carry over.
func (b *base) begin(ctx context.Context, name string) (context.Context, *operation) {
	parent := b.log
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		parent = *l
	}
	op := &operation{
		b:     b,
		name:  name,
		start: time.Now(),
		log:   observability.WithSourceContext(parent, string(b.source), name),
	}
	return op.log.WithContext(ctx), op
}

func (op *operation) finish(success bool, count int, err error) {
	elapsed := time.Since(op.start)
	op.b.metrics.RecordOperation(string(op.b.source), op.name, success, count, elapsed)
	if !success {
		op.log.Warn().Err(err).Dur("duration", elapsed).Msg("operation failed")
		return
	}
	op.log.Debug().Int("result_count", count).Dur("duration", elapsed).Msg("operation complete")
}

// done closes op and returns env unchanged.
func (op *operation) done(env types.Envelope) types.Envelope {
	op.finish(env.Success, env.ResultCount(), env.Err)
	return env
}

func (op *operation) doneDetail(env types.DetailEnvelope) types.DetailEnvelope {
	op.finish(env.Success, 1, env.Err)
	return env
}

func (b *base) meta(apiVersion string) types.Meta {
	return types.Meta{
		"timestamp":   b.now().UTC().Format(timestampFormat),
		"api_version": apiVersion,
	}
}

func (b *base) success(query string, results []types.Paper, meta types.Meta) types.Envelope {
	if results == nil {
		results = []types.Paper{}
	}
	return types.Envelope{Success: true, Query: query, Source: b.source, Results: results, Meta: meta}
}

func (b *base) failure(err error) types.Envelope {
	return types.Envelope{Source: b.source, Error: err.Error(), Err: err}
}

func (b *base) detailFailure(err error) types.DetailEnvelope {
	return types.DetailEnvelope{Source: b.source, Error: err.Error(), Err: err}
}

// fetch performs req and returns the body of a 2xx response. With retry set
// the request goes through httputil.DoWithRetry; otherwise it is issued once.
func (b *base) fetch(ctx context.Context, api string, req *http.Request, retry bool, maxRetries int) ([]byte, error) {
	zerolog.Ctx(ctx).Debug().Str("url", req.URL.Redacted()).Msg("request")

	var (
		resp *http.Response
		err  error
	)
	if retry {
		resp, err = httputil.DoWithRetry(ctx, b.client, req, maxRetries)
	} else {
		resp, err = b.client.Do(req)
	}
	if err != nil {
		return nil, &transportError{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		retried := retry && maxRetries != 0 && httputil.Retryable(resp.StatusCode)
		return nil, newStatusError(api, resp, retried)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transportError{err: fmt.Errorf("reading %s response: %w", api, err)}
	}
	return body, nil
}

// TruncateAbstract keeps the first types.AbstractLimit characters of s and
// appends types.TruncationMarker when anything was cut.
func TruncateAbstract(s string) string {
	if utf8.RuneCountInString(s) <= types.AbstractLimit {
		return s
	}
	return string([]rune(s)[:types.AbstractLimit]) + types.TruncationMarker
}

// clampResults applies the default for n <= 0 and caps n at limit.
func clampResults(n, limit int) int {
	if n <= 0 {
		return defaultMaxResults
	}
	if n > limit {
		return limit
	}
	return n
}

// yearOf parses the leading four digits of an ISO date.
func yearOf(date string) *int {
	if len(date) < 4 {
		return nil
	}
	y := 0
	for _, c := range date[:4] {
		if c < '0' || c > '9' {
			return nil
		}
		y = y*10 + int(c-'0')
	}
	return &y
}
