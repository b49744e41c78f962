// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across source adapters.
package httputil

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Doer is the HTTP-fetch capability the adapters depend on. *http.Client
// satisfies it; tests substitute counting fakes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RetryBaseDelay controls the base duration for exponential backoff.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = 1 * time.Second

// DefaultMaxRetries is used when DoWithRetry is given a negative count.
const DefaultMaxRetries = 3

// Retryable reports whether a response status warrants another attempt:
// any 5xx and 429 (Too Many Requests). Other 4xx are final.
func Retryable(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

// DoWithRetry executes an HTTP request and retries transient failures with
// exponential backoff. The delay starts at RetryBaseDelay (1 s) and doubles
// each attempt: 1 s, 2 s, 4 s. There is no jitter.
//
// Success and non-retryable client errors are returned immediately; the
// caller inspects the status. On a retryable status or a network error the
// request is repeated up to maxRetries more times. Zero disables retries and
// a negative count means DefaultMaxRetries.
// After exhaustion the last response is returned, or the last network error.
// A cancelled context aborts the wait and returns ctx.Err().
//
// Request bodies are replayed through req.GetBody, which http.NewRequest
// sets for in-memory readers.
func DoWithRetry(ctx context.Context, client Doer, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	log := zerolog.Ctx(ctx)

	for attempt := 0; ; attempt++ {
		attemptReq, err := cloneRequest(ctx, req)
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(attemptReq)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if attempt >= maxRetries {
				return nil, err
			}
		case !Retryable(resp.StatusCode):
			return resp, nil
		case attempt >= maxRetries:
			// Exhausted retries, hand back the last response as-is.
			return resp, nil
		default:
			// Drain and close the body before retrying.
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		ev := log.Warn().
			Str("url", req.URL.Redacted()).
			Int("attempt", attempt+1).
			Int("max_retries", maxRetries).
			Dur("backoff", backoff)
		if err != nil {
			ev = ev.Err(err)
		} else {
			ev = ev.Int("status", resp.StatusCode)
		}
		ev.Msg("transient failure, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func cloneRequest(ctx context.Context, req *http.Request) (*http.Request, error) {
	clone := req.Clone(ctx)
	if req.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("rewinding request body: %w", err)
		}
		clone.Body = body
	}
	return clone, nil
}
