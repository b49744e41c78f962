// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Failure classes. Every failure envelope's Err wraps exactly one of these.
var (
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrUpstreamStatus    = errors.New("upstream HTTP failure")
	ErrTransport         = errors.New("upstream transport failure")
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// bodyExcerptLimit bounds the upstream body quoted in status errors.
const bodyExcerptLimit = 200

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	API        string
	StatusCode int
	Excerpt    string
	Retried    bool
}

func (e *StatusError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s returned HTTP %d", e.API, e.StatusCode)
	if e.Retried {
		b.WriteString(" after retries")
	}
	if e.Excerpt != "" {
		b.WriteString(": ")
		b.WriteString(e.Excerpt)
	}
	return b.String()
}

func (e *StatusError) Unwrap() error { return ErrUpstreamStatus }

// newStatusError reads up to bodyExcerptLimit characters of resp.Body.
func newStatusError(api string, resp *http.Response, retried bool) *StatusError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4*bodyExcerptLimit))
	return &StatusError{
		API:        api,
		StatusCode: resp.StatusCode,
		Excerpt:    excerpt(strings.TrimSpace(string(raw)), bodyExcerptLimit),
		Retried:    retried,
	}
}

// excerpt cuts s to at most n characters without splitting a rune.
func excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// transportError marks a network-level failure while keeping the
// underlying description as the message.
type transportError struct{ err error }

func (e *transportError) Error() string { return e.err.Error() }

func (e *transportError) Unwrap() []error { return []error{ErrTransport, e.err} }

func invalidParam(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
