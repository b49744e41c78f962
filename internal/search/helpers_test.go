// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pdiddy/frontier-search/internal/httputil"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

func fixedClock() time.Time { return fixedNow }

// recorder is an httptest server that counts calls and keeps the last request.
type recorder struct {
	*httptest.Server
	calls int32

	mu   sync.Mutex
	last *http.Request
	body []byte
}

func newRecorder(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, call int)) *recorder {
	t.Helper()
	rec := &recorder{}
	rec.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(atomic.AddInt32(&rec.calls, 1))
		body, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.last = r.Clone(r.Context())
		rec.body = body
		rec.mu.Unlock()
		handler(w, r, n)
	}))
	t.Cleanup(rec.Close)
	return rec
}

func (r *recorder) Calls() int { return int(atomic.LoadInt32(&r.calls)) }

// Last returns the most recent request and its body.
func (r *recorder) Last() (*http.Request, []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.body
}

func writeBody(w http.ResponseWriter, status int, body string) {
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// roundTrip marshals v to JSON and decodes it into a generic map.
func roundTrip(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}
