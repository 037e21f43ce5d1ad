package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/relens/internal/tracing"
)

// fakeService records the last request and replies with a canned body.
type fakeService struct {
	status int
	body   string
	calls  atomic.Int32

	mu           sync.Mutex
	lastSnapshot Snapshot
	lastHeader   http.Header
	lastPath     string
	lastMethod   string
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastHeader = r.Header.Clone()
	f.lastPath = r.URL.Path
	f.lastMethod = r.Method
	body, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(body, &f.lastSnapshot)

	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, f.body)
}

func (f *fakeService) last() (Snapshot, http.Header, string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastSnapshot, f.lastHeader, f.lastPath, f.lastMethod
}

func newTestClient(t *testing.T, f *fakeService) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(HTTPOptions{BaseURL: srv.URL + "/", Timeout: time.Second})
	require.NoError(t, err)
	return c
}

func TestHTTPClient_Success(t *testing.T) {
	f := &fakeService{body: `{
		"translated": "(?:ab){1,3}",
		"highlighted": "<mark>ab</mark>\nba",
		"accepted": [["ab", true], ["ba", false]],
		"error": null
	}`}
	c := newTestClient(t, f)

	s := Snapshot{Pattern: "(ab)^n", Constraints: "n: 1 <= n <= 3", Text: "ab\nba"}
	res := c.Run(context.Background(), s)

	require.False(t, res.Failed(), res.Error)
	require.Equal(t, "(?:ab){1,3}", res.Translated)
	require.Equal(t, "<mark>ab</mark>\nba", res.Highlighted)
	require.Equal(t, []Acceptance{{"ab", true}, {"ba", false}}, res.Accepted)

	snap, header, path, method := f.last()
	require.Equal(t, http.MethodPost, method)
	require.Equal(t, RunPath, path)
	require.Equal(t, s, snap)
	require.Equal(t, "application/json", header.Get("Content-Type"))
	require.Equal(t, "application/json", header.Get("Accept"))
	_, err := uuid.Parse(header.Get(RequestIDHeader))
	require.NoError(t, err)
}

func TestHTTPClient_UsesRequestIDFromContext(t *testing.T) {
	f := &fakeService{body: `{"translated":"a"}`}
	c := newTestClient(t, f)

	ctx := tracing.ContextWithRequestID(context.Background(), "req-42")
	c.Run(ctx, Snapshot{Pattern: "a"})
	_, header, _, _ := f.last()
	require.Equal(t, "req-42", header.Get(RequestIDHeader))
}

func TestHTTPClient_ServiceErrorIsPassedThrough(t *testing.T) {
	f := &fakeService{status: http.StatusBadRequest, body: `{"error":"Unbalanced parenthesis","translated":"(a"}`}
	c := newTestClient(t, f)

	res := c.Run(context.Background(), Snapshot{Pattern: "(a"})
	require.Equal(t, "Unbalanced parenthesis", res.Error)
	require.Equal(t, "(a", res.Translated)
}

func TestHTTPClient_StatusWithoutErrorField(t *testing.T) {
	f := &fakeService{status: http.StatusInternalServerError, body: `{}`}
	c := newTestClient(t, f)

	res := c.Run(context.Background(), Snapshot{})
	require.Equal(t, "Network error: HTTP 500", res.Error)
}

func TestHTTPClient_NonJSONBody(t *testing.T) {
	f := &fakeService{status: http.StatusBadGateway, body: "<html>bad gateway</html>"}
	c := newTestClient(t, f)

	res := c.Run(context.Background(), Snapshot{})
	require.True(t, strings.HasPrefix(res.Error, NetworkErrorPrefix), res.Error)
	require.Contains(t, res.Error, "HTTP 502")
}

func TestHTTPClient_MalformedAcceptance(t *testing.T) {
	f := &fakeService{body: `{"accepted": [["only-one"]]}`}
	c := newTestClient(t, f)

	res := c.Run(context.Background(), Snapshot{})
	require.True(t, strings.HasPrefix(res.Error, NetworkErrorPrefix), res.Error)
}

func TestHTTPClient_TransportError(t *testing.T) {
	c, err := NewHTTPClient(HTTPOptions{
		BaseURL: "http://example.invalid",
		Do: func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
	})
	require.NoError(t, err)

	res := c.Run(context.Background(), Snapshot{Pattern: "a"})
	require.Equal(t, "Network error: connection refused", res.Error)
}

func TestHTTPClient_CancelledContext(t *testing.T) {
	f := &fakeService{body: `{}`}
	c := newTestClient(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.Run(ctx, Snapshot{})
	require.True(t, strings.HasPrefix(res.Error, NetworkErrorPrefix), res.Error)
}

func TestNewHTTPClient_Validation(t *testing.T) {
	c, err := NewHTTPClient(HTTPOptions{})
	require.NoError(t, err)
	require.Equal(t, DefaultBaseURL+RunPath, c.URL())

	_, err = NewHTTPClient(HTTPOptions{BaseURL: "ftp://host"})
	require.ErrorContains(t, err, "http or https")

	_, err = NewHTTPClient(HTTPOptions{BaseURL: "http://"})
	require.ErrorContains(t, err, "no host")

	_, err = NewHTTPClient(HTTPOptions{BaseURL: "http://[::1"})
	require.Error(t, err)
}
