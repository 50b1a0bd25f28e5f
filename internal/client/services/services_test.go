package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/zheye/internal/client/orchestrator"
	"github.com/dmitrijs2005/zheye/internal/client/store"
	"github.com/dmitrijs2005/zheye/internal/client/transport"
	"github.com/dmitrijs2005/zheye/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a canned column API keyed by "METHOD path".
type fakeAPI struct {
	mu      sync.Mutex
	replies map[string]reply
	hits    map[string]int
	queries map[string]string
	bodies  map[string][]byte
}

type reply struct {
	status int
	body   string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{
		replies: map[string]reply{},
		hits:    map[string]int{},
		queries: map[string]string{},
		bodies:  map[string][]byte{},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api/")
		body, _ := io.ReadAll(r.Body)

		f.mu.Lock()
		f.hits[key]++
		f.queries[key] = r.URL.RawQuery
		f.bodies[key] = body
		rep, ok := f.replies[key]
		f.mu.Unlock()

		if !ok {
			rep = reply{status: http.StatusNotFound, body: `{"error":"no route ` + key + `"}`}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rep.status)
		_, _ = io.WriteString(w, rep.body)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) on(key string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[key] = reply{status: status, body: body}
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

func (f *fakeAPI) query(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[key]
}

func (f *fakeAPI) jsonBody(t *testing.T, key string) map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	var m map[string]any
	require.NoError(t, json.Unmarshal(f.bodies[key], &m))
	return m
}

// fakeTokens records what the auth service hands to the credential holder.
type fakeTokens struct {
	token    string
	setErr   error
	clearErr error
	cleared  int
}

func (f *fakeTokens) Set(ctx context.Context, token string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.token = token
	return nil
}

func (f *fakeTokens) Clear(ctx context.Context) error {
	f.cleared++
	f.token = ""
	return f.clearErr
}

type fixture struct {
	api     *fakeAPI
	orch    *orchestrator.Orchestrator
	store   *store.Store
	tokens  *fakeTokens
	content ContentService
	auth    AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api, srv := newFakeAPI(t)

	tr, err := transport.NewHTTPTransport(transport.Config{BaseURL: srv.URL + "/api/"})
	require.NoError(t, err)

	logger := logging.NewNopLogger()
	orch := orchestrator.New(tr, logger, orchestrator.WithLoadingDelay(0))
	t.Cleanup(orch.Close)

	s := store.New()
	tokens := &fakeTokens{}
	return &fixture{
		api:     api,
		orch:    orch,
		store:   s,
		tokens:  tokens,
		content: NewContentService(orch, s, logger, 5),
		auth:    NewAuthService(orch, s, tokens, logger),
	}
}
