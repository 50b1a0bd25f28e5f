package guard_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/zheye/internal/client/client"
	"github.com/dmitrijs2005/zheye/internal/client/credentials"
	"github.com/dmitrijs2005/zheye/internal/client/guard"
	"github.com/dmitrijs2005/zheye/internal/client/orchestrator"
	"github.com/dmitrijs2005/zheye/internal/client/services"
	"github.com/dmitrijs2005/zheye/internal/client/store"
	"github.com/dmitrijs2005/zheye/internal/client/transport"
	"github.com/dmitrijs2005/zheye/internal/common"
	"github.com/dmitrijs2005/zheye/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stack struct {
	repos     *client.Repositories
	transport *transport.HTTPTransport
	holder    *credentials.Holder
	store     *store.Store
	guard     *guard.Guard

	mu    sync.Mutex
	authz []string
}

// seen returns the Authorization headers the server received so far.
func (st *stack) seen() []string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return append([]string(nil), st.authz...)
}

// newStack wires the real session pieces against a server that accepts only
// the token "good".
func newStack(t *testing.T, storedToken string) *stack {
	t.Helper()
	ctx := context.Background()
	st := &stack{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st.mu.Lock()
		st.authz = append(st.authz, r.Header.Get(common.AuthorizationHeaderName))
		st.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get(common.AuthorizationHeaderName) != common.BearerPrefix+"good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":"token expired"}`)
			return
		}
		_, _ = io.WriteString(w, `{"code":0,"msg":"ok","data":{"_id":"u1","nickName":"ann"}}`)
	}))
	t.Cleanup(srv.Close)

	repos, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "zheye.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	if storedToken != "" {
		require.NoError(t, repos.Metadata.Set(ctx, common.TokenStorageKey, storedToken))
	}

	tr, err := transport.NewHTTPTransport(transport.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	logger := logging.NewNopLogger()
	holder := credentials.NewHolder(repos.Metadata, tr, logger)
	require.NoError(t, holder.Load(ctx))

	orch := orchestrator.New(tr, logger, orchestrator.WithLoadingDelay(0))
	t.Cleanup(orch.Close)

	s := store.New()
	auth := services.NewAuthService(orch, s, holder, logger)

	st.repos = repos
	st.transport = tr
	st.holder = holder
	st.store = s
	st.guard = guard.New(s, holder, auth, logger)
	return st
}

func TestGuard_SilentRefreshWithStoredToken(t *testing.T) {
	st := newStack(t, "good")
	login, _ := guard.DefaultRoutes().Lookup(guard.RouteLogin)

	d := st.guard.Before(context.Background(), login)

	assert.Equal(t, guard.Decision{Action: guard.Redirect, Target: guard.RouteHome}, d)
	assert.True(t, st.store.IsLogin())
	assert.Equal(t, "ann", st.store.User().NickName)
	assert.Equal(t, []string{"Bearer good"}, st.seen())
}

func TestGuard_ExpiredTokenIsWipedEverywhere(t *testing.T) {
	ctx := context.Background()
	st := newStack(t, "stale")
	home, _ := guard.DefaultRoutes().Lookup(guard.RouteHome)

	d := st.guard.Before(ctx, home)

	assert.Equal(t, guard.Decision{Action: guard.Redirect, Target: guard.RouteLogin}, d)
	assert.False(t, st.holder.HasToken())
	assert.Empty(t, st.transport.Header(common.AuthorizationHeaderName))

	_, found, err := st.repos.Metadata.Get(ctx, common.TokenStorageKey)
	require.NoError(t, err)
	assert.False(t, found, "durable token removed")

	// Next navigation sees a clean logged-out state and makes no call.
	post, _ := guard.DefaultRoutes().Lookup(guard.RoutePost)
	assert.Equal(t, guard.Decision{Action: guard.Proceed}, st.guard.Before(ctx, post))
	assert.Len(t, st.seen(), 1)
}

func TestGuard_NoStoredTokenNeverCallsServer(t *testing.T) {
	st := newStack(t, "")
	create, _ := guard.DefaultRoutes().Lookup(guard.RouteCreate)

	d := st.guard.Before(context.Background(), create)

	assert.Equal(t, guard.Decision{Action: guard.Redirect, Target: guard.RouteLogin}, d)
	assert.Empty(t, st.seen())
}
