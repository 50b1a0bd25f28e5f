package credentials

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/zheye/internal/common"
	"github.com/dmitrijs2005/zheye/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory metadata.Repository.
type memRepo struct {
	values    map[string]string
	getErr    error
	setErr    error
	deleteErr error
}

func newMemRepo() *memRepo { return &memRepo{values: map[string]string{}} }

func (m *memRepo) Get(ctx context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memRepo) Set(ctx context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memRepo) Delete(ctx context.Context, key string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.values, key)
	return nil
}

type headerMap map[string]string

func (h headerMap) SetHeader(k, v string) { h[k] = v }
func (h headerMap) DelHeader(k string)    { delete(h, k) }

func newHolder(t *testing.T) (*Holder, *memRepo, headerMap) {
	t.Helper()
	repo := newMemRepo()
	headers := headerMap{}
	return NewHolder(repo, headers, logging.NewNopLogger()), repo, headers
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestLoad_AbsentKeyMeansNoSession(t *testing.T) {
	h, _, headers := newHolder(t)

	require.NoError(t, h.Load(context.Background()))
	assert.Empty(t, h.Token())
	assert.False(t, h.HasToken())
	assert.Empty(t, headers)
}

func TestLoad_ReadsStoredTokenWithoutAttaching(t *testing.T) {
	h, repo, headers := newHolder(t)
	repo.values[common.TokenStorageKey] = "stored"

	require.NoError(t, h.Load(context.Background()))
	assert.Equal(t, "stored", h.Token())
	assert.Empty(t, headers, "attaching is the guard's call")

	h.Attach()
	assert.Equal(t, "Bearer stored", headers[common.AuthorizationHeaderName])
}

func TestLoad_StorageError(t *testing.T) {
	h, repo, _ := newHolder(t)
	repo.getErr = errors.New("disk")

	require.ErrorContains(t, h.Load(context.Background()), "load token")
}

func TestSet_PersistsAndAttaches(t *testing.T) {
	h, repo, headers := newHolder(t)

	require.NoError(t, h.Set(context.Background(), "abc"))
	assert.Equal(t, "abc", h.Token())
	assert.Equal(t, "abc", repo.values[common.TokenStorageKey])
	assert.Equal(t, "Bearer abc", headers[common.AuthorizationHeaderName])
}

func TestSet_StorageErrorLeavesStateUntouched(t *testing.T) {
	h, repo, headers := newHolder(t)
	repo.setErr = errors.New("disk full")

	require.Error(t, h.Set(context.Background(), "abc"))
	assert.Empty(t, h.Token())
	assert.Empty(t, headers)
}

func TestSet_EmptyTokenClears(t *testing.T) {
	h, repo, headers := newHolder(t)
	ctx := context.Background()
	require.NoError(t, h.Set(ctx, "abc"))

	require.NoError(t, h.Set(ctx, ""))
	assert.False(t, h.HasToken())
	assert.NotContains(t, repo.values, common.TokenStorageKey)
	assert.NotContains(t, headers, common.AuthorizationHeaderName)
}

func TestClear_RemovesEverything(t *testing.T) {
	h, repo, headers := newHolder(t)
	ctx := context.Background()
	require.NoError(t, h.Set(ctx, "abc"))

	require.NoError(t, h.Clear(ctx))
	assert.Empty(t, h.Token())
	assert.NotContains(t, repo.values, common.TokenStorageKey)
	assert.NotContains(t, headers, common.AuthorizationHeaderName)
}

func TestClear_StorageErrorStillDropsSession(t *testing.T) {
	h, repo, headers := newHolder(t)
	ctx := context.Background()
	require.NoError(t, h.Set(ctx, "abc"))
	repo.deleteErr = errors.New("locked")

	require.Error(t, h.Clear(ctx))
	assert.Empty(t, h.Token())
	assert.NotContains(t, headers, common.AuthorizationHeaderName)
}

func TestAttach_WithoutTokenRemovesHeader(t *testing.T) {
	h, _, headers := newHolder(t)
	headers[common.AuthorizationHeaderName] = "Bearer stale"

	h.Attach()
	assert.NotContains(t, headers, common.AuthorizationHeaderName)
}

func TestClaims(t *testing.T) {
	h, _, _ := newHolder(t)
	ctx := context.Background()

	_, err := h.Claims()
	require.ErrorIs(t, err, common.ErrInvalidToken)

	require.NoError(t, h.Set(ctx, "opaque-token"))
	_, err = h.Claims()
	require.ErrorIs(t, err, common.ErrInvalidToken)

	exp := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, h.Set(ctx, signed(t, jwt.MapClaims{"sub": "u1", "exp": exp.Unix()})))
	c, err := h.Claims()
	require.NoError(t, err)
	assert.Equal(t, "u1", c.Subject)
	assert.True(t, c.ExpiresAt.Equal(exp))
	assert.True(t, c.Expired(time.Now()))
}

func TestClaims_NoExpiryNeverExpires(t *testing.T) {
	c, err := parseClaims(signed(t, jwt.MapClaims{"sub": "u1"}))
	require.NoError(t, err)
	assert.False(t, c.Expired(time.Now()))
}
