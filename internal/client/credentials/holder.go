// Package credentials owns the session token: its in-memory value, its
// durable mirror in the metadata store and the Authorization header that
// carries it on outgoing calls.
package credentials

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/zheye/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/zheye/internal/client/transport"
	"github.com/dmitrijs2005/zheye/internal/common"
	"github.com/dmitrijs2005/zheye/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Holder keeps the bearer token. The empty string means "no session".
type Holder struct {
	repo    metadata.Repository
	headers transport.HeaderSetter
	logger  logging.Logger

	mu    sync.RWMutex
	token string
}

func NewHolder(repo metadata.Repository, headers transport.HeaderSetter, logger logging.Logger) *Holder {
	return &Holder{repo: repo, headers: headers, logger: logger}
}

// Load reads the durable token once at start-up. A missing key is the same
// as an empty token. The header is not attached here; see Attach.
func (h *Holder) Load(ctx context.Context) error {
	token, _, err := h.repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}

	h.mu.Lock()
	h.token = token
	h.mu.Unlock()

	if token != "" {
		h.logClaims(ctx, token)
	}
	return nil
}

func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *Holder) HasToken() bool {
	return h.Token() != ""
}

// Set stores token durably and attaches it to future requests.
func (h *Holder) Set(ctx context.Context, token string) error {
	if token == "" {
		return h.Clear(ctx)
	}
	if err := h.repo.Set(ctx, common.TokenStorageKey, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	h.mu.Lock()
	h.token = token
	h.mu.Unlock()

	h.headers.SetHeader(common.AuthorizationHeaderName, common.BearerPrefix+token)
	h.logClaims(ctx, token)
	return nil
}

// Attach (re)applies the Authorization header from the current token, or
// removes it when there is none.
func (h *Holder) Attach() {
	token := h.Token()
	if token == "" {
		h.headers.DelHeader(common.AuthorizationHeaderName)
		return
	}
	h.headers.SetHeader(common.AuthorizationHeaderName, common.BearerPrefix+token)
}

// Clear forgets the token: memory, durable storage and header. The header
// and in-memory value are dropped even when the storage delete fails.
func (h *Holder) Clear(ctx context.Context) error {
	h.mu.Lock()
	h.token = ""
	h.mu.Unlock()

	h.headers.DelHeader(common.AuthorizationHeaderName)

	if err := h.repo.Delete(ctx, common.TokenStorageKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Claims is what can be read from a JWT token without verifying it.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that lies before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}

// Claims decodes the current token's claims without checking the signature;
// the server remains the only authority on validity. Opaque tokens yield
// common.ErrInvalidToken.
func (h *Holder) Claims() (Claims, error) {
	return parseClaims(h.Token())
}

func parseClaims(token string) (Claims, error) {
	if token == "" {
		return Claims{}, common.ErrInvalidToken
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	var c Claims
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		c.Subject = sub
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

func (h *Holder) logClaims(ctx context.Context, token string) {
	c, err := parseClaims(token)
	if err != nil {
		h.logger.Debug(ctx, "session token is opaque")
		return
	}
	if c.Expired(time.Now()) {
		h.logger.Warn(ctx, "session token looks expired", "subject", c.Subject, "expires_at", c.ExpiresAt)
		return
	}
	h.logger.Debug(ctx, "session token loaded", "subject", c.Subject, "expires_at", c.ExpiresAt)
}
