// Package guard decides, before every navigation, whether the target route
// may be shown and silently restores a session from a stored token.
package guard

import (
	"context"

	"github.com/dmitrijs2005/zheye/internal/client/models"
	"github.com/dmitrijs2005/zheye/internal/logging"
)

type Action int

const (
	Proceed Action = iota
	Redirect
)

func (a Action) String() string {
	if a == Redirect {
		return "redirect"
	}
	return "proceed"
}

// Decision is the outcome of a navigation check. Target is set for Redirect.
type Decision struct {
	Action Action
	Target string
}

// Session is the session slice of the entity cache.
type Session interface {
	IsLogin() bool
	ResetUser()
}

// Credentials is the credential holder.
type Credentials interface {
	HasToken() bool
	Attach()
	Clear(ctx context.Context) error
}

// UserFetcher loads the session user for the attached token.
type UserFetcher interface {
	FetchCurrentUser(ctx context.Context) (models.User, error)
}

type Guard struct {
	session Session
	creds   Credentials
	fetcher UserFetcher
	logger  logging.Logger
}

func New(session Session, creds Credentials, fetcher UserFetcher, logger logging.Logger) *Guard {
	return &Guard{session: session, creds: creds, fetcher: fetcher, logger: logger}
}

// Before runs the guard for a navigation to the given route. It blocks while
// a silent session refresh is in flight.
func (g *Guard) Before(ctx context.Context, to Route) Decision {
	switch {
	case g.session.IsLogin():
		if to.RedirectAlreadyLogin {
			return Decision{Action: Redirect, Target: RouteHome}
		}
		return Decision{Action: Proceed}

	case g.creds.HasToken():
		g.creds.Attach()
		if _, err := g.fetcher.FetchCurrentUser(ctx); err != nil {
			g.logger.Warn(ctx, "session refresh failed", "route", to.Name, "error", err)
			if err := g.creds.Clear(ctx); err != nil {
				g.logger.Error(ctx, "failed to clear stored token", "error", err)
			}
			g.session.ResetUser()
			return Decision{Action: Redirect, Target: RouteLogin}
		}
		g.logger.Debug(ctx, "session restored", "route", to.Name)
		if to.RedirectAlreadyLogin {
			return Decision{Action: Redirect, Target: RouteHome}
		}
		return Decision{Action: Proceed}

	default:
		if to.RequiredLogin {
			return Decision{Action: Redirect, Target: RouteLogin}
		}
		return Decision{Action: Proceed}
	}
}
