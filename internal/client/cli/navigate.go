package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/zheye/internal/client/guard"
	"github.com/dmitrijs2005/zheye/internal/common"
)

// navigate runs the guard for the named route. It reports whether the
// caller may render the route; on a redirect the target page is shown
// instead.
func (a *App) navigate(ctx context.Context, name string) bool {
	to, ok := a.routes.Lookup(name)
	if !ok {
		fmt.Fprintln(a.out, "Unknown page:", name)
		return false
	}

	d := a.guard.Before(ctx, to)
	if d.Action == guard.Proceed {
		return true
	}

	a.logger.Debug(ctx, "navigation redirected", "from", to.Name, "to", d.Target)
	switch d.Target {
	case guard.RouteLogin:
		fmt.Fprintln(a.out, "Please log in first (type 'login').")
	case guard.RouteHome:
		_ = a.showColumns(ctx)
	}
	return false
}

// report prints errors the orchestrator did not already announce.
func (a *App) report(err error) error {
	if err != nil && errors.Is(err, common.ErrorValidation) {
		fmt.Fprintln(a.out, "Error:", err)
	}
	return err
}
