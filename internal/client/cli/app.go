package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/zheye/internal/client/client"
	"github.com/dmitrijs2005/zheye/internal/client/config"
	"github.com/dmitrijs2005/zheye/internal/client/credentials"
	"github.com/dmitrijs2005/zheye/internal/client/guard"
	"github.com/dmitrijs2005/zheye/internal/client/models"
	"github.com/dmitrijs2005/zheye/internal/client/orchestrator"
	"github.com/dmitrijs2005/zheye/internal/client/pager"
	"github.com/dmitrijs2005/zheye/internal/client/services"
	"github.com/dmitrijs2005/zheye/internal/client/store"
	"github.com/dmitrijs2005/zheye/internal/client/transport"
	"github.com/dmitrijs2005/zheye/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   *client.Repositories
	orch    *orchestrator.Orchestrator
	store   *store.Store
	holder  *credentials.Holder
	auth    services.AuthService
	content services.ContentService
	guard   *guard.Guard
	routes  guard.Routes
	more    *pager.LoadMore

	reader      *bufio.Reader
	out         io.Writer
	unsubscribe func()

	mu    sync.Mutex
	shown models.ErrorRecord
}

// NewApp opens local storage, restores the stored token and wires the
// client stack. The caller must Close the app.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repos, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	tr, err := transport.NewHTTPTransport(transport.Config{BaseURL: c.BaseURL, Timeout: c.RequestTimeout})
	if err != nil {
		_ = repos.Close()
		return nil, err
	}
	tr.Use(transport.ICodeInterceptor(c.ICode))
	tr.Observe(transport.LoggingObserver(logger))

	holder := credentials.NewHolder(repos.Metadata, tr, logger)
	if err := holder.Load(ctx); err != nil {
		_ = repos.Close()
		return nil, err
	}

	orch := orchestrator.New(tr, logger, orchestrator.WithLoadingDelay(c.LoadingDelay))
	s := store.New()
	auth := services.NewAuthService(orch, s, holder, logger)
	content := services.NewContentService(orch, s, logger, c.PageSize)

	a := &App{
		config:  c,
		logger:  logger,
		repos:   repos,
		orch:    orch,
		store:   s,
		holder:  holder,
		auth:    auth,
		content: content,
		guard:   guard.New(s, holder, auth, logger),
		routes:  guard.DefaultRoutes(),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
	a.more = pager.New(a.content.FetchColumns, 0, c.PageSize)
	a.unsubscribe = orch.Subscribe(a.notify)
	return a, nil
}

// notify renders the transient error notification once per failure. Only
// begin and fail change the error record and both run on the caller's
// goroutine, so loading-only updates from the trailing timer print nothing.
func (a *App) notify(s orchestrator.State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if s.Error == a.shown {
		return
	}
	a.shown = s.Error
	if s.Error.Status {
		fmt.Fprintf(a.out, "! %s\n", s.Error.Message)
	}
}

// handleError ends the session when the server rejects the token of a
// logged-in user. Other errors were already shown.
func (a *App) handleError(ctx context.Context, err error) {
	if err == nil || !transport.IsUnauthorized(err) || !a.store.IsLogin() {
		return
	}
	a.logger.Info(ctx, "token rejected, logging out", "error", err)
	if err := a.auth.Logout(ctx); err != nil {
		a.logger.Error(ctx, "error clearing token", "error", err)
	}
	fmt.Fprintln(a.out, "Session expired. Please log in again.")
}

func (a *App) isLoggedIn() bool {
	return a.store.IsLogin()
}

func (a *App) status() string {
	if u := a.store.User(); u.IsLogin {
		return fmt.Sprintf("(%s)", u.NickName)
	}
	return ""
}

// Run shows the home page and then serves commands until the user quits or
// input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to zheye columns (type 'help' for commands)")
	_ = a.Home(ctx)
	runREPL(ctx, a, a.status, a.reader)
}

// Close stops pending timers and releases local storage.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.orch.Close()
	return a.repos.Close()
}
