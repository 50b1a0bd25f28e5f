package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/zheye/internal/client/guard"
	"github.com/dmitrijs2005/zheye/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, logs in and loads the session user.
func (a *App) Login(ctx context.Context) error {
	if !a.navigate(ctx, guard.RouteLogin) {
		return nil
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	u, err := a.auth.LoginAndFetch(ctx, email, string(password))
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.NickName)
	return a.Home(ctx)
}

// Register creates an account. The user logs in afterwards.
func (a *App) Register(ctx context.Context) error {
	if !a.navigate(ctx, guard.RouteSignup) {
		return nil
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	nick, err := getSimpleText(a.reader, "Enter nickname", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	in := models.RegisterInput{Email: email, NickName: nick, Password: string(password)}
	if _, err := a.auth.Register(ctx, in); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Registered. Type 'login' to sign in.")
	return nil
}

// Logout forgets the stored token and the session user.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Whoami prints the session user.
func (a *App) Whoami(ctx context.Context) error {
	u := a.store.User()
	if !u.IsLogin {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", u.NickName, u.Email)
	if u.Column != "" {
		fmt.Fprintln(a.out, "Column:", u.Column)
	}
	// opaque tokens carry no readable expiry
	if c, err := a.holder.Claims(); err == nil && !c.ExpiresAt.IsZero() {
		fmt.Fprintln(a.out, "Session expires:", c.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}
