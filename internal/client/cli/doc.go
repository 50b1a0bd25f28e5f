// Package cli provides the interactive column client.
//
// It wires configuration, the sqlite token store, the HTTP transport, the
// request orchestrator, the entity cache and the auth guard, then runs a
// REPL. Every command is a navigation to a named route: the guard runs
// first and may silently restore the session from a stored token or send
// the user to the login or home page instead.
//
// Commands:
//   - home / more     columns, first page and load-more
//   - column <id>     one column and its posts
//   - post <id>       a post with its full content
//   - login / register / logout / whoami
//   - create / edit <id> / delete <id>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
