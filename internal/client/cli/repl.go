package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Home(ctx context.Context) error
	More(ctx context.Context) error
	Column(ctx context.Context, id string) error
	Post(ctx context.Context, id string) error
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Create(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	handleError(ctx context.Context, err error)
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Request failures are already shown through the error notification and
// handlers print their own usage and validation messages; the returned error
// only goes to handleError, which ends a session the server rejected.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("zheye %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		var cmdErr error
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: home, more, column <id>, post <id>, create, edit <id>, delete <id>, whoami, logout, exit")
			} else {
				printlnFn("Available commands: home, more, column <id>, post <id>, login, register, exit")
			}

		case "home", "h":
			cmdErr = a.Home(ctx)

		case "more", "m":
			cmdErr = a.More(ctx)

		case "column", "c":
			cmdErr = a.Column(ctx, arg)

		case "post", "p":
			cmdErr = a.Post(ctx, arg)

		case "login":
			cmdErr = a.Login(ctx)

		case "register", "signup":
			cmdErr = a.Register(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.Whoami(ctx)

		case "create":
			cmdErr = a.Create(ctx)

		case "edit":
			cmdErr = a.Edit(ctx, arg)

		case "delete":
			cmdErr = a.Delete(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
		a.handleError(ctx, cmdErr)

		if err != nil {
			return
		}
	}
}
