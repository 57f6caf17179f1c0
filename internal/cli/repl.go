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
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

// runREPL starts a read-eval-print loop over the account operations.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF, context cancellation, or
// when the user types "exit" or "quit".
//
// List, search, edit, and delete require a logged-in session; the account
// operations themselves are stateless, this gate is purely a front-end
// routing decision.
//
// Errors returned by command handlers are ignored here; handlers render
// their own messages. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("userdb> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist [name|email], search <term>, edit <id>, delete <id>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, reset, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "l", "list":
			if requireLogin(a) {
				_ = a.List(ctx, args)
			}

		case "search":
			if requireLogin(a) {
				_ = a.Search(ctx, args)
			}

		case "edit":
			if requireLogin(a) {
				_ = a.Edit(ctx, args)
			}

		case "delete":
			if requireLogin(a) {
				_ = a.Delete(ctx, args)
			}

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requireLogin(a execIface) bool {
	if !a.isLoggedIn() {
		printlnFn("Log in first.")
		return false
	}
	return true
}
