package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manuelmariscal/coursera/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// commandFn is the shape of every REPL command handler.
type commandFn func(ctx context.Context, args []string) error

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	snapshot() session.Snapshot
	report(ctx context.Context, err error)

	Status(ctx context.Context, args []string) error
	Diag(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Dismiss(ctx context.Context, args []string) error

	Fichas(ctx context.Context, args []string) error
	Ficha(ctx context.Context, args []string) error
	QR(ctx context.Context, args []string) error
	NewFicha(ctx context.Context, args []string) error
	Photo(ctx context.Context, args []string) error
	Motos(ctx context.Context, args []string) error

	Profile(ctx context.Context, args []string) error
	EditProfile(ctx context.Context, args []string) error
	Dashboard(ctx context.Context, args []string) error
	NewMoto(ctx context.Context, args []string) error
	EditMoto(ctx context.Context, args []string) error

	DelFicha(ctx context.Context, args []string) error
	BulkDel(ctx context.Context, args []string) error
	DelMoto(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
}

const (
	helpPublic = "Commands: help, status, diag, login, fichas [term], ficha <id>, qr <id> [file], " +
		"newficha, photo <id> <path|s3://bucket/key>, motos [term], dismiss, exit"
	helpUser  = "Signed in: whoami, profile, editprofile, dashboard, newmoto, editmoto <id>, logout"
	helpAdmin = "Admin: delficha <id>, bulkdel <id...>, delmoto <id>, export <file.xlsx>"
)

// runREPL starts a simple read–eval–print loop for the MotoSegura CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Unknown commands are reported back to the user. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// Commands are grouped by access:
//
//	Anyone:
//	  - help, status, diag, login, dismiss, exit | quit
//	  - fichas [term], ficha <id>, qr <id> [file], newficha, photo <id> <ref>, motos [term]
//
//	Signed in (session.RequireAuth):
//	  - whoami, logout, profile, editprofile, dashboard, newmoto, editmoto <id>
//
//	Administrators (session.RequireAdmin):
//	  - delficha <id>, bulkdel <id...>, delmoto <id>, export <file>
//
// Handler errors are passed to a.report, which keeps the loop running.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("ms (%s)> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var fn commandFn
		guard := publicCommand

		switch cmd {
		case "help":
			printlnFn(helpPublic)
			if snap := a.snapshot(); snap.User != nil {
				printlnFn(helpUser)
				if snap.IsAdmin() {
					printlnFn(helpAdmin)
				}
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "status":
			fn = a.Status
		case "diag":
			fn = a.Diag
		case "login":
			fn = a.Login
		case "dismiss":
			fn = a.Dismiss
		case "fichas", "l", "list":
			fn = a.Fichas
		case "ficha":
			fn = a.Ficha
		case "qr":
			fn = a.QR
		case "newficha":
			fn = a.NewFicha
		case "photo":
			fn = a.Photo
		case "motos":
			fn = a.Motos

		case "logout":
			fn, guard = a.Logout, session.RequireAuth
		case "whoami":
			fn, guard = a.WhoAmI, session.RequireAuth
		case "profile":
			fn, guard = a.Profile, session.RequireAuth
		case "editprofile":
			fn, guard = a.EditProfile, session.RequireAuth
		case "dashboard":
			fn, guard = a.Dashboard, session.RequireAuth
		case "newmoto":
			fn, guard = a.NewMoto, session.RequireAuth
		case "editmoto":
			fn, guard = a.EditMoto, session.RequireAuth

		case "delficha":
			fn, guard = a.DelFicha, session.RequireAdmin
		case "bulkdel":
			fn, guard = a.BulkDel, session.RequireAdmin
		case "delmoto":
			fn, guard = a.DelMoto, session.RequireAdmin
		case "export":
			fn, guard = a.Export, session.RequireAdmin

		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		if !admitted(guard(a.snapshot())) {
			continue
		}
		if err := fn(ctx, args); err != nil {
			a.report(ctx, err)
		}
	}
}

func publicCommand(session.Snapshot) session.Decision {
	return session.Allow
}

// admitted prints why a guarded command was refused.
func admitted(d session.Decision) bool {
	switch d {
	case session.Allow:
		return true
	case session.Loading:
		printlnFn("Session is still being validated, try again in a moment.")
	case session.RedirectLogin:
		printlnFn("Please log in first (type 'login').")
	case session.RedirectHome:
		printlnFn("This command requires an administrator.")
	}
	return false
}
