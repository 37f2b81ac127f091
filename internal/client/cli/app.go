package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manuelmariscal/coursera/internal/client/client"
	"github.com/manuelmariscal/coursera/internal/client/config"
	"github.com/manuelmariscal/coursera/internal/client/diagnostics"
	"github.com/manuelmariscal/coursera/internal/client/photos"
	"github.com/manuelmariscal/coursera/internal/client/services"
	"github.com/manuelmariscal/coursera/internal/client/session"
	"github.com/manuelmariscal/coursera/internal/common"
	"github.com/manuelmariscal/coursera/internal/logging"
)

// Deps are the collaborators an App runs on.
type Deps struct {
	Config  *config.Config
	API     client.Client
	Auth    services.AuthService
	Records *services.RecordsService
	Diag    *diagnostics.Service
	Photos  photos.Source
	Logger  logging.Logger
	In      io.Reader
	Out     io.Writer
}

type App struct {
	config    *config.Config
	api       client.Client
	auth      services.AuthService
	records   *services.RecordsService
	diag      *diagnostics.Service
	photos    photos.Source
	logger    logging.Logger
	reader    *bufio.Reader
	out       io.Writer
	countdown *Countdown
}

func NewApp(d Deps) *App {
	return &App{
		config:    d.Config,
		api:       d.API,
		auth:      d.Auth,
		records:   d.Records,
		diag:      d.Diag,
		photos:    d.Photos,
		logger:    d.Logger.With("component", "cli"),
		reader:    bufio.NewReader(d.In),
		out:       d.Out,
		countdown: NewCountdown(nil),
	}
}

// Run restores the session and blocks in the REPL until the user exits or
// input ends.
func (a *App) Run(ctx context.Context) error {
	updates, cancel := a.auth.Session().Subscribe()
	from := a.snapshot().Status
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.watchSession(ctx, from, updates)
	}()
	defer func() {
		cancel()
		<-done
	}()

	if err := a.auth.Initialize(ctx); err != nil && !errors.Is(err, services.ErrAlreadyInitialized) {
		return err
	}
	defer a.countdown.Dismiss()

	fmt.Fprintf(a.out, "MotoSegura CLI, backend %s (type 'help' for commands)\n", a.api.BaseURL())
	if snap := a.snapshot(); snap.User != nil {
		fmt.Fprintf(a.out, "Welcome back, %s\n", displayName(*snap.User))
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

// watchSession logs every session status change until updates is closed.
func (a *App) watchSession(ctx context.Context, from session.Status, updates <-chan session.Snapshot) {
	for snap := range updates {
		if snap.Status == from {
			continue
		}
		user := ""
		if snap.User != nil {
			user = snap.User.Username
		}
		a.logger.Info(ctx, "session changed", "from", from.String(), "to", snap.Status.String(), "user", user)
		from = snap.Status
	}
}

func (a *App) snapshot() session.Snapshot {
	return a.auth.Session().Snapshot()
}

// status renders the prompt prefix: who is signed in and any rate-limit
// wait still running.
func (a *App) status() string {
	snap := a.snapshot()

	var parts []string
	switch {
	case snap.Status == session.Validating:
		parts = append(parts, "validating")
	case snap.User != nil:
		name := snap.User.Username
		if snap.IsAdmin() {
			name += "*"
		}
		parts = append(parts, name)
	default:
		parts = append(parts, "guest")
	}

	if n := a.countdown.Remaining(); n > 0 {
		parts = append(parts, fmt.Sprintf("wait %ds", n))
	}
	return strings.Join(parts, " ")
}

// report prints a failed command's error. Rate-limit errors start the
// countdown.
func (a *App) report(ctx context.Context, err error) {
	a.logger.Debug(ctx, "command failed", "error", err)

	switch {
	case errors.Is(err, services.ErrSuperseded):
		return
	case errors.Is(err, client.ErrRateLimited):
		secs, _ := client.RetryAfterOf(err)
		a.countdown.Start(secs)
		fmt.Fprintf(a.out, "Too many requests. Try again in %d seconds ('dismiss' hides the timer).\n", secs)
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintf(a.out, "Backend unreachable at %s: %v\n", a.api.BaseURL(), err)
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintf(a.out, "Not authorized: %v\n", err)
	case errors.Is(err, client.ErrNotFound):
		fmt.Fprintf(a.out, "Not found: %v\n", err)
	case errors.Is(err, common.ErrInvalidInput), errors.Is(err, errUsage):
		fmt.Fprintln(a.out, err)
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}

// deleteCredential returns the configured API key, or prompts for one
// without echo.
func (a *App) deleteCredential() (string, error) {
	if a.config != nil && a.config.APIKey != "" {
		return a.config.APIKey, nil
	}

	key, err := getSecret(a.out, "Enter delete key: ")
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(key)
	return strings.TrimSpace(string(key)), nil
}

var errUsage = errors.New("usage")

func usage(format string) error {
	return fmt.Errorf("%w: %s", errUsage, format)
}
