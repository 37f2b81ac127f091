package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/manuelmariscal/coursera/internal/client/diagnostics"
)

// Status prints the backend health.
func (a *App) Status(ctx context.Context, _ []string) error {
	status, base, err := a.diag.BackendStatus(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Backend %s: %s\n", base, status)
	return nil
}

// Diag checks the connection and runs the diagnostic tests.
func (a *App) Diag(ctx context.Context, _ []string) error {
	rep := a.diag.CheckConnection(ctx)

	fmt.Fprintf(a.out, "Backend:  %s\n", rep.BaseURL)
	fmt.Fprintf(a.out, "Mobile:   %t\n", rep.Mobile)
	if rep.State == diagnostics.StateConnected {
		fmt.Fprintf(a.out, "Connection: %s (%s)\n", rep.State, rep.Method)
		if len(rep.APIResponse) > 0 {
			fmt.Fprintf(a.out, "Response: %s\n", formatMap(rep.APIResponse))
		}
	} else {
		fmt.Fprintf(a.out, "Connection: %s: %v\n", rep.State, rep.Err)
	}

	tw := newTable(a.out, "TEST", "RESULT", "TIME", "DETAILS")
	for _, r := range a.diag.RunTests(ctx) {
		result, details := "ok", r.Details
		if !r.OK {
			result, details = "FAILED", r.Err.Error()
		}
		tw.row(r.Name, result, r.Duration.Round(time.Millisecond), details)
	}
	tw.flush()
	return nil
}

// Dismiss hides the rate-limit countdown.
func (a *App) Dismiss(_ context.Context, _ []string) error {
	a.countdown.Dismiss()
	return nil
}

func formatMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, m[k])
	}
	return strings.Join(parts, " ")
}
