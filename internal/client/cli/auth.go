package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/manuelmariscal/coursera/internal/client/models"
	"github.com/manuelmariscal/coursera/internal/common"
)

// getSimpleText, getPassword and getSecret are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getSecret     = GetSecret
)

// Login prompts for credentials (the username may be passed as argument)
// and signs in. The password is wiped before returning.
func (a *App) Login(ctx context.Context, args []string) error {
	if snap := a.snapshot(); snap.User != nil {
		fmt.Fprintf(a.out, "Already logged in as %s ('logout' first)\n", snap.User.Username)
		return nil
	}

	var (
		username string
		err      error
	)
	if len(args) > 0 {
		username = args[0]
	} else {
		username, err = GetTextDefault(a.reader, "Enter username", a.auth.LastUsername(ctx), a.out)
		if err != nil {
			return err
		}
	}
	if username == "" {
		return usage("login [username]")
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.auth.Login(ctx, username, password); err != nil {
		return err
	}

	u := a.snapshot().User
	fmt.Fprintf(a.out, "Welcome, %s (%s)\n", displayName(*u), u.Role)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	a.auth.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the session user without calling the backend.
func (a *App) WhoAmI(_ context.Context, _ []string) error {
	snap := a.snapshot()
	printUser(a.out, *snap.User)
	if !snap.TokenExpiry.IsZero() {
		fmt.Fprintf(a.out, "Session expires: %s\n", snap.TokenExpiry.Local().Format(time.RFC1123))
	}
	return nil
}

func (a *App) Profile(ctx context.Context, _ []string) error {
	u, err := a.api.GetProfile(ctx)
	if err != nil {
		return err
	}
	printUser(a.out, *u)
	return nil
}

// EditProfile prompts for every editable field, keeping the current value
// on an empty answer.
func (a *App) EditProfile(ctx context.Context, _ []string) error {
	cur, err := a.api.GetProfile(ctx)
	if err != nil {
		return err
	}

	next := *cur
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Name", &next.Name},
		{"Email", &next.Email},
		{"Phone", &next.Phone},
		{"Address", &next.Address},
	}
	for _, f := range fields {
		if *f.dst, err = GetTextDefault(a.reader, f.prompt, *f.dst, a.out); err != nil {
			return err
		}
	}

	updated, err := a.auth.UpdateProfile(ctx, next)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated")
	printUser(a.out, *updated)
	return nil
}

// Dashboard lists the records and motorcycles linked to the current user.
func (a *App) Dashboard(ctx context.Context, _ []string) error {
	records, err := a.api.UserRecords(ctx)
	if err != nil {
		return err
	}
	motos, err := a.api.UserMotorcycles(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "My records (%d)\n", len(records))
	tw := newTable(a.out, "ID", "NAME", "STATUS", "CREATED")
	for _, r := range records {
		tw.row(r.ID, r.Nombre+" "+r.Apellido, r.Status, r.CreatedAt)
	}
	tw.flush()

	fmt.Fprintf(a.out, "My motorcycles (%d)\n", len(motos))
	tw = newTable(a.out, "ID", "PLATE", "MAKE", "MODEL", "YEAR")
	for _, m := range motos {
		tw.row(m.ID, m.Matricula, m.Marca, m.Modelo, m.Anio)
	}
	tw.flush()
	return nil
}

func displayName(u models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
