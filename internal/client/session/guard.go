package session

// Decision is the outcome of a route guard.
type Decision int

const (
	Allow Decision = iota
	Loading
	RedirectLogin
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Loading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}

// RequireAuth admits any signed-in user. Guards only shape the UI; the
// backend stays the authority on access.
func RequireAuth(s Snapshot) Decision {
	switch {
	case s.Loading || s.Status == Uninitialized || s.Status == Validating:
		return Loading
	case s.User == nil:
		return RedirectLogin
	default:
		return Allow
	}
}

// RequireAdmin admits signed-in admins and sends other users home.
func RequireAdmin(s Snapshot) Decision {
	if d := RequireAuth(s); d != Allow {
		return d
	}
	if !s.IsAdmin() {
		return RedirectHome
	}
	return Allow
}
