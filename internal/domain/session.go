package domain

//go:generate mockgen -source=session.go -destination=mock_session.go -package=domain

import "context"

// LoginState tracks the two-phase login confirmation of a Session.
// The portal answers most logins with 200, so a login is only tentative until
// a schedule request succeeds on the same session.
type LoginState int

const (
	// LoginPending means no login has been attempted yet.
	LoginPending LoginState = iota

	// LoginTentative means the login response showed no failure signal.
	LoginTentative

	// LoginConfirmed means a schedule request succeeded on the session.
	LoginConfirmed

	// LoginRejected means the portal refused the credentials or the session.
	LoginRejected
)

// String returns the state name used in logs.
func (s LoginState) String() string {
	switch s {
	case LoginTentative:
		return "tentative"
	case LoginConfirmed:
		return "confirmed"
	case LoginRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Session is an isolated, cookie-bearing HTTP context scoped to one scrape operation.
// A Session is used by one goroutine and is never shared between operations.
type Session interface {
	// Login submits the credentials. A nil error means tentative success.
	Login(ctx context.Context, creds Credentials) error

	// FetchMonth requests one month's schedule using the session cookies.
	FetchMonth(ctx context.Context, month MonthKey) (RawScheduleResponse, error)

	// State returns the current login state.
	State() LoginState

	// Close discards the cookie store and idle connections.
	Close()
}

// SessionFactory creates a fresh Session for a tenant.
type SessionFactory interface {
	// NewSession returns a Session bound to the tenant's portal subdomain.
	NewSession(tenantCode string) Session
}
