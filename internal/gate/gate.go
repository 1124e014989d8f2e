// Package gate decides what a viewer may see. The decision is a pure
// function of a per-request Viewer snapshot supplied by the auth
// middleware; nothing here touches the network or the database.
package gate

import "errors"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Viewer is a read-only snapshot of the caller's session state for one
// request. It is assembled once at the middleware boundary and never
// mutated afterwards.
type Viewer struct {
	// Pending marks a snapshot whose authentication state has not been
	// resolved yet. A pending snapshot is not the same as an
	// unauthenticated one.
	Pending       bool
	Authenticated bool

	// Two entitlement flags exist because two membership mechanisms were
	// merged; either one alone grants Pro access.
	HasProAccess bool
	HasPro       bool

	Role Role
}

// Entitled reports whether either entitlement flag is set. This is the
// only place the two flags are combined; everything downstream consumes
// the derived value.
func (v *Viewer) Entitled() bool {
	return v != nil && (v.HasProAccess || v.HasPro)
}

// State classifies a request into exactly one rendering outcome.
type State int

const (
	// StateLoading means auth resolution is still in flight; show a
	// neutral waiting indicator, decide nothing yet.
	StateLoading State = iota
	// StateSignInRequired means resolution finished and there is no
	// session. Protected content is withheld entirely.
	StateSignInRequired
	// StateMembershipRequired means a session exists but carries no
	// entitlement. Show the upgrade prompt, withhold content.
	StateMembershipRequired
	// StateGranted means protected content is rendered unchanged.
	StateGranted
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSignInRequired:
		return "sign_in_required"
	case StateMembershipRequired:
		return "membership_required"
	case StateGranted:
		return "granted"
	default:
		return "unknown"
	}
}

// Decide classifies the viewer into one of the four states. It is total:
// every snapshot, including nil, maps to a state. A nil viewer is treated
// exactly like an unauthenticated one.
func Decide(v *Viewer) State {
	switch {
	case v == nil:
		return StateSignInRequired
	case v.Pending:
		return StateLoading
	case !v.Authenticated:
		return StateSignInRequired
	case !v.Entitled():
		return StateMembershipRequired
	default:
		return StateGranted
	}
}

var (
	// ErrUnauthorized: no session at all.
	ErrUnauthorized = errors.New("sign in required")
	// ErrForbidden: a session exists but lacks the required role.
	ErrForbidden = errors.New("insufficient role")
	// ErrMembershipRequired: a session exists but carries no entitlement.
	ErrMembershipRequired = errors.New("membership required")
)

// Predicate is one route-level requirement. Predicates compose via Check
// and are evaluated in the order given, so routes declare auth, then
// role, then entitlement, and each failure keeps its own error.
type Predicate func(*Viewer) error

func RequireAuth() Predicate {
	return func(v *Viewer) error {
		if v == nil || !v.Authenticated {
			return ErrUnauthorized
		}
		return nil
	}
}

// RequireRole gates admin-only routes. It does not consult the
// entitlement flags; role and membership are independent checks.
func RequireRole(role Role) Predicate {
	return func(v *Viewer) error {
		if v.Role != role {
			return ErrForbidden
		}
		return nil
	}
}

func RequireEntitlement() Predicate {
	return func(v *Viewer) error {
		if !v.Entitled() {
			return ErrMembershipRequired
		}
		return nil
	}
}

// Check runs predicates in order and returns the first failure.
// Callers must lead with RequireAuth; the later predicates assume a
// non-nil, authenticated viewer.
func Check(v *Viewer, predicates ...Predicate) error {
	for _, p := range predicates {
		if err := p(v); err != nil {
			return err
		}
	}
	return nil
}
