// Package security implements authentication and authorization for the
// application: credential validation with progressive lockout, user-details
// loading, role checks, per-entity permission evaluation and administrator
// user switching. All state that outlives a single request lives in the
// session store; nothing in this package relies on process-global state.
package security

// Authentication is a snapshot of a signed-in principal: who they are and
// which authorities they hold. Instances are treated as immutable once
// attached to a session; changing authorities produces a new value.
type Authentication struct {
	// UserID is the internal identifier of the authenticated account.
	UserID int64

	// Email is the account email the principal signed in with.
	Email string

	// Authorities are the granted authority names, derived from the
	// account flags at sign-in time. See [Authorities].
	Authorities []string

	// Previous holds the authentication that was active before an
	// administrator switched to this principal. It is nil outside user
	// switching and is used both to restore the administrator on exit and
	// to resolve the PREVIOUS_ADMINISTRATOR pseudo-role.
	Previous *Authentication
}

// HasAuthority reports whether the principal directly holds the given
// authority. A nil receiver represents an anonymous principal and holds
// nothing.
func (a *Authentication) HasAuthority(authority string) bool {
	if a == nil {
		return false
	}
	for _, granted := range a.Authorities {
		if granted == authority {
			return true
		}
	}
	return false
}
