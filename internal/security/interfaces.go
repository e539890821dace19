package security

import (
	"context"

	"github.com/lanaseq/lanaseq/models"
)

// UserDetailsService loads the authentication snapshot of an account.
type UserDetailsService interface {
	// Load builds the authentication for the account with the given email,
	// deriving its authorities from the account flags.
	// Returns ErrUserNotFound when the email matches no account.
	Load(ctx context.Context, email string) (*Authentication, error)
}

// Authenticator validates sign-in credentials and maintains the per-account
// lockout bookkeeping.
type Authenticator interface {
	// Authenticate validates the email/password pair and returns the
	// matching account on success. Failures are reported as
	// ErrBadCredentials, ErrAccountDisabled or ErrAccountLocked; every
	// outcome that touches the lockout counters is persisted before the
	// method returns.
	Authenticate(ctx context.Context, email, password string) (models.User, error)
}

// PermissionEvaluator answers permission checks on domain entities.
// Checks never fail with an error: any entity kind or identifier the
// evaluator does not recognize simply reports no permission.
type PermissionEvaluator interface {
	// Has reports whether the principal holds the permission on the given
	// entity. Unsupported entity kinds report false.
	Has(ctx context.Context, authentication *Authentication, subject any, permission models.Permission) bool

	// HasAll reports whether the principal holds the permission on every
	// entity in the collection. An empty or nil collection reports true.
	HasAll(ctx context.Context, authentication *Authentication, subjects []any, permission models.Permission) bool

	// HasByID loads the entity of the given kind by identifier and reports
	// whether the principal holds the permission on it. Unknown kinds,
	// non-numeric identifiers and missing entities report false.
	HasByID(ctx context.Context, authentication *Authentication, id any, kind string, permission models.Permission) bool
}

// SwitchUserService lets an administrator temporarily act as another user
// and return to their own identity afterwards.
type SwitchUserService interface {
	// SwitchUser replaces the session's authentication with one for the
	// target account, saving the current authentication for ExitSwitchUser.
	// Only administrators may switch, never to another administrator, and
	// never while already switched.
	SwitchUser(ctx context.Context, session *Session, target models.User) error

	// ExitSwitchUser restores the authentication that was active before
	// SwitchUser. Returns ErrCredentialsNotFound when the session holds no
	// saved authentication.
	ExitSwitchUser(ctx context.Context, session *Session) error
}

// AuthorizationService is the single façade the rest of the application
// uses to interrogate the current principal: identity, roles, per-entity
// permissions and endpoint policies.
type AuthorizationService interface {
	// User returns the account of the current principal.
	// Returns ErrUserNotFound for anonymous sessions and for principals
	// whose account has since disappeared.
	User(ctx context.Context, session *Session) (models.User, error)

	// IsAnonymous reports whether no principal is attached to the session.
	IsAnonymous(session *Session) bool

	// HasRole reports whether the current principal holds the role.
	HasRole(session *Session, role string) bool

	// HasAnyRole reports whether the current principal holds at least one
	// of the roles.
	HasAnyRole(session *Session, roles ...string) bool

	// HasAllRoles reports whether the current principal holds every one of
	// the roles.
	HasAllRoles(session *Session, roles ...string) bool

	// HasPermission reports whether the current principal holds the
	// permission on the given entity.
	HasPermission(ctx context.Context, session *Session, subject any, permission models.Permission) bool

	// IsAuthorized reports whether the current principal may reach the
	// named endpoint policy. Policies without a registered role
	// requirement are open to everyone.
	IsAuthorized(session *Session, policy string) bool

	// ReloadAuthorities re-derives the principal's authorities from the
	// current account flags and replaces the session authentication when
	// they changed. When nothing changed the existing authentication is
	// returned untouched.
	ReloadAuthorities(ctx context.Context, session *Session) (*Authentication, error)
}
