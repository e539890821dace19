package security

import "errors"

var (
	// ErrBadCredentials is returned when the presented email or password is
	// wrong, including when no account exists for the email. The two cases
	// are deliberately indistinguishable to the caller.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrAccountDisabled is returned when the account exists but its active
	// flag is cleared. Disabled accounts never have their lockout counters
	// touched.
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrAccountLocked is returned when the account accumulated too many
	// recent failed sign-in attempts. The lock expires on its own once the
	// lock duration has elapsed since the last attempt.
	ErrAccountLocked = errors.New("account is temporarily locked")

	// ErrAccessDenied is returned when the current principal lacks the role
	// required for the attempted operation.
	ErrAccessDenied = errors.New("access denied")

	// ErrCredentialsNotFound is returned when exiting user switching while
	// no pre-switch authentication is saved on the session.
	ErrCredentialsNotFound = errors.New("no previous authentication found")

	// ErrUserNotFound is returned when loading user details for an email
	// that matches no account.
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingArgument is returned when a required argument is nil or
	// empty.
	ErrMissingArgument = errors.New("required argument is missing")
)
