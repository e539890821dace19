package models

// Granted authority names. USER is always present on an authenticated
// principal; MANAGER and ADMIN mirror the corresponding account flags and
// the remaining two are transient markers that are never persisted.
const (
	// RoleUser is the base role held by every authenticated account.
	RoleUser = "USER"

	// RoleManager is held by accounts with the manager flag set.
	RoleManager = "MANAGER"

	// RoleAdmin is held by accounts with the admin flag set.
	RoleAdmin = "ADMIN"

	// ForceChangePasswordAuthority marks a principal whose password is
	// expired. While present, only sign-out and password-change operations
	// are permitted.
	ForceChangePasswordAuthority = "FORCE_CHANGE_PASSWORD"

	// PreviousAdministratorRole is a pseudo-role satisfied while an
	// administrator is impersonating another user. It is resolved through
	// the saved pre-switch authentication, never granted directly.
	PreviousAdministratorRole = "PREVIOUS_ADMINISTRATOR"
)
