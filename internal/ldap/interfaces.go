// Package ldap provides the external directory collaborator used for
// directory-backed credential validation. The LDAP wire protocol itself is
// out of scope: entries are reached through a small REST directory gateway,
// and the rest of the application only sees the [Directory] interface.
package ldap

//go:generate mockgen -source=interfaces.go -destination=../mock/ldap_mock.go -package=mock

import "context"

// Directory is the external identity lookup and credential-check
// collaborator. Implementations must be safe for concurrent use.
type Directory interface {
	// GetUsername resolves the directory identifier (e.g. the uid
	// attribute) for the account with the given email.
	// Returns ErrNotFoundInDirectory when no directory entry matches.
	GetUsername(ctx context.Context, email string) (string, error)

	// GetEmail resolves the email of the directory entry with the given
	// directory identifier.
	// Returns ErrNotFoundInDirectory when no directory entry matches.
	GetEmail(ctx context.Context, username string) (string, error)

	// IsPasswordValid reports whether the presented password is valid for
	// the directory entry with the given directory identifier. Lookup or
	// transport failures report false.
	IsPasswordValid(ctx context.Context, username, password string) bool
}
