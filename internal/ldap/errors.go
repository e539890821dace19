package ldap

import "errors"

var (
	// ErrNotFoundInDirectory is returned when a lookup matches no directory
	// entry.
	ErrNotFoundInDirectory = errors.New("no matching directory entry")

	// ErrDirectoryUnavailable is returned (wrapped) when the directory
	// gateway cannot be reached or answers with an unexpected status.
	ErrDirectoryUnavailable = errors.New("directory gateway unavailable")
)
