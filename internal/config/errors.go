package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidSecurityConfigs indicates an unusable lockout policy
	// (non-positive thresholds, zero lock window, or a disable threshold
	// that does not exceed the lock threshold).
	ErrInvalidSecurityConfigs = errors.New("invalid security configuration")

	// ErrInvalidLDAPConfigs indicates that directory validation is enabled
	// without a directory gateway URL.
	ErrInvalidLDAPConfigs = errors.New("invalid ldap configuration")
)
