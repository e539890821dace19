package config

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants the security subsystem relies on before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Security.LockAttempts < 1 || cfg.Security.LockDuration <= 0 {
		return ErrInvalidSecurityConfigs
	}

	// A permanent deactivation threshold at or below the temporary lock
	// threshold would disable accounts before they ever lock.
	if cfg.Security.DisableSignAttempts <= cfg.Security.LockAttempts {
		return ErrInvalidSecurityConfigs
	}

	if cfg.LDAP.Enabled && cfg.LDAP.URL == "" {
		return ErrInvalidLDAPConfigs
	}

	return nil
}
