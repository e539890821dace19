package security

import (
	"github.com/lanaseq/lanaseq/internal/config"
	"github.com/lanaseq/lanaseq/internal/ldap"
	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/store"
)

// Services aggregates the security services of the application behind one
// constructor so that the wiring in cmd/server stays flat.
type Services struct {
	UserDetails   UserDetailsService
	Authenticator Authenticator
	Permissions   PermissionEvaluator
	SwitchUser    SwitchUserService
	Authorization AuthorizationService
}

// NewServices builds the full security service set on top of the given
// repositories. The directory may be nil when directory integration is
// disabled, and the listener may be nil when switches need no observer.
func NewServices(storages *store.Storages, directory ldap.Directory, cfg *config.StructuredConfig, policies *PolicyRegistry, listener SwitchListener, log *logger.Logger) (*Services, error) {
	authenticator, err := NewAuthenticator(storages.UserRepository, directory, cfg.Security, cfg.LDAP, log)
	if err != nil {
		return nil, err
	}

	permissions := NewPermissionEvaluator(storages, log)

	return &Services{
		UserDetails:   NewUserDetailsService(storages.UserRepository, log),
		Authenticator: authenticator,
		Permissions:   permissions,
		SwitchUser:    NewSwitchUserService(cfg.Security, listener, log),
		Authorization: NewAuthorizationService(storages.UserRepository, permissions, policies, log),
	}, nil
}
