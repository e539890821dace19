package security

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/store"
	"github.com/lanaseq/lanaseq/models"
)

// PolicyRegistry maps endpoint policy names to the roles allowed through.
// Policies that were never registered carry no role requirement and are
// open to everyone.
type PolicyRegistry struct {
	mu    sync.RWMutex
	roles map[string][]string
}

// NewPolicyRegistry returns an empty policy registry.
func NewPolicyRegistry() *PolicyRegistry {
	return &PolicyRegistry{roles: make(map[string][]string)}
}

// Register records the roles allowed through the named policy, replacing
// any previous registration.
func (r *PolicyRegistry) Register(policy string, roles ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[policy] = roles
}

// RolesFor returns the roles registered for the policy and whether the
// policy is registered at all.
func (r *PolicyRegistry) RolesFor(policy string) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	roles, ok := r.roles[policy]
	return roles, ok
}

// authorizedUser is the concrete implementation of AuthorizationService.
type authorizedUser struct {
	userRepository store.UserRepository
	evaluator      PermissionEvaluator
	policies       *PolicyRegistry
	logger         *logger.Logger
}

// NewAuthorizationService constructs the AuthorizationService façade wired
// to the given UserRepository, PermissionEvaluator and PolicyRegistry.
func NewAuthorizationService(userRepository store.UserRepository, evaluator PermissionEvaluator, policies *PolicyRegistry, logger *logger.Logger) AuthorizationService {
	return &authorizedUser{
		userRepository: userRepository,
		evaluator:      evaluator,
		policies:       policies,
		logger:         logger,
	}
}

// User returns the account of the principal attached to the session.
//
// Returns ErrUserNotFound for anonymous sessions and for principals whose
// account no longer exists, or a wrapped storage error if the lookup fails.
func (a *authorizedUser) User(ctx context.Context, session *Session) (models.User, error) {
	log := logger.FromContext(ctx)

	if a.IsAnonymous(session) {
		return models.User{}, ErrUserNotFound
	}

	authentication := session.Authentication()
	user, err := a.userRepository.FindByID(ctx, authentication.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Warn().Str("func", "User").Int64("user_id", authentication.UserID).
			Msg("authenticated account no longer exists")
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "User").Int64("user_id", authentication.UserID).
			Msg("user lookup ended with error")
		return models.User{}, fmt.Errorf("user lookup ended with error: %w", err)
	}

	return user, nil
}

// IsAnonymous reports whether no principal is attached to the session.
func (a *authorizedUser) IsAnonymous(session *Session) bool {
	return session == nil || session.Authentication() == nil
}

// HasRole reports whether the current principal holds the role.
func (a *authorizedUser) HasRole(session *Session, role string) bool {
	if session == nil {
		return false
	}
	return HasRole(session.Authentication(), role)
}

// HasAnyRole reports whether the current principal holds at least one of
// the roles.
func (a *authorizedUser) HasAnyRole(session *Session, roles ...string) bool {
	if session == nil {
		return false
	}
	return HasAnyRole(session.Authentication(), roles...)
}

// HasAllRoles reports whether the current principal holds every one of the
// roles.
func (a *authorizedUser) HasAllRoles(session *Session, roles ...string) bool {
	if session == nil {
		return false
	}
	return HasAllRoles(session.Authentication(), roles...)
}

// HasPermission reports whether the current principal holds the permission
// on the given entity.
func (a *authorizedUser) HasPermission(ctx context.Context, session *Session, subject any, permission models.Permission) bool {
	if session == nil {
		return false
	}
	return a.evaluator.Has(ctx, session.Authentication(), subject, permission)
}

// IsAuthorized reports whether the current principal may reach the named
// endpoint policy. A policy with no registered role requirement is open to
// everyone, anonymous principals included.
func (a *authorizedUser) IsAuthorized(session *Session, policy string) bool {
	roles, registered := a.policies.RolesFor(policy)
	if !registered || len(roles) == 0 {
		return true
	}
	return a.HasAnyRole(session, roles...)
}

// ReloadAuthorities re-derives the principal's authorities from the
// current account flags.
//
// When the authorities are unchanged the existing authentication is
// returned as is, so callers comparing identities can tell nothing
// happened. Otherwise a replacement authentication with the new
// authorities — the saved pre-switch authentication carried over — is
// attached to the session and returned.
func (a *authorizedUser) ReloadAuthorities(ctx context.Context, session *Session) (*Authentication, error) {
	log := logger.FromContext(ctx)

	if a.IsAnonymous(session) {
		return nil, ErrUserNotFound
	}

	authentication := session.Authentication()
	user, err := a.userRepository.FindByID(ctx, authentication.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "ReloadAuthorities").Int64("user_id", authentication.UserID).
			Msg("user lookup ended with error")
		return nil, fmt.Errorf("user lookup ended with error: %w", err)
	}

	authorities := Authorities(user)
	if sameAuthorities(authentication.Authorities, authorities) {
		return authentication, nil
	}

	reloaded := &Authentication{
		UserID:      authentication.UserID,
		Email:       user.Email,
		Authorities: authorities,
		Previous:    authentication.Previous,
	}
	session.SetAuthentication(reloaded)

	log.Info().Str("func", "ReloadAuthorities").Str("email", user.Email).
		Strs("authorities", authorities).Msg("authorities reloaded")
	return reloaded, nil
}

// sameAuthorities reports whether the two authority lists contain the same
// names, ignoring order.
func sameAuthorities(current, reloaded []string) bool {
	if len(current) != len(reloaded) {
		return false
	}
	seen := make(map[string]bool, len(current))
	for _, authority := range current {
		seen[authority] = true
	}
	for _, authority := range reloaded {
		if !seen[authority] {
			return false
		}
	}
	return true
}
