package security

import (
	"context"
	"time"

	"github.com/lanaseq/lanaseq/internal/config"
	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/models"
)

// SwitchListener is notified after every successful switch and exit. The
// from authentication is the one being left, the to authentication the one
// taking effect.
type SwitchListener func(from, to *Authentication)

// switchUserService is the concrete implementation of SwitchUserService.
// The pre-switch authentication is saved on the replacement authentication
// itself, so restoring it is a pointer walk rather than a second lookup.
type switchUserService struct {
	// lockAttempts and lockDuration mirror the authenticator's lockout
	// policy: a locked account cannot be switched to either.
	lockAttempts int
	lockDuration time.Duration

	// listener, when set, observes successful switches and exits.
	listener SwitchListener

	// now returns the current time. Overridable in tests.
	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewSwitchUserService constructs a SwitchUserService enforcing the given
// lockout policy. The listener may be nil.
func NewSwitchUserService(securityCfg config.Security, listener SwitchListener, logger *logger.Logger) SwitchUserService {
	return &switchUserService{
		lockAttempts: securityCfg.LockAttempts,
		lockDuration: securityCfg.LockDuration,
		listener:     listener,
		now:          time.Now,
		logger:       logger,
	}
}

// SwitchUser replaces the session's authentication with one for the target
// account.
//
// Returns ErrMissingArgument when the session or target is missing,
// ErrAccessDenied when the caller is not an administrator, is already
// switched, or targets an administrator, and ErrAccountDisabled or
// ErrAccountLocked when the target account cannot currently sign in.
func (s *switchUserService) SwitchUser(ctx context.Context, session *Session, target models.User) error {
	log := logger.FromContext(ctx)

	if session == nil || target.ID == 0 {
		return ErrMissingArgument
	}

	current := session.Authentication()
	if !HasRole(current, models.RoleAdmin) {
		log.Info().Str("func", "SwitchUser").Int64("target_id", target.ID).
			Msg("switch refused: caller is not an administrator")
		return ErrAccessDenied
	}
	if current.Previous != nil {
		log.Info().Str("func", "SwitchUser").Int64("target_id", target.ID).
			Msg("switch refused: caller is already switched")
		return ErrAccessDenied
	}
	if target.Admin {
		log.Info().Str("func", "SwitchUser").Int64("target_id", target.ID).
			Msg("switch refused: target is an administrator")
		return ErrAccessDenied
	}

	if !target.Active {
		return ErrAccountDisabled
	}
	if target.SignAttempts >= s.lockAttempts && target.LastSignAttempt != nil &&
		s.now().Sub(*target.LastSignAttempt) < s.lockDuration {
		return ErrAccountLocked
	}

	switched := &Authentication{
		UserID:      target.ID,
		Email:       target.Email,
		Authorities: Authorities(target),
		Previous:    current,
	}
	session.SetAuthentication(switched)

	log.Info().Str("func", "SwitchUser").Str("admin", current.Email).
		Str("target", target.Email).Msg("administrator switched user")
	if s.listener != nil {
		s.listener(current, switched)
	}

	return nil
}

// ExitSwitchUser restores the authentication saved by SwitchUser.
//
// Returns ErrMissingArgument when the session is nil and
// ErrCredentialsNotFound when no saved authentication exists.
func (s *switchUserService) ExitSwitchUser(ctx context.Context, session *Session) error {
	log := logger.FromContext(ctx)

	if session == nil {
		return ErrMissingArgument
	}

	current := session.Authentication()
	if current == nil || current.Previous == nil {
		return ErrCredentialsNotFound
	}

	session.SetAuthentication(current.Previous)

	log.Info().Str("func", "ExitSwitchUser").Str("admin", current.Previous.Email).
		Str("target", current.Email).Msg("administrator exited switched user")
	if s.listener != nil {
		s.listener(current, current.Previous)
	}

	return nil
}
