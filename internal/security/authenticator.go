package security

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/lanaseq/lanaseq/internal/config"
	"github.com/lanaseq/lanaseq/internal/ldap"
	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/store"
	"github.com/lanaseq/lanaseq/internal/utils"
	"github.com/lanaseq/lanaseq/models"
)

// authenticator is the concrete implementation of Authenticator.
//
// Credential validation is local (bcrypt against the stored hash) unless a
// directory is configured and the account is directory-eligible, in which
// case the directory is consulted first and the local hash remains an
// accepted fallback. Lockout bookkeeping is persisted synchronously on
// every counted attempt.
type authenticator struct {
	// userRepository is the data-access layer used to look up accounts and
	// persist their lockout counters.
	userRepository store.UserRepository

	// directory is the external credential-check collaborator. Nil when
	// directory integration is disabled.
	directory ldap.Directory

	// eligible selects the accounts whose credentials are validated
	// against the directory. Nil means every account is eligible.
	eligible *regexp.Regexp

	// lockAttempts is the number of failed attempts after which an account
	// is temporarily locked.
	lockAttempts int

	// lockDuration is how long a lock lasts after the last failed attempt.
	lockDuration time.Duration

	// disableSignAttempts is the number of failed attempts after which an
	// account is disabled outright.
	disableSignAttempts int

	// now returns the current time. Overridable in tests.
	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthenticator constructs an Authenticator wired to the given
// UserRepository and, when directory integration is enabled, the given
// Directory. Pass a nil directory to validate credentials locally only.
//
// Returns an error when the directory eligibility pattern does not compile.
func NewAuthenticator(userRepository store.UserRepository, directory ldap.Directory, securityCfg config.Security, ldapCfg config.LDAP, logger *logger.Logger) (Authenticator, error) {
	if !ldapCfg.Enabled {
		directory = nil
	}

	var eligible *regexp.Regexp
	if directory != nil && ldapCfg.EligiblePattern != "" {
		var err error
		eligible, err = regexp.Compile(ldapCfg.EligiblePattern)
		if err != nil {
			return nil, fmt.Errorf("error compiling directory eligibility pattern: %w", err)
		}
	}

	return &authenticator{
		userRepository:      userRepository,
		directory:           directory,
		eligible:            eligible,
		lockAttempts:        securityCfg.LockAttempts,
		lockDuration:        securityCfg.LockDuration,
		disableSignAttempts: securityCfg.DisableSignAttempts,
		now:                 time.Now,
		logger:              logger,
	}, nil
}

// Authenticate validates the email/password pair against the account state
// and returns the account on success.
//
// The checks run in a fixed order:
//  1. unknown email reports ErrBadCredentials, indistinguishable from a
//     wrong password;
//  2. a disabled account reports ErrAccountDisabled without touching the
//     lockout counters;
//  3. an account still inside its lock window reports ErrAccountLocked,
//     again without touching the counters;
//  4. only then is the password validated, and the outcome recorded.
//
// A successful sign-in resets the failure counter. A failed one increments
// it and, once the disable threshold is reached, clears the active flag.
func (a *authenticator) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	// Without an email there is no account to count the attempt against.
	// An empty password goes through the regular failure path instead so
	// the attempt is still recorded.
	if email == "" {
		return models.User{}, ErrBadCredentials
	}

	user, err := a.userRepository.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Debug().Str("func", "Authenticate").Str("email", email).Msg("sign-in for unknown email")
		return models.User{}, ErrBadCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "Authenticate").Str("email", email).Msg("user lookup ended with error")
		return models.User{}, fmt.Errorf("user lookup ended with error: %w", err)
	}

	if !user.Active {
		log.Info().Str("func", "Authenticate").Str("email", email).Msg("sign-in for disabled account")
		return models.User{}, ErrAccountDisabled
	}

	if a.locked(user) {
		log.Info().Str("func", "Authenticate").Str("email", email).
			Int("sign_attempts", user.SignAttempts).Msg("sign-in for locked account")
		return models.User{}, ErrAccountLocked
	}

	if a.credentialsValid(ctx, user, password) {
		return a.recordSuccess(ctx, user)
	}
	return a.recordFailure(ctx, user)
}

// locked reports whether the account is inside its lock window: enough
// recent failures, with the last one closer than the lock duration.
func (a *authenticator) locked(user models.User) bool {
	if user.SignAttempts < a.lockAttempts || user.LastSignAttempt == nil {
		return false
	}
	return a.now().Sub(*user.LastSignAttempt) < a.lockDuration
}

// credentialsValid checks the presented password for the account.
//
// Without a directory, or for accounts outside the eligibility pattern, the
// check is purely local. For directory-eligible accounts the directory
// identifier must resolve: when it does not, the credentials are rejected
// even if the local hash would match. When it does, acceptance by either
// the directory or the local hash is sufficient.
func (a *authenticator) credentialsValid(ctx context.Context, user models.User, password string) bool {
	if password == "" {
		return false
	}
	if a.directory == nil || (a.eligible != nil && !a.eligible.MatchString(user.Email)) {
		return utils.PasswordMatches(user.HashedPassword, password)
	}

	log := logger.FromContext(ctx)

	username, err := a.directory.GetUsername(ctx, user.Email)
	if err != nil {
		log.Warn().Err(err).Str("func", "credentialsValid").Str("email", user.Email).
			Msg("no directory identifier for account")
		return false
	}

	if a.directory.IsPasswordValid(ctx, username, password) {
		return true
	}
	return utils.PasswordMatches(user.HashedPassword, password)
}

// recordSuccess resets the lockout counters and persists them.
func (a *authenticator) recordSuccess(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	now := a.now()
	user.SignAttempts = 0
	user.LastSignAttempt = &now

	if err := a.userRepository.SaveSignAttempt(ctx, user); err != nil {
		log.Err(err).Str("func", "recordSuccess").Str("email", user.Email).
			Msg("saving sign-in attempt ended with error")
		return models.User{}, fmt.Errorf("saving sign-in attempt ended with error: %w", err)
	}

	log.Info().Str("func", "Authenticate").Str("email", user.Email).Msg("sign-in succeeded")
	return user, nil
}

// recordFailure increments the failure counter, disables the account once
// the disable threshold is reached, persists the counters and reports
// ErrBadCredentials.
func (a *authenticator) recordFailure(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	now := a.now()
	user.SignAttempts++
	user.LastSignAttempt = &now
	if user.SignAttempts >= a.disableSignAttempts {
		user.Active = false
	}

	if err := a.userRepository.SaveSignAttempt(ctx, user); err != nil {
		log.Err(err).Str("func", "recordFailure").Str("email", user.Email).
			Msg("saving sign-in attempt ended with error")
		return models.User{}, fmt.Errorf("saving sign-in attempt ended with error: %w", err)
	}

	log.Info().Str("func", "Authenticate").Str("email", user.Email).
		Int("sign_attempts", user.SignAttempts).Bool("active", user.Active).
		Msg("sign-in failed")
	return models.User{}, ErrBadCredentials
}
