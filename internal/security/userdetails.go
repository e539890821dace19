package security

import (
	"context"
	"errors"
	"fmt"

	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/store"
	"github.com/lanaseq/lanaseq/models"
)

// Authorities derives the granted authority names from the account flags.
// Every account holds USER; MANAGER and ADMIN mirror the corresponding
// flags, and FORCE_CHANGE_PASSWORD is added while the password is expired.
func Authorities(user models.User) []string {
	authorities := []string{models.RoleUser}
	if user.Manager {
		authorities = append(authorities, models.RoleManager)
	}
	if user.Admin {
		authorities = append(authorities, models.RoleAdmin)
	}
	if user.ExpiredPassword {
		authorities = append(authorities, models.ForceChangePasswordAuthority)
	}
	return authorities
}

// userDetailsService is the concrete implementation of UserDetailsService
// backed by the user repository.
type userDetailsService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserDetailsService constructs a UserDetailsService wired to the given
// UserRepository.
func NewUserDetailsService(userRepository store.UserRepository, logger *logger.Logger) UserDetailsService {
	return &userDetailsService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// Load builds the authentication snapshot for the account with the given
// email.
//
// Returns ErrUserNotFound when the email is empty or matches no account, or
// a wrapped storage error if the lookup fails.
func (s *userDetailsService) Load(ctx context.Context, email string) (*Authentication, error) {
	log := logger.FromContext(ctx)

	if email == "" {
		return nil, ErrUserNotFound
	}

	user, err := s.userRepository.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Debug().Str("func", "Load").Str("email", email).Msg("no account for email")
		return nil, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "Load").Str("email", email).Msg("user lookup ended with error")
		return nil, fmt.Errorf("user lookup ended with error: %w", err)
	}

	return &Authentication{
		UserID:      user.ID,
		Email:       user.Email,
		Authorities: Authorities(user),
	}, nil
}
