package security

import (
	"context"
	"testing"
	"time"

	"github.com/lanaseq/lanaseq/internal/config"
	"github.com/lanaseq/lanaseq/internal/ldap"
	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/mock"
	"github.com/lanaseq/lanaseq/internal/store"
	"github.com/lanaseq/lanaseq/internal/utils"
	"github.com/lanaseq/lanaseq/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testPassword = "letmein-1234"

// testClock is the fixed time every authenticator under test runs at.
var testClock = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

// newTestAuthenticator builds an authenticator with a deterministic clock
// and the default lockout policy (lock after 5 for 3 minutes, disable at 20).
func newTestAuthenticator(t *testing.T, users store.UserRepository, directory ldap.Directory, ldapCfg config.LDAP) *authenticator {
	t.Helper()

	securityCfg := config.Security{
		LockAttempts:        5,
		LockDuration:        3 * time.Minute,
		DisableSignAttempts: 20,
	}
	svc, err := NewAuthenticator(users, directory, securityCfg, ldapCfg, logger.Nop())
	require.NoError(t, err)

	concrete := svc.(*authenticator)
	concrete.now = func() time.Time { return testClock }
	return concrete
}

// activeUser returns an active account whose stored hash matches
// testPassword.
func activeUser(t *testing.T) models.User {
	t.Helper()
	hash, err := utils.HashPassword(testPassword)
	require.NoError(t, err)
	return models.User{
		ID:             9,
		Email:          "jonh.smith@lab.test",
		Name:           "Jonh Smith",
		HashedPassword: hash,
		Active:         true,
	}
}

func TestAuthenticate_LocalSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := activeUser(t)
	user.SignAttempts = 3

	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)

	var saved models.User
	users.EXPECT().
		SaveSignAttempt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) error {
			saved = u
			return nil
		})

	svc := newTestAuthenticator(t, users, nil, config.LDAP{})

	got, err := svc.Authenticate(context.Background(), user.Email, testPassword)
	require.NoError(t, err)

	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, 0, got.SignAttempts, "success resets the failure counter")
	assert.Equal(t, 0, saved.SignAttempts)
	require.NotNil(t, saved.LastSignAttempt)
	assert.Equal(t, testClock, *saved.LastSignAttempt)
	assert.True(t, saved.Active)
}

func TestAuthenticate_EmptyEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no FindByEmail expectation: nothing to look up without an email
	svc := newTestAuthenticator(t, mock.NewMockUserRepository(ctrl), nil, config.LDAP{})

	_, err := svc.Authenticate(context.Background(), "", testPassword)
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestAuthenticate_EmptyPassword_CountsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := activeUser(t)
	user.SignAttempts = 3

	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)

	var saved models.User
	users.EXPECT().
		SaveSignAttempt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) error {
			saved = u
			return nil
		})

	svc := newTestAuthenticator(t, users, nil, config.LDAP{})

	_, err := svc.Authenticate(context.Background(), user.Email, "")
	assert.ErrorIs(t, err, ErrBadCredentials)

	assert.Equal(t, 4, saved.SignAttempts, "an empty password is a counted failure")
	require.NotNil(t, saved.LastSignAttempt)
	assert.Equal(t, testClock, *saved.LastSignAttempt)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().
		FindByEmail(gomock.Any(), "nobody@lab.test").
		Return(models.User{}, store.ErrNoUserWasFound)

	svc := newTestAuthenticator(t, users, nil, config.LDAP{})

	// Indistinguishable from a wrong password; nothing is persisted.
	_, err := svc.Authenticate(context.Background(), "nobody@lab.test", testPassword)
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestAuthenticate_DisabledAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := activeUser(t)
	user.Active = false
	user.SignAttempts = 2

	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)

	svc := newTestAuthenticator(t, users, nil, config.LDAP{})

	// The counters are not touched: no SaveSignAttempt expectation.
	_, err := svc.Authenticate(context.Background(), user.Email, testPassword)
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestAuthenticate_LockedAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lastAttempt := testClock.Add(-time.Minute)
	user := activeUser(t)
	user.SignAttempts = 5
	user.LastSignAttempt = &lastAttempt

	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)

	svc := newTestAuthenticator(t, users, nil, config.LDAP{})

	// Locked even with the correct password, and the counters stay as is.
	_, err := svc.Authenticate(context.Background(), user.Email, testPassword)
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestAuthenticate_LockExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lastAttempt := testClock.Add(-10 * time.Minute)
	user := activeUser(t)
	user.SignAttempts = 5
	user.LastSignAttempt = &lastAttempt

	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)

	var saved models.User
	users.EXPECT().
		SaveSignAttempt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) error {
			saved = u
			return nil
		})

	svc := newTestAuthenticator(t, users, nil, config.LDAP{})

	_, err := svc.Authenticate(context.Background(), user.Email, testPassword)
	require.NoError(t, err)
	assert.Equal(t, 0, saved.SignAttempts)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := activeUser(t)
	user.SignAttempts = 3

	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)

	var saved models.User
	users.EXPECT().
		SaveSignAttempt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) error {
			saved = u
			return nil
		})

	svc := newTestAuthenticator(t, users, nil, config.LDAP{})

	_, err := svc.Authenticate(context.Background(), user.Email, "wrong-password")
	assert.ErrorIs(t, err, ErrBadCredentials)

	assert.Equal(t, 4, saved.SignAttempts)
	require.NotNil(t, saved.LastSignAttempt)
	assert.Equal(t, testClock, *saved.LastSignAttempt)
	assert.True(t, saved.Active, "below the disable threshold the account stays active")
}

func TestAuthenticate_DisableThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lastAttempt := testClock.Add(-10 * time.Minute)
	user := activeUser(t)
	user.SignAttempts = 19
	user.LastSignAttempt = &lastAttempt

	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)

	var saved models.User
	users.EXPECT().
		SaveSignAttempt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) error {
			saved = u
			return nil
		})

	svc := newTestAuthenticator(t, users, nil, config.LDAP{})

	_, err := svc.Authenticate(context.Background(), user.Email, "wrong-password")
	assert.ErrorIs(t, err, ErrBadCredentials)

	assert.Equal(t, 20, saved.SignAttempts)
	assert.False(t, saved.Active, "reaching the disable threshold clears the active flag")
}

func TestAuthenticate_DirectoryAccepts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := activeUser(t)
	user.HashedPassword = "$2a$10$unrelatedhashthatmatchesnothing000000000000000000000"

	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)
	users.EXPECT().SaveSignAttempt(gomock.Any(), gomock.Any()).Return(nil)

	directory := mock.NewMockDirectory(ctrl)
	directory.EXPECT().GetUsername(gomock.Any(), user.Email).Return("jsmith", nil)
	directory.EXPECT().IsPasswordValid(gomock.Any(), "jsmith", testPassword).Return(true)

	svc := newTestAuthenticator(t, users, directory, config.LDAP{Enabled: true})

	_, err := svc.Authenticate(context.Background(), user.Email, testPassword)
	assert.NoError(t, err)
}

func TestAuthenticate_DirectoryRejectsLocalMatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := activeUser(t)

	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)
	users.EXPECT().SaveSignAttempt(gomock.Any(), gomock.Any()).Return(nil)

	directory := mock.NewMockDirectory(ctrl)
	directory.EXPECT().GetUsername(gomock.Any(), user.Email).Return("jsmith", nil)
	directory.EXPECT().IsPasswordValid(gomock.Any(), "jsmith", testPassword).Return(false)

	svc := newTestAuthenticator(t, users, directory, config.LDAP{Enabled: true})

	// The local hash remains an accepted fallback.
	_, err := svc.Authenticate(context.Background(), user.Email, testPassword)
	assert.NoError(t, err)
}

func TestAuthenticate_NoDirectoryIdentifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := activeUser(t)

	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)

	var saved models.User
	users.EXPECT().
		SaveSignAttempt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) error {
			saved = u
			return nil
		})

	directory := mock.NewMockDirectory(ctrl)
	directory.EXPECT().GetUsername(gomock.Any(), user.Email).Return("", ldap.ErrNotFoundInDirectory)

	svc := newTestAuthenticator(t, users, directory, config.LDAP{Enabled: true})

	// A directory-eligible account without a directory entry is rejected
	// even though the local hash would match, and the failure is counted.
	_, err := svc.Authenticate(context.Background(), user.Email, testPassword)
	assert.ErrorIs(t, err, ErrBadCredentials)
	assert.Equal(t, 1, saved.SignAttempts)
}

func TestAuthenticate_NotDirectoryEligible(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := activeUser(t)

	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)
	users.EXPECT().SaveSignAttempt(gomock.Any(), gomock.Any()).Return(nil)

	// No expectations: the directory must not be consulted for accounts
	// outside the eligibility pattern.
	directory := mock.NewMockDirectory(ctrl)

	ldapCfg := config.LDAP{Enabled: true, EligiblePattern: `@ircm\.qc\.ca$`}
	svc := newTestAuthenticator(t, users, directory, ldapCfg)

	_, err := svc.Authenticate(context.Background(), user.Email, testPassword)
	assert.NoError(t, err)
}

func TestNewAuthenticator_BadEligiblePattern(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ldapCfg := config.LDAP{Enabled: true, EligiblePattern: "("}
	_, err := NewAuthenticator(mock.NewMockUserRepository(ctrl), mock.NewMockDirectory(ctrl),
		config.Security{LockAttempts: 5, LockDuration: 3 * time.Minute, DisableSignAttempts: 20},
		ldapCfg, logger.Nop())
	assert.Error(t, err)
}
