package security

import (
	"context"
	"testing"
	"time"

	"github.com/lanaseq/lanaseq/internal/config"
	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSwitchService(t *testing.T, listener SwitchListener) *switchUserService {
	t.Helper()

	securityCfg := config.Security{
		LockAttempts:        5,
		LockDuration:        3 * time.Minute,
		DisableSignAttempts: 20,
	}
	svc := NewSwitchUserService(securityCfg, listener, logger.Nop()).(*switchUserService)
	svc.now = func() time.Time { return testClock }
	return svc
}

func adminSession() *Session {
	return NewSessionStore().Create(&Authentication{
		UserID:      1,
		Email:       "admin@lab.test",
		Authorities: []string{models.RoleUser, models.RoleAdmin},
	})
}

func switchTarget() models.User {
	return models.User{ID: 9, Email: "jonh.smith@lab.test", Name: "Jonh Smith", Active: true}
}

func TestSwitchUser_Success(t *testing.T) {
	var notifiedFrom, notifiedTo *Authentication
	svc := newTestSwitchService(t, func(from, to *Authentication) {
		notifiedFrom, notifiedTo = from, to
	})

	session := adminSession()
	admin := session.Authentication()

	err := svc.SwitchUser(context.Background(), session, switchTarget())
	require.NoError(t, err)

	switched := session.Authentication()
	assert.Equal(t, int64(9), switched.UserID)
	assert.Equal(t, "jonh.smith@lab.test", switched.Email)
	assert.Equal(t, []string{models.RoleUser}, switched.Authorities)
	assert.Same(t, admin, switched.Previous)

	// The pseudo-role follows from the saved authentication, while the
	// administrator's own roles do not leak through.
	assert.True(t, HasRole(switched, models.PreviousAdministratorRole))
	assert.False(t, HasRole(switched, models.RoleAdmin))

	assert.Same(t, admin, notifiedFrom)
	assert.Same(t, switched, notifiedTo)
}

func TestSwitchUser_MissingArguments(t *testing.T) {
	svc := newTestSwitchService(t, nil)

	err := svc.SwitchUser(context.Background(), nil, switchTarget())
	assert.ErrorIs(t, err, ErrMissingArgument)

	err = svc.SwitchUser(context.Background(), adminSession(), models.User{})
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestSwitchUser_NotAdministrator(t *testing.T) {
	svc := newTestSwitchService(t, nil)

	session := NewSessionStore().Create(&Authentication{
		UserID:      5,
		Email:       "manager@lab.test",
		Authorities: []string{models.RoleUser, models.RoleManager},
	})

	err := svc.SwitchUser(context.Background(), session, switchTarget())
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.SwitchUser(context.Background(), NewSessionStore().Create(nil), switchTarget())
	assert.ErrorIs(t, err, ErrAccessDenied, "anonymous sessions cannot switch")
}

func TestSwitchUser_AlreadySwitched(t *testing.T) {
	svc := newTestSwitchService(t, nil)
	session := adminSession()

	require.NoError(t, svc.SwitchUser(context.Background(), session, switchTarget()))

	// Even if the switched-to account were an administrator the second
	// switch is refused; here the first guard that fires is the missing
	// ADMIN role, and for an admin target the saved-authentication guard.
	other := models.User{ID: 12, Email: "other@lab.test", Active: true}
	err := svc.SwitchUser(context.Background(), session, other)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSwitchUser_TargetAdministrator(t *testing.T) {
	svc := newTestSwitchService(t, nil)

	target := switchTarget()
	target.Admin = true

	err := svc.SwitchUser(context.Background(), adminSession(), target)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSwitchUser_TargetDisabled(t *testing.T) {
	svc := newTestSwitchService(t, nil)

	target := switchTarget()
	target.Active = false

	err := svc.SwitchUser(context.Background(), adminSession(), target)
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestSwitchUser_TargetLocked(t *testing.T) {
	svc := newTestSwitchService(t, nil)

	lastAttempt := testClock.Add(-time.Minute)
	target := switchTarget()
	target.SignAttempts = 5
	target.LastSignAttempt = &lastAttempt

	err := svc.SwitchUser(context.Background(), adminSession(), target)
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestSwitchUser_TargetLockExpired(t *testing.T) {
	svc := newTestSwitchService(t, nil)

	lastAttempt := testClock.Add(-10 * time.Minute)
	target := switchTarget()
	target.SignAttempts = 5
	target.LastSignAttempt = &lastAttempt

	err := svc.SwitchUser(context.Background(), adminSession(), target)
	assert.NoError(t, err)
}

func TestExitSwitchUser_RestoresAdministrator(t *testing.T) {
	var notifiedTo *Authentication
	svc := newTestSwitchService(t, func(_, to *Authentication) { notifiedTo = to })

	session := adminSession()
	admin := session.Authentication()
	require.NoError(t, svc.SwitchUser(context.Background(), session, switchTarget()))

	err := svc.ExitSwitchUser(context.Background(), session)
	require.NoError(t, err)

	assert.Same(t, admin, session.Authentication())
	assert.Same(t, admin, notifiedTo)

	// A second exit finds nothing to restore.
	err = svc.ExitSwitchUser(context.Background(), session)
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestExitSwitchUser_WithoutSwitch(t *testing.T) {
	svc := newTestSwitchService(t, nil)

	err := svc.ExitSwitchUser(context.Background(), adminSession())
	assert.ErrorIs(t, err, ErrCredentialsNotFound)

	err = svc.ExitSwitchUser(context.Background(), NewSessionStore().Create(nil))
	assert.ErrorIs(t, err, ErrCredentialsNotFound)

	err = svc.ExitSwitchUser(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMissingArgument)
}
