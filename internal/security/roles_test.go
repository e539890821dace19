package security

import (
	"testing"

	"github.com/lanaseq/lanaseq/models"
	"github.com/stretchr/testify/assert"
)

func TestHasRole_Anonymous(t *testing.T) {
	assert.False(t, HasRole(nil, models.RoleUser))
	assert.False(t, HasRole(nil, models.RoleAdmin))
	assert.False(t, HasRole(nil, models.PreviousAdministratorRole))
}

func TestHasRole_DirectAuthorities(t *testing.T) {
	auth := &Authentication{
		UserID:      3,
		Email:       "manager@lab.test",
		Authorities: []string{models.RoleUser, models.RoleManager},
	}

	assert.True(t, HasRole(auth, models.RoleUser))
	assert.True(t, HasRole(auth, models.RoleManager))
	assert.False(t, HasRole(auth, models.RoleAdmin))
}

func TestHasRole_PreviousAdministrator(t *testing.T) {
	admin := &Authentication{
		UserID:      1,
		Email:       "admin@lab.test",
		Authorities: []string{models.RoleUser, models.RoleAdmin},
	}
	switched := &Authentication{
		UserID:      5,
		Email:       "target@lab.test",
		Authorities: []string{models.RoleUser},
		Previous:    admin,
	}

	// The pseudo-role is satisfied only through the saved authentication.
	assert.True(t, HasRole(switched, models.PreviousAdministratorRole))
	assert.False(t, HasRole(admin, models.PreviousAdministratorRole))

	// It is never satisfied by holding the name directly.
	direct := &Authentication{
		UserID:      7,
		Authorities: []string{models.PreviousAdministratorRole},
	}
	assert.False(t, HasRole(direct, models.PreviousAdministratorRole))
}

func TestHasRole_PreviousNonAdministrator(t *testing.T) {
	previous := &Authentication{
		UserID:      2,
		Authorities: []string{models.RoleUser, models.RoleManager},
	}
	switched := &Authentication{
		UserID:      5,
		Authorities: []string{models.RoleUser},
		Previous:    previous,
	}

	assert.False(t, HasRole(switched, models.PreviousAdministratorRole))
}

func TestHasAnyRole(t *testing.T) {
	auth := &Authentication{UserID: 3, Authorities: []string{models.RoleUser}}

	assert.True(t, HasAnyRole(auth, models.RoleAdmin, models.RoleUser))
	assert.False(t, HasAnyRole(auth, models.RoleAdmin, models.RoleManager))
	assert.False(t, HasAnyRole(auth), "empty role list reports false")
	assert.False(t, HasAnyRole(nil, models.RoleUser))
}

func TestHasAllRoles(t *testing.T) {
	auth := &Authentication{
		UserID:      1,
		Authorities: []string{models.RoleUser, models.RoleManager, models.RoleAdmin},
	}

	assert.True(t, HasAllRoles(auth, models.RoleUser, models.RoleAdmin))
	assert.False(t, HasAllRoles(auth, models.RoleUser, models.PreviousAdministratorRole))
	assert.True(t, HasAllRoles(auth), "empty role list reports true")
	assert.True(t, HasAllRoles(nil), "empty role list reports true even for anonymous")
	assert.False(t, HasAllRoles(nil, models.RoleUser))
}

func TestAuthentication_HasAuthority(t *testing.T) {
	var anonymous *Authentication
	assert.False(t, anonymous.HasAuthority(models.RoleUser))

	auth := &Authentication{Authorities: []string{models.RoleUser, models.ForceChangePasswordAuthority}}
	assert.True(t, auth.HasAuthority(models.ForceChangePasswordAuthority))
	assert.False(t, auth.HasAuthority(models.RoleManager))
}
