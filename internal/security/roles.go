package security

import "github.com/lanaseq/lanaseq/models"

// HasRole reports whether the principal holds the given role. An anonymous
// principal (nil authentication) holds no roles.
//
// The PREVIOUS_ADMINISTRATOR pseudo-role is never granted directly: it is
// satisfied only while a principal carries a saved pre-switch authentication
// whose owner was an administrator.
func HasRole(authentication *Authentication, role string) bool {
	if authentication == nil {
		return false
	}
	if role == models.PreviousAdministratorRole {
		return authentication.Previous.HasAuthority(models.RoleAdmin)
	}
	return authentication.HasAuthority(role)
}

// HasAnyRole reports whether the principal holds at least one of the given
// roles. An empty role list reports false.
func HasAnyRole(authentication *Authentication, roles ...string) bool {
	for _, role := range roles {
		if HasRole(authentication, role) {
			return true
		}
	}
	return false
}

// HasAllRoles reports whether the principal holds every one of the given
// roles. An empty role list reports true.
func HasAllRoles(authentication *Authentication, roles ...string) bool {
	for _, role := range roles {
		if !HasRole(authentication, role) {
			return false
		}
	}
	return true
}
