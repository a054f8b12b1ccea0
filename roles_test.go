package hobbies_test

import (
	"testing"

	hobbies "github.com/goliatone/go-hobbies"
	"github.com/stretchr/testify/assert"
)

func TestIsValidRole(t *testing.T) {
	for _, role := range hobbies.GetAllRoles() {
		assert.True(t, hobbies.IsValidRole(role), "role %q should be valid", role)
	}

	assert.False(t, hobbies.IsValidRole("superuser"))
	assert.False(t, hobbies.IsValidRole(""))
	assert.False(t, hobbies.IsValidRole("Admin"))
}

func TestRoleIsAtLeast(t *testing.T) {
	tests := []struct {
		role hobbies.UserRole
		min  hobbies.UserRole
		want bool
	}{
		{hobbies.RoleGuest, hobbies.RoleGuest, true},
		{hobbies.RoleGuest, hobbies.RoleMember, false},
		{hobbies.RoleMember, hobbies.RoleGuest, true},
		{hobbies.RoleMember, hobbies.RoleAdmin, false},
		{hobbies.RoleAdmin, hobbies.RoleMember, true},
		{hobbies.RoleAdmin, hobbies.RoleAdmin, true},
		{hobbies.RoleAdmin, hobbies.RoleOwner, false},
		{hobbies.RoleOwner, hobbies.RoleAdmin, true},
		{hobbies.RoleOwner, hobbies.RoleOwner, true},
	}

	for _, tt := range tests {
		t.Run(tt.role+" vs "+tt.min, func(t *testing.T) {
			assert.Equal(t, tt.want, hobbies.RoleIsAtLeast(tt.role, tt.min))
		})
	}

	t.Run("unknown roles never pass", func(t *testing.T) {
		assert.False(t, hobbies.RoleIsAtLeast("superuser", hobbies.RoleGuest))
		assert.False(t, hobbies.RoleIsAtLeast(hobbies.RoleOwner, "superuser"))
	})
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, hobbies.RoleAdmin, hobbies.ParseRole("admin"))
	assert.Equal(t, hobbies.RoleAdmin, hobbies.ParseRole("  ADMIN "))
	assert.Equal(t, hobbies.RoleMember, hobbies.ParseRole("Member"))
	assert.Equal(t, hobbies.RoleGuest, hobbies.ParseRole("superuser"))
	assert.Equal(t, hobbies.RoleGuest, hobbies.ParseRole(""))
}
