package hobbies

import "strings"

// UserRole represents the role assigned to a user account
type UserRole = string

const (
	// RoleGuest has no standing permissions
	RoleGuest UserRole = "guest"
	// RoleMember is the default role for self-registered users
	RoleMember UserRole = "member"
	// RoleAdmin can manage other users
	RoleAdmin UserRole = "admin"
	// RoleOwner outranks admin
	RoleOwner UserRole = "owner"
)

// roleHierarchy maps each role to its rank, higher means more privileged
var roleHierarchy = map[UserRole]int{
	RoleGuest:  0,
	RoleMember: 1,
	RoleAdmin:  2,
	RoleOwner:  3,
}

// IsValidRole will check if the given role is known
func IsValidRole(role UserRole) bool {
	_, ok := roleHierarchy[role]
	return ok
}

// RoleIsAtLeast reports whether role ranks at or above min
func RoleIsAtLeast(role, min UserRole) bool {
	r, ok := roleHierarchy[role]
	if !ok {
		return false
	}
	m, ok := roleHierarchy[min]
	if !ok {
		return false
	}
	return r >= m
}

// ParseRole normalizes a raw string into a known role, falling back to guest
func ParseRole(raw string) UserRole {
	role := UserRole(strings.ToLower(strings.TrimSpace(raw)))
	if IsValidRole(role) {
		return role
	}
	return RoleGuest
}

// GetAllRoles returns the known roles ordered from least to most privileged
func GetAllRoles() []UserRole {
	return []UserRole{RoleGuest, RoleMember, RoleAdmin, RoleOwner}
}
