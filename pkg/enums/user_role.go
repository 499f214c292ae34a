package enums

import "fmt"

// UserRole represents the application-level role carried in the session.
type UserRole string

const (
	UserRolePetOwner     UserRole = "pet_owner"
	UserRoleVeterinarian UserRole = "veterinarian"
	UserRoleAdmin        UserRole = "admin"
)

var validUserRoles = []UserRole{
	UserRolePetOwner,
	UserRoleVeterinarian,
	UserRoleAdmin,
}

// String implements fmt.Stringer.
func (u UserRole) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserRole.
func (u UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
