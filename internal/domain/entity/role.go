package entity

import "strings"

// Role names as stored on the patient record
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "user"
)

// IsAdminRole reports whether role grants the patient override.
func IsAdminRole(role string) bool {
	return strings.EqualFold(strings.TrimSpace(role), RoleAdmin)
}
