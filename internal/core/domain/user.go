package domain

import "time"

// UserRole is fixed when the user is created.
type UserRole string

const (
	RoleOwner   UserRole = "OWNER"   // Patron: oversees the managers' budgets and reports
	RoleManager UserRole = "MANAGER" // Responsable: reports activity and spends against a budget
)

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	return r == RoleOwner || r == RoleManager
}

// User represents a member of the tenant roster.
type User struct {
	UserID        string    `json:"userID"`
	Name          string    `json:"name"`
	Role          UserRole  `json:"role"`
	AvatarURL     string    `json:"avatarURL"`
	ContactHandle string    `json:"contactHandle,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
