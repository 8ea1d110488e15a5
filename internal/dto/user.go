package dto

import (
	"time"

	"github.com/SscSPs/ops_tracker/internal/core/domain"
)

// AddManagerRequest defines the data needed to add a manager to the roster.
type AddManagerRequest struct {
	Name          string `json:"name" binding:"required"`
	AvatarURL     string `json:"avatarURL"`
	ContactHandle string `json:"contactHandle"` // Optional
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID        string          `json:"userID"`
	Name          string          `json:"name"`
	Role          domain.UserRole `json:"role"`
	AvatarURL     string          `json:"avatarURL"`
	ContactHandle string          `json:"contactHandle,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		Name:          u.Name,
		Role:          u.Role,
		AvatarURL:     u.AvatarURL,
		ContactHandle: u.ContactHandle,
		CreatedAt:     u.CreatedAt,
	}
}

// ToListUserResponse converts a slice of domain.User to a slice of UserResponse DTOs
func ToListUserResponse(users []domain.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i := range users {
		res[i] = ToUserResponse(&users[i])
	}
	return res
}

// ListUsersResponse wraps the roster.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}
