package dto

import (
	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
)

// RegisterRequest represents the API request for creating an account
type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Password    string `json:"password" binding:"required"`
	Password2   string `json:"password2" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role" binding:"omitempty,oneof=ADMIN FINANCE"`
}

// UpdateProfileRequest represents the API request for self-service profile edits
type UpdateProfileRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

// UpdateRoleRequest represents the admin-only role assignment request
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN FINANCE"`
}

// UserResponse represents the API view of an account with its profile
type UserResponse struct {
	ID          uint64 `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Role        string `json:"role,omitempty"`
	RoleDisplay string `json:"roleDisplay,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// FromUser maps a user entity into its API representation
func FromUser(user *entity.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if user.Profile != nil {
		resp.Role = string(user.Profile.Role)
		resp.RoleDisplay = user.Profile.Role.Display()
		resp.PhoneNumber = user.Profile.PhoneNumber
	}
	return resp
}

// FromUsers maps a slice of user entities
func FromUsers(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}

// ProfileResponse represents the API view of a bare profile
type ProfileResponse struct {
	ID          uint64 `json:"id"`
	UserID      uint64 `json:"userId"`
	Role        string `json:"role"`
	RoleDisplay string `json:"roleDisplay"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// FromProfile maps a profile entity into its API representation
func FromProfile(profile *entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          profile.ID,
		UserID:      profile.UserID,
		Role:        string(profile.Role),
		RoleDisplay: profile.Role.Display(),
		PhoneNumber: profile.PhoneNumber,
	}
}
