package dto

import (
	"time"

	"github.com/petrobook/petrobook/internal/core/domain"
)

// RegisterUserRequest defines the data needed to register a local user.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the credentials for a local login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID       string              `json:"userID"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	AuthProvider domain.AuthProvider `json:"authProvider"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse converts a domain user to the response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Name:         u.Name,
		Email:        u.Email,
		AuthProvider: u.AuthProvider,
		CreatedAt:    u.CreatedAt,
	}
}
