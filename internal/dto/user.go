package dto

import (
	"github.com/peraplan/peraplan_backend/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a new user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// LoginRequest defines the credentials for local login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries a Google ID token from the client-side flow.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// RefreshTokenRequest defines the payload for refreshing an access token.
type RefreshTokenRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateUserRequest struct {
	Name *string `json:"name"`
}

// UserResponse defines the public view of a user.
type UserResponse struct {
	UserID     string `json:"userID"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsVerified bool   `json:"isVerified"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:     user.UserID,
		Username:   user.Username,
		Name:       user.Name,
		Email:      user.Email,
		IsVerified: user.IsVerified,
	}
}
