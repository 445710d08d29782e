package domain

import "time"

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents a user of the application in the domain.
type User struct {
	UserID       string       `json:"userID"` // Primary Key (UUID)
	Username     string       `json:"username"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Empty for external-provider users
	AuthProvider AuthProvider `json:"authProvider"`
	ProviderID   string       `json:"-"` // Subject from the external provider, if any
	IsVerified   bool         `json:"isVerified"`

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// GoogleUserInfo mirrors the response of Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}
