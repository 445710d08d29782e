package models

import (
	"database/sql"
	"time"
)

// User represents a user of the application.
// Includes local credentials and external provider linkage.
type User struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"` // Empty for external-provider users
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	AuthProvider string         `db:"auth_provider"`
	ProviderID   sql.NullString `db:"provider_id"`
	IsVerified   bool           `db:"is_verified"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	// Refresh token fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
