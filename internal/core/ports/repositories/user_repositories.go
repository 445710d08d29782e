package repositories

import (
	"context"
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a specific user by their username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByProviderID retrieves a user by external auth provider and subject.
	FindUserByProviderID(ctx context.Context, provider string, providerID string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
	// Empty hash and nil expiry clear the stored token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// MarkUserDeleted marks a user as deleted (soft delete).
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
