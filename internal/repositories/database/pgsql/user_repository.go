package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peraplan/peraplan_backend/internal/apperrors"
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	portsrepo "github.com/peraplan/peraplan_backend/internal/core/ports/repositories"
	"github.com/peraplan/peraplan_backend/internal/models"
	"github.com/peraplan/peraplan_backend/internal/utils/mapping"
)

const userColumns = `user_id, username, password_hash, name, email, auth_provider, provider_id, is_verified, refresh_token_hash, refresh_token_expiry_time, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.Name,
		&m.Email,
		&m.AuthProvider,
		&m.ProviderID,
		&m.IsVerified,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

// SaveUser inserts a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)

	query := `
		INSERT INTO users (user_id, username, password_hash, name, email, auth_provider, provider_id, is_verified, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.PasswordHash,
		m.Name,
		m.Email,
		m.AuthProvider,
		m.ProviderID,
		m.IsVerified,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, m.Username)
		}
		return fmt.Errorf("failed to save user %s: %w", m.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user by ID, excluding soft-deleted users.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL;`

	m, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	user := mapping.ToDomainUser(m)
	return &user, nil
}

// FindUserByUsername retrieves a user by username, excluding soft-deleted users.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND deleted_at IS NULL;`

	m, err := scanUser(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}

	user := mapping.ToDomainUser(m)
	return &user, nil
}

// FindUserByProviderID retrieves a user by external auth provider and subject.
func (r *PgxUserRepository) FindUserByProviderID(ctx context.Context, provider string, providerID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE auth_provider = $1 AND provider_id = $2 AND deleted_at IS NULL;`

	m, err := scanUser(r.Pool.QueryRow(ctx, query, provider, providerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by provider %s: %w", provider, err)
	}

	user := mapping.ToDomainUser(m)
	return &user, nil
}

// FindUsers retrieves a paginated list of users, excluding soft-deleted ones.
func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at
		LIMIT $1 OFFSET $2;
	`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}

	return mapping.ToDomainUserSlice(users), nil
}

// UpdateUser updates a user's editable profile fields.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)

	query := `
		UPDATE users
		SET name = $2, is_verified = $3, last_updated_at = $4, last_updated_by = $5
		WHERE user_id = $1 AND deleted_at IS NULL;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Name,
		m.IsVerified,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update user %s: %w", m.UserID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
// An empty hash with nil expiry clears the stored token.
func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time) error {
	var hash sql.NullString
	if refreshTokenHash != "" {
		hash = sql.NullString{String: refreshTokenHash, Valid: true}
	}
	var expiry sql.NullTime
	if expiryTime != nil {
		expiry = sql.NullTime{Time: *expiryTime, Valid: true}
	}

	query := `
		UPDATE users
		SET refresh_token_hash = $2, refresh_token_expiry_time = $3
		WHERE user_id = $1 AND deleted_at IS NULL;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, userID, hash, expiry)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkUserDeleted soft-deletes a user.
func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	query := `
		UPDATE users
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $1 AND deleted_at IS NULL;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, userID, deletedAt, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark user %s deleted: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
