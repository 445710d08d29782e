package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peraplan/peraplan_backend/internal/apperrors"
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	portsrepo "github.com/peraplan/peraplan_backend/internal/core/ports/repositories"
	portssvc "github.com/peraplan/peraplan_backend/internal/core/ports/services"
	"github.com/peraplan/peraplan_backend/internal/dto"
	"github.com/peraplan/peraplan_backend/internal/utils"
)

// userService implements portssvc.UserSvcFacade.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: passwordHash,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user", slog.String("username", req.Username))
		}
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID))
	return &user, nil
}

// FindOrCreateGoogleUser links a Google identity to a user, creating one on
// first login. The Google subject is the stable key; email is informational.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByProviderID(ctx, string(domain.ProviderGoogle), info.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up google user", slog.String("provider_id", info.ID))
		return nil, err
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     strings.ToLower(info.Email),
		Name:         info.Name,
		Email:        strings.ToLower(info.Email),
		AuthProvider: domain.ProviderGoogle,
		ProviderID:   info.ID,
		IsVerified:   info.VerifiedEmail,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save google user", slog.String("provider_id", info.ID))
		return nil, err
	}

	s.LogInfo(ctx, "Google user created", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user by username")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	if userID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, &refreshTokenExpiryTime); err != nil {
		s.LogError(ctx, err, "Failed to update refresh token", slog.String("user_id", userID))
		return err
	}
	return nil
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, "", nil); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token", slog.String("user_id", userID))
		return err
	}
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if userID != requestingUserID {
		return apperrors.ErrForbidden
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now(), requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

// AuthenticateUser verifies local credentials. External-provider users have
// no password hash and always fail local authentication.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
