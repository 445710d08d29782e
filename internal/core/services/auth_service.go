package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/peraplan/peraplan_backend/internal/apperrors"
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	portssvc "github.com/peraplan/peraplan_backend/internal/core/ports/services"
	"github.com/peraplan/peraplan_backend/internal/platform/config"
	"github.com/peraplan/peraplan_backend/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService implements TokenSvcFacade for JWT access tokens and opaque
// refresh tokens.
type tokenService struct {
	cfg         *config.Config
	userService portssvc.UserSvcFacade
}

// NewTokenService creates a new token service.
func NewTokenService(cfg *config.Config, userService portssvc.UserSvcFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:         cfg,
		userService: userService,
	}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a new opaque refresh token for the given user.
// Only its hash is persisted; the raw value goes to the client once.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	rawRefreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate secure random string for refresh token: %w", err)
	}

	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)

	return rawRefreshToken, expiryTime, nil
}

// ValidateAndParseRefreshToken validates a refresh token string against the
// user's stored hash and returns the user when it matches.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to retrieve user for refresh token validation: %w", err)
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}

	if !utils.CompareRefreshTokenHash(refreshTokenString, user.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

// googleOAuthHandlerService implements GoogleOAuthHandlerSvcFacade.
type googleOAuthHandlerService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// GenerateStateString creates a secure random string used as a CSRF token for
// the OAuth flow.
func (s *googleOAuthHandlerService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthHandlerService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// GetUserInfo uses the access token to get user information from Google.
func (s *googleOAuthHandlerService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	client := s.oauth2Config.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to get user info from google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google api returned non-200 status for userinfo: %s", resp.Status)
	}

	var userInfo domain.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info from google: %w", err)
	}

	return &userInfo, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and returns
// its payload.
func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}

	return payload, nil
}
