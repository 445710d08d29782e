package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/gin-gonic/gin"
	"github.com/peraplan/peraplan_backend/internal/apperrors"
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	portssvc "github.com/peraplan/peraplan_backend/internal/core/ports/services"
	"github.com/peraplan/peraplan_backend/internal/dto"
	"github.com/peraplan/peraplan_backend/internal/middleware"
	"github.com/peraplan/peraplan_backend/internal/platform/config"
	"github.com/peraplan/peraplan_backend/internal/utils"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.TokenService, cfg)

	// Credential endpoints get 5 requests per minute per IP.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/register", limitMiddleware, h.Register)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", middleware.AuthMiddleware(cfg.JWTSecret), h.Logout)
	}
}

// issueTokens generates an access and refresh token pair, persists the
// refresh token hash, and sets the refresh token cookie.
func (h *AuthHandler) issueTokens(c *gin.Context, user *domain.User) (*dto.LoginResponse, error) {
	ctx := c.Request.Context()

	accessToken, accessExpiry, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := h.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiry); err != nil {
		return nil, err
	}

	h.setRefreshTokenCookie(c, refreshToken, refreshExpiry.Unix())

	return &dto.LoginResponse{
		Token:         accessToken,
		TokenExpiry:   accessExpiry,
		RefreshToken:  refreshToken,
		RefreshExpiry: refreshExpiry,
		User:          dto.ToUserResponse(user),
	}, nil
}

func (h *AuthHandler) setRefreshTokenCookie(c *gin.Context, token string, expiryUnix int64) {
	maxAge := int(expiryUnix - time.Now().Unix())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, token, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

func (h *AuthHandler) clearRefreshTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns an access token plus a refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
			return
		}
		logger.Error("Failed to authenticate user", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to authenticate"})
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		logger.Error("Failed to issue tokens", "user_id", user.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user account with local credentials.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username already taken"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	newUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Username is already taken"})
			return
		}
		logger.Error("Failed to register user", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// Refresh godoc
// @Summary Refresh access token
// @Description Exchanges a valid refresh token for a new token pair. The refresh
// token is read from the request body or, failing that, the refresh cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token details"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Fall back to the HTTPOnly cookie set at login.
		cookieToken, cookieErr := c.Cookie(h.cfg.RefreshTokenCookieName)
		if cookieErr != nil || req.UserID == "" {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Refresh token required"})
			return
		}
		req.RefreshToken = cookieToken
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), req.UserID, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRefreshTokenExpired):
			h.clearRefreshTokenCookie(c)
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token expired"})
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		default:
			logger.Error("Failed to validate refresh token", "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to refresh token"})
		}
		return
	}

	// Rotate: every successful refresh invalidates the previous token.
	resp, err := h.issueTokens(c, user)
	if err != nil {
		logger.Error("Failed to issue rotated tokens", "user_id", user.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, dto.RefreshTokenResponse{
		Token:         resp.Token,
		TokenExpiry:   resp.TokenExpiry,
		RefreshToken:  resp.RefreshToken,
		RefreshExpiry: resp.RefreshExpiry,
	})
}

// Logout godoc
// @Summary Log out
// @Description Clears the stored refresh token and the refresh cookie. Requires a valid access token.
// @Tags auth
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	if err := h.userService.ClearRefreshToken(c.Request.Context(), userID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to clear refresh token", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log out"})
		return
	}

	h.clearRefreshTokenCookie(c)
	c.Status(http.StatusNoContent)
}
