package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peraplan/peraplan_backend/internal/core/domain"
	portssvc "github.com/peraplan/peraplan_backend/internal/core/ports/services"
	"github.com/peraplan/peraplan_backend/internal/dto"
	"github.com/peraplan/peraplan_backend/internal/middleware"
	"github.com/peraplan/peraplan_backend/internal/platform/config"
)

// oauthStateCookieName stores the CSRF state between the redirect to Google
// and the callback.
const oauthStateCookieName = "oauth_state"

// GoogleOAuthHandler handles Google OAuth related requests. It supports both
// the server-side redirect flow and the client-side ID token flow.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	authHandler        *AuthHandler
	cfg                *config.Config
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	authHandler *AuthHandler,
	cfg *config.Config,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		authHandler:        authHandler,
		cfg:                cfg,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes under the
// public auth group.
func registerGoogleOAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	authHandler := NewAuthHandler(services.User, services.TokenService, cfg)
	h := NewGoogleOAuthHandler(services.GoogleOAuthHandler, services.User, authHandler, cfg)

	googleRoutes := rg.Group("/api/v1/auth/google")
	{
		googleRoutes.GET("/login", h.LoginGoogle)
		googleRoutes.GET("/callback", h.CallbackGoogle)
		googleRoutes.POST("/token", h.TokenLoginGoogle)
	}
}

// LoginGoogle godoc
// @Summary Start Google login
// @Description Redirects the browser to Google's consent screen with a CSRF state cookie.
// @Tags oauth
// @Success 307 "Redirect to Google"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) LoginGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := h.googleOAuthService.GenerateStateString(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate OAuth state", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google login"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookieName, state, 600, "/api/v1/auth/google", "", h.cfg.IsProduction, true)

	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// CallbackGoogle godoc
// @Summary Google login callback
// @Description Validates the OAuth state, exchanges the authorization code, and signs the user in.
// @Tags oauth
// @Produce json
// @Param state query string true "CSRF state"
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) CallbackGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expectedState, err := c.Cookie(oauthStateCookieName)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	// State is single use.
	c.SetCookie(oauthStateCookieName, "", -1, "/api/v1/auth/google", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code missing"})
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(c.Request.Context(), code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", "error", err)
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authorization code"})
		return
	}

	info, err := h.googleOAuthService.GetUserInfo(c.Request.Context(), oauth2Token)
	if err != nil {
		logger.Error("Failed to fetch Google user info", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch user information from Google"})
		return
	}

	h.signInGoogleUser(c, info)
}

// TokenLoginGoogle godoc
// @Summary Google ID token login
// @Description Validates a Google ID token obtained client-side and signs the user in.
// @Tags oauth
// @Accept json
// @Produce json
// @Param token body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/token [post]
func (h *GoogleOAuthHandler) TokenLoginGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		logger.Warn("Google ID token validation failed", "error", err)
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)

	if email == "" || payload.Subject == "" {
		logger.Error("Essential claims missing from Google ID token payload")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Essential user information missing from Google token"})
		return
	}

	h.signInGoogleUser(c, &domain.GoogleUserInfo{
		ID:            payload.Subject,
		Email:         email,
		VerifiedEmail: emailVerified,
		Name:          name,
	})
}

// signInGoogleUser resolves the local user for a Google identity and returns
// a token pair.
func (h *GoogleOAuthHandler) signInGoogleUser(c *gin.Context, info *domain.GoogleUserInfo) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, err := h.userService.FindOrCreateGoogleUser(c.Request.Context(), info)
	if err != nil {
		logger.Error("Failed to resolve Google user", "google_user_id", info.ID, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process Google login"})
		return
	}

	resp, err := h.authHandler.issueTokens(c, user)
	if err != nil {
		logger.Error("Failed to issue tokens for Google user", "user_id", user.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
