package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"linkpage.backend/internal/config"
	"linkpage.backend/internal/domain/entities"
	domainerrors "linkpage.backend/internal/domain/errors"
	"linkpage.backend/internal/interfaces/http/middleware"
	"linkpage.backend/internal/interfaces/http/response"
	"linkpage.backend/internal/usecases"
)

const (
	refreshCookieName = "refresh_token"
	// the cookie only travels to the auth endpoints
	refreshCookiePath = "/auth"

	forgotPasswordAck = "If an account with that email exists, a reset link has been sent."
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
	cookieCfg   config.CookieConfig
	refreshTTL  time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase, cookieCfg config.CookieConfig, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		cookieCfg:   cookieCfg,
		refreshTTL:  refreshTTL,
	}
}

func (h *AuthHandler) sameSite() http.SameSite {
	switch h.cookieCfg.SameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(h.sameSite())
	c.SetCookie(refreshCookieName, token, int(h.refreshTTL.Seconds()), refreshCookiePath, h.cookieCfg.Domain, h.cookieCfg.Secure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(h.sameSite())
	c.SetCookie(refreshCookieName, "", -1, refreshCookiePath, h.cookieCfg.Domain, h.cookieCfg.Secure, true)
}

// Register handles user registration
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user)
}

// Login handles form-encoded credential login. The access token goes in
// the body, the refresh token only in the scoped cookie.
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		response.Error(c, domainerrors.BadRequest("username and password are required"))
		return
	}

	pair, _, err := h.authUsecase.Login(c.Request.Context(), username, password)
	if err != nil {
		if err == domainerrors.ErrInvalidCredentials {
			response.ErrorWithStatus(c, http.StatusUnauthorized, "incorrect email or password")
			return
		}
		response.Error(c, err)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	response.Success(c, http.StatusOK, gin.H{
		"access_token": pair.AccessToken,
		"token_type":   "bearer",
	})
}

// Refresh rotates the token pair using the cookie refresh token. Any
// failure clears the cookie so clients stop retrying a dead token.
// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		h.clearRefreshCookie(c)
		response.ErrorWithStatus(c, http.StatusUnauthorized, "refresh token missing")
		return
	}

	pair, err := h.authUsecase.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.clearRefreshCookie(c)
		response.ErrorWithStatus(c, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	response.Success(c, http.StatusOK, gin.H{
		"access_token": pair.AccessToken,
		"token_type":   "bearer",
	})
}

// Logout clears the refresh cookie. The live access token stays valid
// until its own expiry.
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearRefreshCookie(c)
	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated user
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	user, err := h.authUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// ValidateEmail reports email availability
// GET /auth/validate/email/:email
func (h *AuthHandler) ValidateEmail(c *gin.Context) {
	available, err := h.authUsecase.IsEmailAvailable(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"available": available})
}

// ValidateUsername reports username availability
// GET /auth/validate/username/:username
func (h *AuthHandler) ValidateUsername(c *gin.Context) {
	available, err := h.authUsecase.IsUsernameAvailable(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"available": available})
}

// VerifyEmail redeems a verification token
// GET /auth/verify-email?token=
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, domainerrors.BadRequest("token is required"))
		return
	}

	if err := h.authUsecase.VerifyEmail(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "email verified"})
}

// ResendVerification reissues the verification token for the
// authenticated user
// POST /auth/resend-verification
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	if err := h.authUsecase.ResendVerification(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "verification email sent"})
}

// ForgotPassword starts a password reset. The body is identical whether or
// not the email exists.
// POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.authUsecase.ForgotPassword(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"message": forgotPasswordAck})
}

// ResetPassword finishes a password reset with a token from the email
// POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input entities.ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.authUsecase.ResetPassword(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "password updated"})
}
