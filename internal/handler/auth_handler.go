package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"mangahub/internal/auth"
	"mangahub/internal/service"
)

const refreshCookieName = "refresh_token"

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService   service.AuthService
	resetService  service.PasswordResetService
	verifyService service.VerificationService
	refreshTTL    time.Duration
	secureCookies bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(
	authService service.AuthService,
	resetService service.PasswordResetService,
	verifyService service.VerificationService,
	refreshTTL time.Duration,
	secureCookies bool,
) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		resetService:  resetService,
		verifyService: verifyService,
		refreshTTL:    refreshTTL,
		secureCookies: secureCookies,
	}
}

// SignupRequest represents a signup request.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token when no cookie is present.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ResetRequestRequest represents a password reset request.
type ResetRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetConfirmRequest represents a password reset confirmation.
type ResetConfirmRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// VerifyConfirmRequest represents an email verification confirmation.
type VerifyConfirmRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

// AuthResponse represents an authentication response. The refresh token
// travels only in the cookie.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	User        interface{} `json:"user,omitempty"`
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, pair, err := h.authService.Signup(c.Request().Context(), req.Email, req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(http.StatusCreated, AuthResponse{
		AccessToken: pair.AccessToken,
		User:        user,
	})
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, pair, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken: pair.AccessToken,
		User:        user,
	})
}

// Refresh godoc
// @Summary Rotate the refresh token and mint a new access token
// @Tags auth
// @Produce json
// @Success 200 {object} AuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	token := h.refreshTokenFrom(c)
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	pair, err := h.authService.Refresh(c.Request().Context(), token)
	if err != nil {
		h.clearRefreshCookie(c)
		return respondError(c, err)
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(http.StatusOK, AuthResponse{AccessToken: pair.AccessToken})
}

// Logout godoc
// @Summary Logout
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := h.refreshTokenFrom(c); token != "" {
		if err := h.authService.Logout(c.Request().Context(), token); err != nil {
			return respondError(c, err)
		}
	}
	h.clearRefreshCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// RequestPasswordReset godoc
// @Summary Request a password reset token
// @Tags auth
// @Accept json
// @Success 200 {object} map[string]string
// @Router /auth/password-reset/request [post]
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req ResetRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.resetService.Request(c.Request().Context(), req.Email); err != nil {
		return respondError(c, err)
	}
	// Same response whether or not the address is registered.
	return c.JSON(http.StatusOK, map[string]string{
		"message": "if the address is registered, a reset email has been sent",
	})
}

// ConfirmPasswordReset godoc
// @Summary Redeem a password reset token
// @Tags auth
// @Accept json
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/password-reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c echo.Context) error {
	var req ResetConfirmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.resetService.Confirm(c.Request().Context(), req.Token, req.Password); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password updated"})
}

// RequestEmailVerification godoc
// @Summary Request an email verification code
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/verify-email/request [post]
func (h *AuthHandler) RequestEmailVerification(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	userID, err := claims.UserUUID()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	if err := h.verifyService.Request(c.Request().Context(), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "verification code sent"})
}

// ConfirmEmailVerification godoc
// @Summary Confirm the email verification code
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/verify-email/confirm [post]
func (h *AuthHandler) ConfirmEmailVerification(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	userID, err := claims.UserUUID()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req VerifyConfirmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.verifyService.Confirm(c.Request().Context(), userID, req.Code); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "email verified"})
}

func (h *AuthHandler) refreshTokenFrom(c echo.Context) string {
	if cookie, err := c.Cookie(refreshCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	var req RefreshRequest
	if err := c.Bind(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/api/auth",
		MaxAge:   int(h.refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

// currentClaims returns the access claims stored by the JWT middleware.
func currentClaims(c echo.Context) (*auth.AccessClaims, error) {
	claims, ok := c.Get("user").(*auth.AccessClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}
