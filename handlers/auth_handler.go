package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/listener-text-service/internal/domain"
	"github.com/onurcolak/listener-text-service/pkg/logger"
	"github.com/onurcolak/listener-text-service/pkg/response"
	"github.com/onurcolak/listener-text-service/pkg/validator"
)

type authService interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Logout(ctx context.Context, session *domain.Session) error
}

type sessionCookies interface {
	Lookup(r *http.Request) (*domain.Session, error)
	Cookie(session *domain.Session) *http.Cookie
	ClearCookie() *http.Cookie
}

type AuthHandler struct {
	auth     authService
	sessions sessionCookies
}

func NewAuthHandler(auth authService, sessions sessionCookies) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
}

type VerifyResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// Login godoc
// @Summary Log in
// @Description Checks the staff credential and issues the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 429 {object} map[string]any
// @Router /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	session, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return response.Unauthorized(c, "invalid credentials")
		}
		return writeError(c, err)
	}

	c.SetCookie(h.sessions.Cookie(session))

	return response.Ok(c, LoginResponse{Success: true, Username: session.Username})
}

// Verify godoc
// @Summary Session check
// @Tags auth
// @Produce json
// @Success 200 {object} VerifyResponse
// @Router /api/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	session, err := h.sessions.Lookup(c.Request())
	if err != nil {
		logger.Warnf("Session lookup failed on verify: %v", err)
	}
	if session == nil {
		return response.Ok(c, VerifyResponse{Authenticated: false})
	}

	return response.Ok(c, VerifyResponse{Authenticated: true, Username: session.Username})
}

// Logout godoc
// @Summary Log out
// @Description Destroys the session, closes its live connections and clears the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Router /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session, err := h.sessions.Lookup(c.Request())
	if err != nil {
		logger.Warnf("Session lookup failed on logout: %v", err)
	}

	if session != nil {
		if err := h.auth.Logout(c.Request().Context(), session); err != nil {
			return writeError(c, err)
		}
	}

	c.SetCookie(h.sessions.ClearCookie())

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
