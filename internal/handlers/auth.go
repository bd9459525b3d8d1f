package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	authmw "github.com/hdcasedi/competenceo/internal/middleware/auth"
	"github.com/hdcasedi/competenceo/internal/service"
)

type AuthHandler struct {
	Auth    *service.AuthService
	Invites *service.InviteService

	// SecureCookies selects the __Secure- prefixed cookie name; off for
	// non-TLS local runs.
	SecureCookies bool
}

func (h *AuthHandler) sessionCookieName() string {
	if h.SecureCookies {
		return authmw.SessionCookieSecure
	}
	return authmw.SessionCookie
}

func (h *AuthHandler) setSession(c echo.Context, token string, exp time.Time) {
	c.SetCookie(CreateCookie(h.sessionCookieName(), token, "/", exp, h.SecureCookies))
}

// Login verifies credentials and sets the session cookie. Every
// credential failure returns one generic message.
func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	user, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return storageError(c, err)
	}

	token, exp, err := h.Auth.IssueSession(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create session")
	}
	h.setSession(c, token, exp)

	return c.JSON(http.StatusOK, echo.Map{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(DeleteCookie(authmw.SessionCookieSecure, "/"))
	c.SetCookie(DeleteCookie(authmw.SessionCookie, "/"))
	c.SetCookie(DeleteCookie(authmw.SessionCookieLegacy, "/"))
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Signup redeems an invitation code into a TEACHER account and logs the
// new teacher in.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req struct {
		Code         string `json:"code"`
		Email        string `json:"email"`
		Password     string `json:"password"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		Subject      string `json:"subject"`
		SubjectOther string `json:"subject_other"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" || req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code, email and password are required")
	}

	user, err := h.Invites.Redeem(c.Request().Context(), req.Code, service.Signup{
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Subject:      req.Subject,
		SubjectOther: req.SubjectOther,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteExpired):
			return echo.NewHTTPError(http.StatusGone, "invitation expired")
		case errors.Is(err, service.ErrInviteNotFound), errors.Is(err, service.ErrInviteEmailMismatch):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid invitation code")
		default:
			return storageError(c, err)
		}
	}

	token, exp, err := h.Auth.IssueSession(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create session")
	}
	h.setSession(c, token, exp)

	return c.JSON(http.StatusOK, echo.Map{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
	})
}

// Session reports the claims of the current request, if any.
func (h *AuthHandler) Session(c echo.Context) error {
	claims := authmw.ClaimsFrom(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user_id":    claims.Subject,
		"role":       claims.Role,
		"expires_at": claims.ExpiresAt,
	})
}

// storageError converts an unreachable or broken store into a descriptive
// message instead of a stack trace.
func storageError(c echo.Context, err error) error {
	c.Logger().Errorf("storage error: %v", err)
	return echo.NewHTTPError(http.StatusServiceUnavailable, "storage unavailable, check database configuration")
}
