package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/hdcasedi/competenceo/internal/middleware/auth"
	"github.com/hdcasedi/competenceo/internal/service"
)

type AdminHandler struct {
	Admin   *service.AdminService
	Invites *service.InviteService
	Guard   *service.Guard
}

func (h *AdminHandler) subject(c echo.Context) (string, error) {
	claims := authmw.ClaimsFrom(c)
	if claims == nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}
	return claims.Subject, nil
}

func (h *AdminHandler) CreateTeacher(c echo.Context) error {
	adminID, err := h.subject(c)
	if err != nil {
		return err
	}

	var req struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Password  string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	user, err := h.Admin.CreateTeacher(c.Request().Context(), adminID, service.CreateTeacherInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, "admin only")
		}
		return storageError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) PromoteTeacher(c echo.Context) error {
	adminID, err := h.subject(c)
	if err != nil {
		return err
	}

	if err := h.Admin.PromoteToTeacher(c.Request().Context(), adminID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, "admin only")
		}
		return storageError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "promoted"})
}

func (h *AdminHandler) DeleteTeacher(c echo.Context) error {
	adminID, err := h.subject(c)
	if err != nil {
		return err
	}

	if err := h.Admin.DeleteTeacher(c.Request().Context(), adminID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
		return storageError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

// CleanupTestAccounts bulk-deletes throwaway accounts.
func (h *AdminHandler) CleanupTestAccounts(c echo.Context) error {
	adminID, err := h.subject(c)
	if err != nil {
		return err
	}

	deleted, err := h.Admin.DeleteTestAccounts(c.Request().Context(), adminID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, "admin only")
		}
		return storageError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": deleted})
}

// IssueInvite creates an invitation code for an email. Admin only, checked
// against storage rather than the token role.
func (h *AdminHandler) IssueInvite(c echo.Context) error {
	adminID, err := h.subject(c)
	if err != nil {
		return err
	}
	if _, err := h.Guard.RequireAdmin(c.Request().Context(), adminID); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, "admin only")
		}
		return storageError(c, err)
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	code, err := h.Invites.Issue(c.Request().Context(), req.Email)
	if err != nil {
		return storageError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"code": code})
}
