package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	authmw "github.com/hdcasedi/competenceo/internal/middleware/auth"
	"github.com/hdcasedi/competenceo/internal/service"
)

// ResourceHandler exposes the guarded mutations. Forbidden outcomes and
// missing resources get the same response, so a caller cannot probe which
// records exist.
type ResourceHandler struct {
	Resources *service.ResourceService
}

func decisionError(c echo.Context, d service.Decision, err error) error {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "not found")
		}
		return storageError(c, err)
	}
	switch d {
	case service.DecisionDenied:
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	case service.DecisionForbidden:
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return nil
}

func (h *ResourceHandler) CreateClassroom(c echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	cls, d, err := h.Resources.CreateClassroom(c.Request().Context(), authmw.ClaimsFrom(c), req.Name, req.Description)
	if d != service.DecisionAllow || err != nil {
		return decisionError(c, d, err)
	}
	return c.JSON(http.StatusCreated, cls)
}

func (h *ResourceHandler) UpdateClassroom(c echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	d, err := h.Resources.UpdateClassroom(c.Request().Context(), authmw.ClaimsFrom(c), c.Param("id"), req.Name, req.Description)
	if d != service.DecisionAllow || err != nil {
		return decisionError(c, d, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "updated"})
}

func (h *ResourceHandler) DeleteClassroom(c echo.Context) error {
	d, err := h.Resources.DeleteClassroom(c.Request().Context(), authmw.ClaimsFrom(c), c.Param("id"))
	if d != service.DecisionAllow || err != nil {
		return decisionError(c, d, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

func (h *ResourceHandler) CreateDomain(c echo.Context) error {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	dom, d, err := h.Resources.CreateDomain(c.Request().Context(), authmw.ClaimsFrom(c), req.Title, req.Description)
	if d != service.DecisionAllow || err != nil {
		return decisionError(c, d, err)
	}
	return c.JSON(http.StatusCreated, dom)
}

func (h *ResourceHandler) UpdateDomain(c echo.Context) error {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	d, err := h.Resources.UpdateDomain(c.Request().Context(), authmw.ClaimsFrom(c), c.Param("id"), req.Title, req.Description)
	if d != service.DecisionAllow || err != nil {
		return decisionError(c, d, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "updated"})
}

func (h *ResourceHandler) DeleteDomain(c echo.Context) error {
	d, err := h.Resources.DeleteDomain(c.Request().Context(), authmw.ClaimsFrom(c), c.Param("id"))
	if d != service.DecisionAllow || err != nil {
		return decisionError(c, d, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

func (h *ResourceHandler) CreateCompetency(c echo.Context) error {
	var req struct {
		DomainID string `json:"domain_id"`
		Title    string `json:"title"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.DomainID == "" || req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "domain_id and title are required")
	}

	comp, d, err := h.Resources.CreateCompetency(c.Request().Context(), authmw.ClaimsFrom(c), req.DomainID, req.Title)
	if d != service.DecisionAllow || err != nil {
		return decisionError(c, d, err)
	}
	return c.JSON(http.StatusCreated, comp)
}

func (h *ResourceHandler) UpdateCompetency(c echo.Context) error {
	var req struct {
		Title string `json:"title"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	d, err := h.Resources.UpdateCompetency(c.Request().Context(), authmw.ClaimsFrom(c), c.Param("id"), req.Title)
	if d != service.DecisionAllow || err != nil {
		return decisionError(c, d, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "updated"})
}

func (h *ResourceHandler) DeleteCompetency(c echo.Context) error {
	d, err := h.Resources.DeleteCompetency(c.Request().Context(), authmw.ClaimsFrom(c), c.Param("id"))
	if d != service.DecisionAllow || err != nil {
		return decisionError(c, d, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

// CreateStudent accepts partially filled rosters; a fully blank entry is
// quietly dropped, matching the roster form's behavior.
func (h *ResourceHandler) CreateStudent(c echo.Context) error {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	student, d, err := h.Resources.CreateStudent(c.Request().Context(), authmw.ClaimsFrom(c), req.FirstName, req.LastName, req.Email)
	if d != service.DecisionAllow || err != nil {
		return decisionError(c, d, err)
	}
	if student == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusCreated, student)
}

func (h *ResourceHandler) CreateEnrollment(c echo.Context) error {
	var req struct {
		ClassroomID string `json:"classroom_id"`
		StudentID   string `json:"student_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ClassroomID == "" || req.StudentID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "classroom_id and student_id are required")
	}

	enr, d, err := h.Resources.CreateEnrollment(c.Request().Context(), authmw.ClaimsFrom(c), req.ClassroomID, req.StudentID)
	if d != service.DecisionAllow || err != nil {
		return decisionError(c, d, err)
	}
	return c.JSON(http.StatusCreated, enr)
}

func (h *ResourceHandler) DeleteEnrollment(c echo.Context) error {
	d, err := h.Resources.DeleteEnrollment(c.Request().Context(), authmw.ClaimsFrom(c), c.Param("id"))
	if d != service.DecisionAllow || err != nil {
		return decisionError(c, d, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
