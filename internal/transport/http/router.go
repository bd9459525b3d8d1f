package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/hdcasedi/competenceo/internal/handlers"
)

type Deps struct {
	AuthHandler     *handlers.AuthHandler
	AdminHandler    *handlers.AdminHandler
	ResourceHandler *handlers.ResourceHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	authapi := e.Group("/api/auth")
	authapi.POST("/login", d.AuthHandler.Login)
	authapi.POST("/logout", d.AuthHandler.Logout)
	authapi.POST("/signup", d.AuthHandler.Signup)
	authapi.GET("/session", d.AuthHandler.Session)

	v1 := e.Group("/api/v1")

	admin := v1.Group("/admin")
	admin.POST("/teachers", d.AdminHandler.CreateTeacher)
	admin.POST("/teachers/:id/promote", d.AdminHandler.PromoteTeacher)
	admin.DELETE("/teachers/:id", d.AdminHandler.DeleteTeacher)
	admin.POST("/invites", d.AdminHandler.IssueInvite)
	admin.DELETE("/test-accounts", d.AdminHandler.CleanupTestAccounts)

	classrooms := v1.Group("/classrooms")
	classrooms.POST("", d.ResourceHandler.CreateClassroom)
	classrooms.PATCH("/:id", d.ResourceHandler.UpdateClassroom)
	classrooms.DELETE("/:id", d.ResourceHandler.DeleteClassroom)

	domains := v1.Group("/domains")
	domains.POST("", d.ResourceHandler.CreateDomain)
	domains.PATCH("/:id", d.ResourceHandler.UpdateDomain)
	domains.DELETE("/:id", d.ResourceHandler.DeleteDomain)

	competencies := v1.Group("/competencies")
	competencies.POST("", d.ResourceHandler.CreateCompetency)
	competencies.PATCH("/:id", d.ResourceHandler.UpdateCompetency)
	competencies.DELETE("/:id", d.ResourceHandler.DeleteCompetency)

	students := v1.Group("/students")
	students.POST("", d.ResourceHandler.CreateStudent)

	enrollments := v1.Group("/enrollments")
	enrollments.POST("", d.ResourceHandler.CreateEnrollment)
	enrollments.DELETE("/:id", d.ResourceHandler.DeleteEnrollment)
}
