package service

import (
	"context"
	"strings"

	"github.com/hdcasedi/competenceo/internal/hash"
	"github.com/hdcasedi/competenceo/internal/models"
	"github.com/hdcasedi/competenceo/internal/repo"
)

// AdminService covers the teacher-administration actions. Every method
// re-verifies ADMIN against storage through the guard's slow path before
// touching anything.
type AdminService struct {
	Repo  *repo.GormRepo
	Guard *Guard
}

type CreateTeacherInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// CreateTeacher upserts an account by email into the TEACHER role. A blank
// password falls back to "password", matching the admin form's default.
func (s *AdminService) CreateTeacher(ctx context.Context, adminID string, in CreateTeacherInput) (*models.User, error) {
	if _, err := s.Guard.RequireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	password := strings.TrimSpace(in.Password)
	if password == "" {
		password = "password"
	}
	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(strings.TrimSpace(in.FirstName) + " " + strings.TrimSpace(in.LastName))
	user := &models.User{
		Email:        &in.Email,
		PasswordHash: &pwHash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Name:         name,
	}
	return s.Repo.UpsertTeacherByEmail(ctx, user)
}

func (s *AdminService) PromoteToTeacher(ctx context.Context, adminID, targetID string) error {
	if _, err := s.Guard.RequireAdmin(ctx, adminID); err != nil {
		return err
	}
	if targetID == "" {
		return ErrForbidden
	}
	return s.Repo.UpdateUserRole(ctx, targetID, models.RoleTeacher)
}

// DeleteTeacher removes an account. An admin can never delete itself
// through this path.
func (s *AdminService) DeleteTeacher(ctx context.Context, adminID, targetID string) error {
	admin, err := s.Guard.RequireAdmin(ctx, adminID)
	if err != nil {
		return err
	}
	if targetID == "" || targetID == admin.ID {
		return ErrForbidden
	}
	return s.Repo.DeleteUser(ctx, targetID)
}

// Throwaway domains used by the dev bootstrap and demo fixtures.
var testEmailPatterns = []string{"%@test.com", "%@example.com"}

// DeleteTestAccounts sweeps out accounts created during demos: every user
// whose email belongs to a throwaway domain, except the calling admin.
// Returns the number of accounts removed.
func (s *AdminService) DeleteTestAccounts(ctx context.Context, adminID string) (int64, error) {
	admin, err := s.Guard.RequireAdmin(ctx, adminID)
	if err != nil {
		return 0, err
	}
	return s.Repo.DeleteUsersByEmailPatterns(ctx, testEmailPatterns, admin.ID)
}
