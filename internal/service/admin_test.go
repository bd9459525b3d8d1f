package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdcasedi/competenceo/internal/models"
)

func newTestAdminService(t *testing.T) (*AdminService, *AuthService, *models.User) {
	t.Helper()

	r := newTestRepo(t)
	admin := seedUser(t, r, "admin@test", "azerty", models.RoleAdmin)
	svc := &AdminService{Repo: r, Guard: &Guard{Repo: r}}
	return svc, newTestAuthService(r, false), admin
}

func TestAdminService_CreateTeacher(t *testing.T) {
	t.Parallel()

	svc, auth, admin := newTestAdminService(t)
	ctx := context.Background()

	user, err := svc.CreateTeacher(ctx, admin.ID, CreateTeacherInput{
		Email:     "New.Teacher@School.org",
		FirstName: "Paul",
		LastName:  "Langevin",
		Password:  "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, user.Role)
	require.NotNil(t, user.Email)
	assert.Equal(t, "new.teacher@school.org", *user.Email)
	assert.Equal(t, "Paul Langevin", user.Name)

	got, err := auth.Login(ctx, "new.teacher@school.org", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAdminService_CreateTeacher_DefaultPassword(t *testing.T) {
	t.Parallel()

	svc, auth, admin := newTestAdminService(t)
	ctx := context.Background()

	user, err := svc.CreateTeacher(ctx, admin.ID, CreateTeacherInput{Email: "blank@school.org"})
	require.NoError(t, err)

	got, err := auth.Login(ctx, "blank@school.org", "password")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAdminService_CreateTeacher_UpsertsExisting(t *testing.T) {
	t.Parallel()

	svc, _, admin := newTestAdminService(t)
	ctx := context.Background()

	student := seedUser(t, svc.Repo, "kid@school.org", "old", models.RoleStudent)

	user, err := svc.CreateTeacher(ctx, admin.ID, CreateTeacherInput{Email: "kid@school.org"})
	require.NoError(t, err)
	assert.Equal(t, student.ID, user.ID)
	assert.Equal(t, models.RoleTeacher, user.Role)
}

func TestAdminService_CreateTeacher_NonAdmin(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAdminService(t)
	ctx := context.Background()

	teacher := seedUser(t, svc.Repo, "prof@school.org", "s3cret", models.RoleTeacher)

	_, err := svc.CreateTeacher(ctx, teacher.ID, CreateTeacherInput{Email: "x@school.org"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAdminService_PromoteToTeacher(t *testing.T) {
	t.Parallel()

	svc, _, admin := newTestAdminService(t)
	ctx := context.Background()

	student := seedUser(t, svc.Repo, "kid@school.org", "s3cret", models.RoleStudent)

	require.NoError(t, svc.PromoteToTeacher(ctx, admin.ID, student.ID))

	got, err := svc.Repo.FindUserByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, got.Role)
}

func TestAdminService_DeleteTeacher(t *testing.T) {
	t.Parallel()

	svc, _, admin := newTestAdminService(t)
	ctx := context.Background()

	teacher := seedUser(t, svc.Repo, "prof@school.org", "s3cret", models.RoleTeacher)

	require.NoError(t, svc.DeleteTeacher(ctx, admin.ID, teacher.ID))

	_, err := svc.Repo.FindUserByID(ctx, teacher.ID)
	assert.Error(t, err)
}

func TestAdminService_DeleteTestAccounts(t *testing.T) {
	t.Parallel()

	svc, _, admin := newTestAdminService(t)
	ctx := context.Background()

	seedUser(t, svc.Repo, "prof@test.com", "password", models.RoleTeacher)
	seedUser(t, svc.Repo, "demo@example.com", "password", models.RoleStudent)
	kept := seedUser(t, svc.Repo, "jeanne@school.org", "s3cret", models.RoleTeacher)

	deleted, err := svc.DeleteTestAccounts(ctx, admin.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	_, err = svc.Repo.FindUserByEmail(ctx, "prof@test.com")
	assert.Error(t, err)
	_, err = svc.Repo.FindUserByID(ctx, kept.ID)
	assert.NoError(t, err)
}

func TestAdminService_DeleteTestAccounts_NonAdmin(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAdminService(t)
	ctx := context.Background()

	teacher := seedUser(t, svc.Repo, "prof@school.org", "s3cret", models.RoleTeacher)
	target := seedUser(t, svc.Repo, "throwaway@test.com", "password", models.RoleStudent)

	_, err := svc.DeleteTestAccounts(ctx, teacher.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Nothing was swept.
	_, err = svc.Repo.FindUserByID(ctx, target.ID)
	assert.NoError(t, err)
}

// An admin whose own email sits on a throwaway domain survives the sweep.
func TestAdminService_DeleteTestAccounts_SparesCaller(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AdminService{Repo: r, Guard: &Guard{Repo: r}}
	ctx := context.Background()

	admin := seedUser(t, r, "admin@test.com", "azerty", models.RoleAdmin)
	seedUser(t, r, "prof@test.com", "password", models.RoleTeacher)

	deleted, err := svc.DeleteTestAccounts(ctx, admin.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	got, err := r.FindUserByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)
}

func TestAdminService_DeleteTeacher_SelfProtection(t *testing.T) {
	t.Parallel()

	svc, _, admin := newTestAdminService(t)
	ctx := context.Background()

	err := svc.DeleteTeacher(ctx, admin.ID, admin.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// The account is untouched.
	got, err := svc.Repo.FindUserByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)
}
