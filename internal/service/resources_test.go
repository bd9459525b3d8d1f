package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hdcasedi/competenceo/internal/models"
	"github.com/hdcasedi/competenceo/internal/repo"
)

func newTestResourceService(t *testing.T) (*ResourceService, *repo.GormRepo) {
	t.Helper()

	r := newTestRepo(t)
	return &ResourceService{Repo: r, Guard: &Guard{Repo: r}}, r
}

func TestResourceService_CreateClassroom(t *testing.T) {
	t.Parallel()

	svc, r := newTestResourceService(t)
	ctx := context.Background()
	owner := seedUser(t, r, "prof@school.org", "s3cret", models.RoleTeacher)

	cls, d, err := svc.CreateClassroom(ctx, claimsFor(owner.ID, owner.Role), "Terminale S1", "")
	require.NoError(t, err)
	assert.Equal(t, DecisionAllow, d)
	assert.Equal(t, owner.ID, cls.TeacherID)

	_, d, err = svc.CreateClassroom(ctx, nil, "Seconde A", "")
	require.NoError(t, err)
	assert.Equal(t, DecisionDenied, d)
}

func TestResourceService_UpdateClassroom_NonOwnerIsNoOp(t *testing.T) {
	t.Parallel()

	svc, r := newTestResourceService(t)
	ctx := context.Background()
	owner := seedUser(t, r, "prof@school.org", "s3cret", models.RoleTeacher)
	intruder := seedUser(t, r, "other@school.org", "s3cret", models.RoleTeacher)

	cls, _, err := svc.CreateClassroom(ctx, claimsFor(owner.ID, owner.Role), "Terminale S1", "fermée")
	require.NoError(t, err)

	before, err := r.FindClassroom(ctx, cls.ID)
	require.NoError(t, err)

	d, err := svc.UpdateClassroom(ctx, claimsFor(intruder.ID, intruder.Role), cls.ID, "Hijacked", "x")
	require.NoError(t, err)
	assert.Equal(t, DecisionForbidden, d)

	// Snapshot comparison: stored state unchanged.
	after, err := r.FindClassroom(ctx, cls.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestResourceService_UpdateClassroom_Owner(t *testing.T) {
	t.Parallel()

	svc, r := newTestResourceService(t)
	ctx := context.Background()
	owner := seedUser(t, r, "prof@school.org", "s3cret", models.RoleTeacher)

	cls, _, err := svc.CreateClassroom(ctx, claimsFor(owner.ID, owner.Role), "Terminale S1", "")
	require.NoError(t, err)

	d, err := svc.UpdateClassroom(ctx, claimsFor(owner.ID, owner.Role), cls.ID, "Terminale S2", "déplacée")
	require.NoError(t, err)
	assert.Equal(t, DecisionAllow, d)

	after, err := r.FindClassroom(ctx, cls.ID)
	require.NoError(t, err)
	assert.Equal(t, "Terminale S2", after.Name)
}

func TestResourceService_DeleteClassroom_NonOwnerIsNoOp(t *testing.T) {
	t.Parallel()

	svc, r := newTestResourceService(t)
	ctx := context.Background()
	owner := seedUser(t, r, "prof@school.org", "s3cret", models.RoleTeacher)
	intruder := seedUser(t, r, "other@school.org", "s3cret", models.RoleTeacher)

	cls, _, err := svc.CreateClassroom(ctx, claimsFor(owner.ID, owner.Role), "Terminale S1", "")
	require.NoError(t, err)

	d, err := svc.DeleteClassroom(ctx, claimsFor(intruder.ID, intruder.Role), cls.ID)
	require.NoError(t, err)
	assert.Equal(t, DecisionForbidden, d)

	_, err = r.FindClassroom(ctx, cls.ID)
	assert.NoError(t, err)
}

func TestResourceService_UpdateClassroom_Missing(t *testing.T) {
	t.Parallel()

	svc, r := newTestResourceService(t)
	ctx := context.Background()
	owner := seedUser(t, r, "prof@school.org", "s3cret", models.RoleTeacher)

	_, err := r.ClassroomOwner(ctx, "no-such-id")
	require.Error(t, err)

	d, err := svc.UpdateClassroom(ctx, claimsFor(owner.ID, owner.Role), "no-such-id", "X", "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NotEqual(t, DecisionAllow, d)
}

// Competency ownership follows the parent domain.
func TestResourceService_Competency_OwnershipViaDomain(t *testing.T) {
	t.Parallel()

	svc, r := newTestResourceService(t)
	ctx := context.Background()
	owner := seedUser(t, r, "prof@school.org", "s3cret", models.RoleTeacher)
	intruder := seedUser(t, r, "other@school.org", "s3cret", models.RoleTeacher)

	dom, d, err := svc.CreateDomain(ctx, claimsFor(owner.ID, owner.Role), "Nombres et calculs", "")
	require.NoError(t, err)
	require.Equal(t, DecisionAllow, d)

	_, d, err = svc.CreateCompetency(ctx, claimsFor(intruder.ID, intruder.Role), dom.ID, "Fractions")
	require.NoError(t, err)
	assert.Equal(t, DecisionForbidden, d)

	comp, d, err := svc.CreateCompetency(ctx, claimsFor(owner.ID, owner.Role), dom.ID, "Fractions")
	require.NoError(t, err)
	require.Equal(t, DecisionAllow, d)

	d, err = svc.UpdateCompetency(ctx, claimsFor(intruder.ID, intruder.Role), comp.ID, "Hijacked")
	require.NoError(t, err)
	assert.Equal(t, DecisionForbidden, d)

	after, err := r.FindCompetency(ctx, comp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fractions", after.Title)
}

func TestResourceService_CreateStudent(t *testing.T) {
	t.Parallel()

	svc, _ := newTestResourceService(t)
	ctx := context.Background()
	teacher := seedUser(t, svc.Repo, "prof@school.org", "s3cret", models.RoleTeacher)

	student, d, err := svc.CreateStudent(ctx, claimsFor(teacher.ID, teacher.Role), "Lucie", "Petit", " Lucie.Petit@School.org ")
	require.NoError(t, err)
	require.Equal(t, DecisionAllow, d)
	assert.Equal(t, models.RoleStudent, student.Role)
	assert.Equal(t, "Lucie Petit", student.Name)
	require.NotNil(t, student.Email)
	assert.Equal(t, "lucie.petit@school.org", *student.Email)

	_, d, err = svc.CreateStudent(ctx, nil, "Lucie", "Petit", "")
	require.NoError(t, err)
	assert.Equal(t, DecisionDenied, d)
}

// A fully blank roster entry is dropped without touching storage.
func TestResourceService_CreateStudent_BlankIsNoOp(t *testing.T) {
	t.Parallel()

	svc, r := newTestResourceService(t)
	ctx := context.Background()
	teacher := seedUser(t, r, "prof@school.org", "s3cret", models.RoleTeacher)

	student, d, err := svc.CreateStudent(ctx, claimsFor(teacher.ID, teacher.Role), "  ", "", "")
	require.NoError(t, err)
	assert.Equal(t, DecisionAllow, d)
	assert.Nil(t, student)

	var count int64
	require.NoError(t, r.DB.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

// Students entered by name only carry no email; several of them must be
// able to coexist despite the unique email index.
func TestResourceService_CreateStudent_NoEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestResourceService(t)
	ctx := context.Background()
	teacher := seedUser(t, svc.Repo, "prof@school.org", "s3cret", models.RoleTeacher)
	claims := claimsFor(teacher.ID, teacher.Role)

	first, d, err := svc.CreateStudent(ctx, claims, "Lucie", "Petit", "")
	require.NoError(t, err)
	require.Equal(t, DecisionAllow, d)
	assert.Nil(t, first.Email)

	second, d, err := svc.CreateStudent(ctx, claims, "Marc", "Durand", "")
	require.NoError(t, err)
	require.Equal(t, DecisionAllow, d)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestResourceService_Enrollment_OwnershipViaClassroom(t *testing.T) {
	t.Parallel()

	svc, r := newTestResourceService(t)
	ctx := context.Background()
	owner := seedUser(t, r, "prof@school.org", "s3cret", models.RoleTeacher)
	intruder := seedUser(t, r, "other@school.org", "s3cret", models.RoleTeacher)
	student := seedUser(t, r, "kid@school.org", "s3cret", models.RoleStudent)

	cls, _, err := svc.CreateClassroom(ctx, claimsFor(owner.ID, owner.Role), "Terminale S1", "")
	require.NoError(t, err)

	_, d, err := svc.CreateEnrollment(ctx, claimsFor(intruder.ID, intruder.Role), cls.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, DecisionForbidden, d)

	enr, d, err := svc.CreateEnrollment(ctx, claimsFor(owner.ID, owner.Role), cls.ID, student.ID)
	require.NoError(t, err)
	require.Equal(t, DecisionAllow, d)

	d, err = svc.DeleteEnrollment(ctx, claimsFor(intruder.ID, intruder.Role), enr.ID)
	require.NoError(t, err)
	assert.Equal(t, DecisionForbidden, d)

	d, err = svc.DeleteEnrollment(ctx, claimsFor(owner.ID, owner.Role), enr.ID)
	require.NoError(t, err)
	assert.Equal(t, DecisionAllow, d)
}
