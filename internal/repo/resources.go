package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/hdcasedi/competenceo/internal/models"
)

// Owner lookups re-fetch the owning identity from storage on every call;
// the guard never trusts an owner id supplied by the request.

func (r *GormRepo) ClassroomOwner(ctx context.Context, id string) (string, error) {
	var cls models.Classroom
	if err := r.DB.WithContext(ctx).Select("teacher_id").Where("id = ?", id).First(&cls).Error; err != nil {
		return "", err
	}
	return cls.TeacherID, nil
}

func (r *GormRepo) DomainOwner(ctx context.Context, id string) (string, error) {
	var dom models.CompetencyDomain
	if err := r.DB.WithContext(ctx).Select("created_by_id").Where("id = ?", id).First(&dom).Error; err != nil {
		return "", err
	}
	return dom.CreatedByID, nil
}

// CompetencyOwner walks the ownership edge through the parent domain.
func (r *GormRepo) CompetencyOwner(ctx context.Context, id string) (string, error) {
	var comp models.Competency
	if err := r.DB.WithContext(ctx).Select("domain_id").Where("id = ?", id).First(&comp).Error; err != nil {
		return "", err
	}
	return r.DomainOwner(ctx, comp.DomainID)
}

// EnrollmentOwner walks the ownership edge through the classroom.
func (r *GormRepo) EnrollmentOwner(ctx context.Context, id string) (string, error) {
	var enr models.Enrollment
	if err := r.DB.WithContext(ctx).Select("classroom_id").Where("id = ?", id).First(&enr).Error; err != nil {
		return "", err
	}
	return r.ClassroomOwner(ctx, enr.ClassroomID)
}

func (r *GormRepo) CreateClassroom(ctx context.Context, cls *models.Classroom) error {
	if cls.ID == "" {
		cls.ID = uuid.NewString()
	}
	return r.DB.WithContext(ctx).Create(cls).Error
}

func (r *GormRepo) SaveClassroom(ctx context.Context, cls *models.Classroom) error {
	return r.DB.WithContext(ctx).Save(cls).Error
}

func (r *GormRepo) FindClassroom(ctx context.Context, id string) (*models.Classroom, error) {
	var cls models.Classroom
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&cls).Error; err != nil {
		return nil, err
	}
	return &cls, nil
}

func (r *GormRepo) DeleteClassroom(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Classroom{}).Error
}

func (r *GormRepo) CreateDomain(ctx context.Context, dom *models.CompetencyDomain) error {
	if dom.ID == "" {
		dom.ID = uuid.NewString()
	}
	return r.DB.WithContext(ctx).Create(dom).Error
}

func (r *GormRepo) SaveDomain(ctx context.Context, dom *models.CompetencyDomain) error {
	return r.DB.WithContext(ctx).Save(dom).Error
}

func (r *GormRepo) FindDomain(ctx context.Context, id string) (*models.CompetencyDomain, error) {
	var dom models.CompetencyDomain
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&dom).Error; err != nil {
		return nil, err
	}
	return &dom, nil
}

func (r *GormRepo) DeleteDomain(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.CompetencyDomain{}).Error
}

func (r *GormRepo) CreateCompetency(ctx context.Context, comp *models.Competency) error {
	if comp.ID == "" {
		comp.ID = uuid.NewString()
	}
	return r.DB.WithContext(ctx).Create(comp).Error
}

func (r *GormRepo) FindCompetency(ctx context.Context, id string) (*models.Competency, error) {
	var comp models.Competency
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&comp).Error; err != nil {
		return nil, err
	}
	return &comp, nil
}

func (r *GormRepo) SaveCompetency(ctx context.Context, comp *models.Competency) error {
	return r.DB.WithContext(ctx).Save(comp).Error
}

func (r *GormRepo) DeleteCompetency(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Competency{}).Error
}

func (r *GormRepo) CreateEnrollment(ctx context.Context, enr *models.Enrollment) error {
	if enr.ID == "" {
		enr.ID = uuid.NewString()
	}
	return r.DB.WithContext(ctx).Create(enr).Error
}

func (r *GormRepo) DeleteEnrollment(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Enrollment{}).Error
}
