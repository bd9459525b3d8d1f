package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hdcasedi/competenceo/internal/models"
)

// NormalizeEmail is applied before every lookup and write so email
// comparison stays case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *GormRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Email != nil {
		email := NormalizeEmail(*u.Email)
		u.Email = &email
	}
	return r.DB.WithContext(ctx).Create(u).Error
}

// UpsertTeacherByEmail creates the user as a TEACHER, or upgrades an
// existing account to TEACHER with fresh profile fields and password hash.
func (r *GormRepo) UpsertTeacherByEmail(ctx context.Context, u *models.User) (*models.User, error) {
	if u.Email == nil {
		return nil, errors.New("email required")
	}
	email := NormalizeEmail(*u.Email)
	u.Email = &email
	u.Role = models.RoleTeacher

	var existing models.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		existing.Role = models.RoleTeacher
		existing.FirstName = u.FirstName
		existing.LastName = u.LastName
		existing.Name = u.Name
		existing.PasswordHash = u.PasswordHash
		if u.Subject != "" {
			existing.Subject = u.Subject
			existing.SubjectOther = u.SubjectOther
		}
		if err := r.DB.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.CreateUser(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	default:
		return nil, err
	}
}

func (r *GormRepo) UpdateUserRole(ctx context.Context, id string, role models.Role) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (r *GormRepo) DeleteUser(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error
}

// DeleteUsersByEmailPatterns removes every user whose email matches one of
// the LIKE patterns, sparing the account with keepID. Returns the number
// of rows removed.
func (r *GormRepo) DeleteUsersByEmailPatterns(ctx context.Context, patterns []string, keepID string) (int64, error) {
	if len(patterns) == 0 {
		return 0, nil
	}
	match := r.DB.Where("email LIKE ?", patterns[0])
	for _, p := range patterns[1:] {
		match = match.Or("email LIKE ?", p)
	}
	res := r.DB.WithContext(ctx).
		Where("id <> ?", keepID).
		Where(match).
		Delete(&models.User{})
	return res.RowsAffected, res.Error
}
