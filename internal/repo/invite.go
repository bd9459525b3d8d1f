package repo

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/hdcasedi/competenceo/internal/models"
)

// SaveInvite upserts keyed by code. Re-inviting the same email produces a
// new row; any prior outstanding codes for that email stay live.
func (r *GormRepo) SaveInvite(ctx context.Context, inv *models.InvitationToken) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			UpdateAll: true,
		}).
		Create(inv).Error
}

func (r *GormRepo) FindInvite(ctx context.Context, code string) (*models.InvitationToken, error) {
	var inv models.InvitationToken
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *GormRepo) DeleteInvite(ctx context.Context, code string) error {
	return r.DB.WithContext(ctx).Where("code = ?", code).Delete(&models.InvitationToken{}).Error
}
