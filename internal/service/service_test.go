package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hdcasedi/competenceo/internal/hash"
	"github.com/hdcasedi/competenceo/internal/models"
	"github.com/hdcasedi/competenceo/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.InvitationToken{},
		&models.Classroom{},
		&models.CompetencyDomain{},
		&models.Competency{},
		&models.Enrollment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return &repo.GormRepo{DB: db}
}

func seedUser(t *testing.T, r *repo.GormRepo, email, password string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{Email: &email, Role: role}
	if password != "" {
		pwHash, err := hash.HashPassword(password)
		require.NoError(t, err)
		user.PasswordHash = &pwHash
	}
	require.NoError(t, r.CreateUser(context.Background(), user))
	return user
}

func newTestAuthService(r *repo.GormRepo, devLogin bool) *AuthService {
	return &AuthService{
		Repo:       r,
		Secret:     []byte("test-session-secret"),
		SessionTTL: 30 * 24 * time.Hour,
		DevLogin:   devLogin,
	}
}
