package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hdcasedi/competenceo/internal/hash"
	"github.com/hdcasedi/competenceo/internal/logging"
	"github.com/hdcasedi/competenceo/internal/models"
	"github.com/hdcasedi/competenceo/internal/repo"
	"github.com/hdcasedi/competenceo/internal/tokens"
)

// Seed account for demo environments without a seeding step. Only reachable
// when DevLogin was resolved true at startup.
const (
	devSeedEmail    = "prof@test.com"
	devSeedPassword = "password"
)

type AuthService struct {
	Repo       *repo.GormRepo
	Secret     []byte
	SessionTTL time.Duration
	DevLogin   bool
}

// Login verifies an (email, password) pair. Bad credentials in any form
// come back as ErrInvalidCredentials; only storage failures surface as
// other errors.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	email = repo.NormalizeEmail(email)

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if !s.DevLogin || email != devSeedEmail || password != devSeedPassword {
			return nil, ErrInvalidCredentials
		}
		user, err = s.bootstrapSeedTeacher(ctx)
		if err != nil {
			return nil, err
		}
		l.Info("dev seed teacher created", "user_id", user.ID)
		return user, nil
	}

	if user.PasswordHash == nil {
		l.Warn("login failed", "reason", "no password hash set")
		return nil, ErrInvalidCredentials
	}
	if !hash.CheckPassword(*user.PasswordHash, password) {
		l.Warn("login failed", "reason", "password mismatch")
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) bootstrapSeedTeacher(ctx context.Context) (*models.User, error) {
	pwHash, err := hash.HashPassword(devSeedPassword)
	if err != nil {
		return nil, err
	}
	email := devSeedEmail
	user := &models.User{
		Email:        &email,
		PasswordHash: &pwHash,
		FirstName:    "Marie",
		LastName:     "Curie",
		Name:         "Marie Curie",
		Role:         models.RoleTeacher,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// IssueSession mints the stateless token for a verified identity.
func (s *AuthService) IssueSession(user *models.User) (string, time.Time, error) {
	exp := time.Now().Add(s.SessionTTL)
	token, err := tokens.Issue(s.Secret, user.ID, user.Role, s.SessionTTL)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// Session decodes a raw token back into request-scoped claims. Any decode
// failure reads as "no session".
func (s *AuthService) Session(tokenStr string) (*tokens.SessionClaims, error) {
	return tokens.Decode(tokenStr, s.Secret)
}
