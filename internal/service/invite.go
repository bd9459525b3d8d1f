package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hdcasedi/competenceo/internal/hash"
	"github.com/hdcasedi/competenceo/internal/logging"
	"github.com/hdcasedi/competenceo/internal/mailer"
	"github.com/hdcasedi/competenceo/internal/models"
	"github.com/hdcasedi/competenceo/internal/repo"
)

const (
	inviteTTL        = 7 * 24 * time.Hour
	identifierPrefix = "invite:"
	codeBytes        = 4 // 8 uppercase hex characters
)

type InviteService struct {
	Repo   *repo.GormRepo
	Mailer mailer.Mailer
}

// Signup carries the fields submitted on the teacher signup form.
type Signup struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	Subject      string
	SubjectOther string
}

// NewCode returns a short human-transcribable code, e.g. "3FA81C07".
func NewCode() (string, error) {
	buf := make([]byte, codeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// Issue creates a 7-day invitation for the email and hands the code to the
// mail collaborator. Mail failure is logged and swallowed: the code stays
// valid and an admin can pass it on manually.
func (s *InviteService) Issue(ctx context.Context, email string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "invite.issue")

	email = repo.NormalizeEmail(email)

	code, err := NewCode()
	if err != nil {
		return "", err
	}

	inv := &models.InvitationToken{
		Code:       code,
		Identifier: identifierPrefix + email,
		ExpiresAt:  time.Now().Add(inviteTTL),
	}
	if err := s.Repo.SaveInvite(ctx, inv); err != nil {
		return "", err
	}

	if err := s.Mailer.SendInvite(ctx, email, code); err != nil {
		l.Error("invite mail delivery failed", "error", err)
	}

	return code, nil
}

// Redeem consumes a code and creates or upgrades the matching account to
// TEACHER. The code must exist, be bound to the signup email, and still be
// inside its window; expired rows are left in place, they die only when a
// fresh invite supersedes them or the table is rebuilt.
func (s *InviteService) Redeem(ctx context.Context, code string, in Signup) (*models.User, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	email := repo.NormalizeEmail(in.Email)

	inv, err := s.Repo.FindInvite(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	if inv.Identifier != identifierPrefix+email {
		return nil, ErrInviteEmailMismatch
	}
	if !time.Now().Before(inv.ExpiresAt) {
		return nil, ErrInviteExpired
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(strings.TrimSpace(in.FirstName) + " " + strings.TrimSpace(in.LastName))
	user := &models.User{
		Email:        &email,
		PasswordHash: &pwHash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Name:         name,
		Subject:      in.Subject,
		SubjectOther: in.SubjectOther,
	}

	// Consume the code and create the account as one unit; a failed
	// upsert must not burn the invitation.
	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := tx.DeleteInvite(ctx, code); err != nil {
			return err
		}
		upserted, err := tx.UpsertTeacherByEmail(ctx, user)
		if err != nil {
			return err
		}
		user = upserted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
