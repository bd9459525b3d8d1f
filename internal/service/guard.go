package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hdcasedi/competenceo/internal/models"
	"github.com/hdcasedi/competenceo/internal/repo"
	"github.com/hdcasedi/competenceo/internal/tokens"
)

// Guard decides mutation-level authorization. Route-level gating lives in
// the middleware; this is the second tier that runs inside every mutating
// operation.
type Guard struct {
	Repo *repo.GormRepo
}

// AuthorizeMutation is the fast path: it trusts the claims decoded from
// the session token and compares the subject against the re-fetched owner
// of the target resource.
func (g *Guard) AuthorizeMutation(claims *tokens.SessionClaims, ownerID string) Decision {
	if claims == nil || claims.Subject == "" {
		return DecisionDenied
	}
	if claims.Subject != ownerID {
		return DecisionForbidden
	}
	return DecisionAllow
}

// RequireAdmin is the slow path for privilege-escalating actions: the role
// is re-read from storage instead of trusting the token's embedded role.
func (g *Guard) RequireAdmin(ctx context.Context, subjectID string) (*models.User, error) {
	if subjectID == "" {
		return nil, ErrForbidden
	}
	user, err := g.Repo.FindUserByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if user.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return user, nil
}
