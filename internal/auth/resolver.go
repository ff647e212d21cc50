package auth

import (
	"context"
	"errors"

	"github.com/spec-kit/identity-service/internal/domain"
)

// ErrUnknownIdentity is returned when a token's subject no longer maps
// to an active account.
var ErrUnknownIdentity = errors.New("unknown identity")

// UserDirectory is the external collaborator that owns account state.
type UserDirectory interface {
	FindActiveByEmail(ctx context.Context, email string) (*domain.User, error)
}

// IdentityResolver maps a validated token subject to a live identity.
// Role and active flag always come from the directory, never from the
// token claims, so a deactivated or demoted account loses effective
// privilege on its next request even while its token is unexpired.
type IdentityResolver struct {
	directory UserDirectory
}

// NewIdentityResolver builds a resolver over the directory.
func NewIdentityResolver(directory UserDirectory) *IdentityResolver {
	return &IdentityResolver{directory: directory}
}

// Resolve looks up the subject email and returns the live identity.
func (r *IdentityResolver) Resolve(ctx context.Context, subject string) (*Identity, error) {
	user, err := r.directory.FindActiveByEmail(ctx, subject)
	if err != nil || user == nil {
		return nil, ErrUnknownIdentity
	}
	if !user.Active {
		return nil, ErrUnknownIdentity
	}
	return &Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Active: user.Active,
	}, nil
}
