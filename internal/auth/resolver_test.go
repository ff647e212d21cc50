package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/identity-service/internal/domain"
)

type stubDirectory struct {
	users  map[string]*domain.User
	err    error
	panics bool
}

func (d *stubDirectory) FindActiveByEmail(_ context.Context, email string) (*domain.User, error) {
	if d.panics {
		panic("directory unavailable")
	}
	if d.err != nil {
		return nil, d.err
	}
	user, ok := d.users[email]
	if !ok || !user.Active {
		return nil, errors.New("no rows")
	}
	return user, nil
}

func TestResolveActiveUser(t *testing.T) {
	resolver := NewIdentityResolver(&stubDirectory{users: map[string]*domain.User{
		"alice@example.com": {ID: 7, Email: "alice@example.com", Role: domain.RoleAdmin, Active: true},
	}})

	identity, err := resolver.Resolve(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), identity.UserID)
	assert.True(t, identity.IsAdmin())
	assert.True(t, identity.IsEnabled())
}

func TestResolveUnknownSubject(t *testing.T) {
	resolver := NewIdentityResolver(&stubDirectory{users: map[string]*domain.User{}})

	_, err := resolver.Resolve(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUnknownIdentity)
}

func TestResolveInactiveUser(t *testing.T) {
	resolver := NewIdentityResolver(&stubDirectory{users: map[string]*domain.User{
		"bob@example.com": {ID: 8, Email: "bob@example.com", Role: domain.RoleUser, Active: false},
	}})

	_, err := resolver.Resolve(context.Background(), "bob@example.com")
	assert.ErrorIs(t, err, ErrUnknownIdentity)
}

func TestResolveDirectoryError(t *testing.T) {
	resolver := NewIdentityResolver(&stubDirectory{err: errors.New("connection refused")})

	_, err := resolver.Resolve(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrUnknownIdentity)
}
