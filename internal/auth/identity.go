package auth

import "github.com/spec-kit/identity-service/internal/domain"

// Identity is the request-scoped authenticated caller. It is built
// fresh from the user directory on every request and discarded when
// the request completes.
type Identity struct {
	UserID int64
	Email  string
	Role   domain.Role
	Active bool
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == domain.RoleAdmin
}

// IsEnabled reports whether the account behind the identity is active.
func (i *Identity) IsEnabled() bool {
	return i != nil && i.Active
}
