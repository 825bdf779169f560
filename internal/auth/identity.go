package auth

import (
	"context"

	"taskboard/internal/models/user"

	"github.com/google/uuid"
)

// Identity - кто выполняет запрос. Достаётся из проверенного токена.
type Identity struct {
	UserID uuid.UUID
	Role   user.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == user.RoleAdmin
}

type contextKey string

const identityKey contextKey = "identity"

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

func RequireAdmin(id Identity) error {
	if !id.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

func RequireAdminOrOwner(id Identity, ownerID uuid.UUID) error {
	if id.IsAdmin() || id.UserID == ownerID {
		return nil
	}
	return ErrForbidden
}
