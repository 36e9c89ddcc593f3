// Package authz derives the caller's identity from the request context and
// checks role and ownership predicates against it.
package authz

import (
	"context"
	"slices"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type Identity struct {
	UserID uint
	Email  string
	Roles  []string
}

func NewIdentity(u *models.User) *Identity {
	return &Identity{
		UserID: u.ID,
		Email:  u.Email,
		Roles:  u.EffectiveRoles(),
	}
}

func (i *Identity) HasRole(role string) bool {
	return slices.Contains(i.Roles, role)
}

// Owned is implemented by resources with a resolvable owner. A service
// answers through its parent salon.
type Owned interface {
	OwnerUserID() uint
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	return id, ok && id != nil
}

func RequireAuthenticated(ctx context.Context) (*Identity, error) {
	id, ok := FromContext(ctx)
	if !ok {
		return nil, httperr.ErrUnauthenticated
	}
	return id, nil
}

func RequireRole(id *Identity, role string) error {
	if id == nil {
		return httperr.ErrUnauthenticated
	}
	if !id.HasRole(role) {
		return httperr.AuthorizationError{Message: "Access denied."}
	}
	return nil
}

// RequireOwnership compares user ids, never object identity, so two loads of
// the same user are the same owner.
func RequireOwnership(id *Identity, resource Owned, message string) error {
	if id == nil {
		return httperr.ErrUnauthenticated
	}
	owner := resource.OwnerUserID()
	if owner == 0 || owner != id.UserID {
		return httperr.AuthorizationError{Message: message}
	}
	return nil
}
