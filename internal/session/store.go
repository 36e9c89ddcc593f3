// Package session keeps server-side login sessions keyed by an opaque id
// carried in the session cookie.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        string
	UserID    uint
	CreatedAt time.Time
	ExpiresAt time.Time
}

type Store interface {
	Create(ctx context.Context, userID uint) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
