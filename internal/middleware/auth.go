package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/auth"
	"github.com/BruksfildServices01/salon-booking/internal/authz"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/session"
)

const (
	SessionCookie = "session_id"

	ContextUserID = "userID"
)

type UserLoader interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware attaches the caller's identity to the request context when
// a valid session cookie or bearer token is present. Anonymous requests pass
// through; handlers decide whether they need an identity.
func AuthMiddleware(
	sessions session.Store,
	tokens *auth.TokenManager,
	users UserLoader,
	log *zap.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		userID, ok := userFromSession(c, sessions, log)
		if !ok {
			userID, ok = userFromBearer(c, tokens, sessions, log)
		}
		if !ok {
			c.Next()
			return
		}

		// reload so role changes and deleted accounts apply immediately
		user, err := users.GetUserByID(ctx, userID)
		if err != nil {
			if !httperr.IsNotFound(err) {
				log.Warn("load authenticated user failed", zap.Uint("user_id", userID), zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Request = c.Request.WithContext(authz.WithIdentity(ctx, authz.NewIdentity(user)))
		c.Next()
	}
}

func userFromSession(c *gin.Context, sessions session.Store, log *zap.Logger) (uint, bool) {
	id, err := c.Cookie(SessionCookie)
	if err != nil || id == "" {
		return 0, false
	}

	sess, err := sessions.Get(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			log.Warn("session lookup failed", zap.Error(err))
		}
		return 0, false
	}
	return sess.UserID, true
}

// BearerToken returns the raw token of an "Authorization: Bearer" header.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// userFromBearer accepts a token only while the session it was issued with
// is alive.
func userFromBearer(c *gin.Context, tokens *auth.TokenManager, sessions session.Store, log *zap.Logger) (uint, bool) {
	raw, ok := BearerToken(c)
	if !ok {
		return 0, false
	}

	claims, err := tokens.Parse(raw)
	if err != nil {
		return 0, false
	}

	sess, err := sessions.Get(c.Request.Context(), claims.SessionID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			log.Warn("session lookup failed", zap.Error(err))
		}
		return 0, false
	}
	if sess.UserID != claims.UserID {
		return 0, false
	}
	return claims.UserID, true
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := authz.RequireAuthenticated(c.Request.Context()); err != nil {
			httperr.Respond(c, err)
			return
		}
		c.Next()
	}
}
