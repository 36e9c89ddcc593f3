package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/auth"
	"github.com/BruksfildServices01/salon-booking/internal/config"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/salon"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/session"
	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

var errBadCredentials = httperr.AuthenticationError{Message: "Invalid credentials."}

type AuthHandler struct {
	repo     domain.Repository
	hasher   *auth.Hasher
	tokens   *auth.TokenManager
	sessions session.Store
	audit    audit.Sink
	config   *config.Config
	log      *zap.Logger
}

func NewAuthHandler(
	repo domain.Repository,
	hasher *auth.Hasher,
	tokens *auth.TokenManager,
	sessions session.Store,
	audit audit.Sink,
	cfg *config.Config,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		sessions: sessions,
		audit:    audit,
		config:   cfg,
		log:      log,
	}
}

// Login accepts a JSON body or the form fields _username and _password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.Respond(c, httperr.MalformedRequestError{Detail: err.Error()})
		return
	}

	switch {
	case req.Email == "":
		httperr.Respond(c, httperr.MissingFieldError{Field: "email"})
		return
	case req.Password == "":
		httperr.Respond(c, httperr.MissingFieldError{Field: "password"})
		return
	}

	ctx := c.Request.Context()

	user, err := h.repo.GetUserByEmail(ctx, validators.NormalizeEmail(req.Email))
	if err != nil {
		if httperr.IsNotFound(err) {
			err = errBadCredentials
		}
		httperr.Respond(c, err)
		return
	}

	if !h.hasher.Check(req.Password, user.Password) {
		httperr.Respond(c, errBadCredentials)
		return
	}

	sess, err := h.sessions.Create(ctx, user.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	token, err := h.tokens.Generate(user, sess.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, sess.ID, int(h.config.SessionTTL.Seconds()), "/", "", h.config.CookieSecure, true)

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   domain.ActionUserLoggedIn,
		Entity:   domain.EntityUser,
		EntityID: &user.ID,
		Metadata: map[string]any{"ip": c.ClientIP()},
	})

	c.JSON(http.StatusOK, dto.LoginResponse{
		User:  dto.NewUserRead(user),
		Token: token,
	})
}

// Logout ends the session named by the cookie and the one a bearer token
// was issued with, which revokes that token. It always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	var ids []string
	if id, err := c.Cookie(middleware.SessionCookie); err == nil && id != "" {
		ids = append(ids, id)
	}
	if raw, ok := middleware.BearerToken(c); ok {
		if claims, err := h.tokens.Parse(raw); err == nil {
			ids = append(ids, claims.SessionID)
		}
	}

	for _, id := range ids {
		if err := h.sessions.Delete(c.Request.Context(), id); err != nil {
			h.log.Warn("delete session failed", zap.Error(err))
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.config.CookieSecure, true)
	c.Status(http.StatusNoContent)
}
