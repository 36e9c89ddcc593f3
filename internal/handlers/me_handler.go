package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/authz"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/salon"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

type MeHandler struct {
	repo domain.Repository
}

func NewMeHandler(repo domain.Repository) *MeHandler {
	return &MeHandler{repo: repo}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	id, err := authz.RequireAuthenticated(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	user, err := h.repo.GetUserByID(c.Request.Context(), id.UserID)
	if err != nil {
		if httperr.IsNotFound(err) {
			err = httperr.ErrUnauthenticated
		}
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserRead(user))
}
