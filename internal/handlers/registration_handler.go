package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	ucSalon "github.com/BruksfildServices01/salon-booking/internal/usecase/salon"
)

type RegistrationHandler struct {
	register *ucSalon.RegisterSalon
}

func NewRegistrationHandler(register *ucSalon.RegisterSalon) *RegistrationHandler {
	return &RegistrationHandler{register: register}
}

// RegisterSalon handles POST /api/register/salon.
func (h *RegistrationHandler) RegisterSalon(c *gin.Context) {
	var req dto.RegisterSalonRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	user, salon, err := h.register.Execute(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewRegistrationResponse(user, salon))
}
