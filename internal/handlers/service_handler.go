package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/salon"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	ucSalon "github.com/BruksfildServices01/salon-booking/internal/usecase/salon"
)

type ServiceHandler struct {
	repo          domain.Repository
	createService *ucSalon.CreateService
	updateService *ucSalon.UpdateService
	deleteService *ucSalon.DeleteService
}

func NewServiceHandler(
	repo domain.Repository,
	createService *ucSalon.CreateService,
	updateService *ucSalon.UpdateService,
	deleteService *ucSalon.DeleteService,
) *ServiceHandler {
	return &ServiceHandler{
		repo:          repo,
		createService: createService,
		updateService: updateService,
		deleteService: deleteService,
	}
}

// ListBySalon handles GET /api/salons/:id/services.
func (h *ServiceHandler) ListBySalon(c *gin.Context) {
	salonID, err := pathID(c, "id", "Salon")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	services, err := h.repo.ListServicesBySalon(c.Request.Context(), salonID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewServiceReadList(services))
}

// Create handles POST /api/salons/:id/services.
func (h *ServiceHandler) Create(c *gin.Context) {
	salonID, err := pathID(c, "id", "Salon")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	svc, err := h.createService.Execute(c.Request.Context(), salonID, jsonPayload[dto.ServiceWrite](c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewServiceRead(svc))
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id", "Service")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	svc, err := h.repo.GetServiceByID(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewServiceRead(svc))
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id", "Service")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	svc, err := h.updateService.Execute(c.Request.Context(), id, jsonPayload[dto.ServiceWrite](c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewServiceRead(svc))
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id", "Service")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.deleteService.Execute(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
