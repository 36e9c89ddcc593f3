package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/authz"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logger *audit.Logger
}

func NewAuditLogsHandler(logger *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logger: logger}
}

// List returns the caller's latest entries, optionally filtered by action
// and entity.
func (h *AuditLogsHandler) List(c *gin.Context) {
	id, err := authz.RequireAuthenticated(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	logs, err := h.logger.List(c.Request.Context(), audit.Filter{
		UserID: id.UserID,
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuditLogReadList(logs))
}
