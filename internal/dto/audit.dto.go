package dto

import (
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type AuditLogRead struct {
	ID        uint            `json:"id"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  *uint           `json:"entityId"`
	SalonID   *uint           `json:"salonId"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func NewAuditLogReadList(logs []models.AuditLog) []AuditLogRead {
	out := make([]AuditLogRead, 0, len(logs))
	for _, l := range logs {
		item := AuditLogRead{
			ID:        l.ID,
			Action:    l.Action,
			Entity:    l.Entity,
			EntityID:  l.EntityID,
			SalonID:   l.SalonID,
			CreatedAt: l.CreatedAt,
		}
		if l.Metadata != "" && json.Valid([]byte(l.Metadata)) {
			item.Metadata = json.RawMessage(l.Metadata)
		}
		out = append(out, item)
	}
	return out
}
