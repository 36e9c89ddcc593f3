package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type SalonRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name,omitempty"`
}

type ServiceRead struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       Price     `json:"price"`
	Duration    int       `json:"duration"`
	Salon       SalonRef  `json:"salon"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ServiceWrite holds the client-settable service fields. Absent fields are
// left untouched, which makes the same shape usable for create and patch.
type ServiceWrite struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *Price  `json:"price"`
	Duration    *int    `json:"duration"`
}

func (w ServiceWrite) Apply(s *models.Service) {
	if w.Name != nil {
		s.Name = *w.Name
	}
	if w.Description != nil {
		s.Description = emptyToNil(*w.Description)
	}
	if w.Price != nil {
		p := w.Price.Float64()
		s.Price = &p
	}
	if w.Duration != nil {
		d := *w.Duration
		s.DurationMin = &d
	}
}

func NewServiceRead(s *models.Service) ServiceRead {
	out := ServiceRead{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       priceOf(s),
		Duration:    durationOf(s),
		Salon:       SalonRef{ID: s.SalonID},
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Salon != nil {
		out.Salon.Name = s.Salon.Name
	}
	return out
}

func NewServiceReadList(services []models.Service) []ServiceRead {
	out := make([]ServiceRead, 0, len(services))
	for i := range services {
		out = append(out, NewServiceRead(&services[i]))
	}
	return out
}

func priceOf(s *models.Service) Price {
	if s.Price == nil {
		return 0
	}
	return NewPrice(*s.Price)
}

func durationOf(s *models.Service) int {
	if s.DurationMin == nil {
		return 0
	}
	return *s.DurationMin
}
