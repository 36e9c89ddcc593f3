package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type SalonRead struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Address     string             `json:"address"`
	PhoneNumber *string            `json:"phoneNumber"`
	Description *string            `json:"description"`
	ImageURL    *string            `json:"imageUrl,omitempty"`
	OwnerID     uint               `json:"ownerId"`
	Owner       *UserRead          `json:"owner,omitempty"`
	Services    []SalonServiceRead `json:"services"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// SalonServiceRead is a service nested under its salon, without the
// back-reference.
type SalonServiceRead struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       Price   `json:"price"`
	Duration    int     `json:"duration"`
}

// SalonWrite holds the client-settable salon fields. Anything else in the
// payload (id, owner, services) is ignored by the decoder.
type SalonWrite struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phoneNumber"`
	Description *string `json:"description"`
}

func (w SalonWrite) Apply(s *models.Salon) {
	if w.Name != nil {
		s.Name = *w.Name
	}
	if w.Address != nil {
		s.Address = *w.Address
	}
	if w.PhoneNumber != nil {
		s.PhoneNumber = emptyToNil(*w.PhoneNumber)
	}
	if w.Description != nil {
		s.Description = emptyToNil(*w.Description)
	}
}

func NewSalonRead(s *models.Salon) SalonRead {
	out := SalonRead{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		PhoneNumber: s.PhoneNumber,
		Description: s.Description,
		ImageURL:    s.ImageURL,
		OwnerID:     s.OwnerID,
		Services:    make([]SalonServiceRead, 0, len(s.Services)),
		CreatedAt:   s.CreatedAt,
	}

	if s.Owner != nil {
		owner := NewUserRead(s.Owner)
		out.Owner = &owner
	}

	for _, svc := range s.Services {
		out.Services = append(out.Services, SalonServiceRead{
			ID:          svc.ID,
			Name:        svc.Name,
			Description: svc.Description,
			Price:       priceOf(svc),
			Duration:    durationOf(svc),
		})
	}

	return out
}

func NewSalonReadList(salons []models.Salon) []SalonRead {
	out := make([]SalonRead, 0, len(salons))
	for i := range salons {
		out = append(out, NewSalonRead(&salons[i]))
	}
	return out
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
