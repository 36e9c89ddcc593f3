package models

import "time"

type Service struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"size:255;not null" json:"name"`
	Description *string  `gorm:"type:text" json:"description"`
	Price       *float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMin *int     `gorm:"column:duration;not null;comment:Duration in minutes" json:"duration"`

	SalonID uint   `gorm:"index;not null" json:"salon_id"`
	Salon   *Salon `gorm:"foreignKey:SalonID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Service) TableName() string { return "service" }

// OwnerUserID resolves ownership through the parent salon. The salon must be
// loaded; an unloaded salon yields 0, which never matches a real user.
func (s *Service) OwnerUserID() uint {
	if s.Salon == nil {
		return 0
	}
	return s.Salon.OwnerID
}
