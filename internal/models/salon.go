package models

import "time"

type Salon struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Address     string  `gorm:"type:text;not null" json:"address"`
	PhoneNumber *string `gorm:"size:30" json:"phone_number"`
	Description *string `gorm:"type:text" json:"description"`
	ImageURL    *string `gorm:"size:512" json:"image_url"`

	OwnerID uint  `gorm:"index;not null" json:"owner_id"`
	Owner   *User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"owner,omitempty"`

	// Loaded explicitly by the repository; never written through gorm associations.
	Services []*Service `gorm:"foreignKey:SalonID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Salon) TableName() string { return "salon" }

func (s *Salon) OwnerUserID() uint {
	return s.OwnerID
}

// AddService attaches svc to the salon, keeping both sides in sync. The
// salon holds svc itself, so later changes to svc (its id once stored) show
// on both sides.
func (s *Salon) AddService(svc *Service) {
	svc.SalonID = s.ID
	svc.Salon = s
	for _, existing := range s.Services {
		if existing == svc || (svc.ID != 0 && existing.ID == svc.ID) {
			return
		}
	}
	s.Services = append(s.Services, svc)
}

// RemoveService detaches the service with the given id from both sides.
// It reports whether the service belonged to the salon.
func (s *Salon) RemoveService(svc *Service) bool {
	for i, existing := range s.Services {
		if existing != svc && (svc.ID == 0 || existing.ID != svc.ID) {
			continue
		}
		s.Services = append(s.Services[:i], s.Services[i+1:]...)
		if svc.SalonID == s.ID {
			svc.SalonID = 0
			svc.Salon = nil
		}
		return true
	}
	return false
}
