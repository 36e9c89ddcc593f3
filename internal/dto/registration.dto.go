package dto

import "github.com/BruksfildServices01/salon-booking/internal/models"

const RegistrationMessage = "Salon registered successfully!"

type RegisterSalonRequest struct {
	Email            *string `json:"email"`
	Password         *string `json:"password"`
	SalonName        *string `json:"salonName"`
	SalonAddress     *string `json:"salonAddress"`
	SalonPhoneNumber *string `json:"salonPhoneNumber"`
	SalonDescription *string `json:"salonDescription"`
}

// FirstMissing returns the first required field that is absent or empty, in
// the fixed order email, password, salonName, salonAddress.
func (r RegisterSalonRequest) FirstMissing() string {
	required := []struct {
		name  string
		value *string
	}{
		{"email", r.Email},
		{"password", r.Password},
		{"salonName", r.SalonName},
		{"salonAddress", r.SalonAddress},
	}
	for _, f := range required {
		if f.value == nil || *f.value == "" {
			return f.name
		}
	}
	return ""
}

type RegistrationResponse struct {
	Message string    `json:"message"`
	User    UserRead  `json:"user"`
	Salon   SalonRead `json:"salon"`
}

func NewRegistrationResponse(u *models.User, s *models.Salon) RegistrationResponse {
	return RegistrationResponse{
		Message: RegistrationMessage,
		User:    NewUserRead(u),
		Salon:   NewSalonRead(s),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r RegisterSalonRequest) EmailValue() string    { return deref(r.Email) }
func (r RegisterSalonRequest) PasswordValue() string { return deref(r.Password) }
