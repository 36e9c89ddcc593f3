package dto

import "github.com/BruksfildServices01/salon-booking/internal/models"

// UserRead is the only outward shape of a user. It has no password field.
type UserRead struct {
	ID    uint     `json:"id"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

func NewUserRead(u *models.User) UserRead {
	return UserRead{
		ID:    u.ID,
		Email: u.Email,
		Roles: u.EffectiveRoles(),
	}
}

type LoginRequest struct {
	Email    string `json:"email" form:"_username"`
	Password string `json:"password" form:"_password"`
}

type LoginResponse struct {
	User  UserRead `json:"user"`
	Token string   `json:"token"`
}
