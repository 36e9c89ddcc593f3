package models

import (
	"slices"
	"time"
)

const (
	RoleUser       = "ROLE_USER"
	RoleSalonOwner = "ROLE_SALON_OWNER"
)

type User struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Email    string   `gorm:"size:180;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:255;not null" json:"-"`
	Roles    []string `gorm:"serializer:json;type:text;not null" json:"roles"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "user" }

// EffectiveRoles always contains RoleUser, whatever is stored.
func (u *User) EffectiveRoles() []string {
	roles := make([]string, 0, len(u.Roles)+1)
	for _, r := range u.Roles {
		if r != "" && !slices.Contains(roles, r) {
			roles = append(roles, r)
		}
	}
	if !slices.Contains(roles, RoleUser) {
		roles = append(roles, RoleUser)
	}
	return roles
}

func (u *User) HasRole(role string) bool {
	return slices.Contains(u.EffectiveRoles(), role)
}
