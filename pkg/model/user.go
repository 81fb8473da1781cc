package model

import "time"

const (
	RoleUser     = "user"
	RoleProvider = "provider"
)

const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name" validate:"required,min=2,max=100"`
	Email        string    `json:"email" validate:"required,email"`
	Role         string    `json:"role" validate:"required,oneof=user provider"`
	Phone        string    `json:"phone,omitempty" validate:"omitempty,e164"`
	State        string    `json:"state,omitempty"`
	Avatar       string    `json:"avatar,omitempty" validate:"omitempty,url"`
	BusinessName string    `json:"business_name,omitempty" validate:"omitempty,max=120"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) IsProvider() bool {
	return u != nil && u.Role == RoleProvider
}

type UserUpdate struct {
	Name         string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone        string `json:"phone,omitempty"`
	State        string `json:"state,omitempty"`
	Avatar       string `json:"avatar,omitempty" validate:"omitempty,url"`
	BusinessName string `json:"business_name,omitempty" validate:"omitempty,max=120"`
}
