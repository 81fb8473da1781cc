package model

import "time"

// Navigation graphs selected by the signed-in identity.
const (
	GraphAuth     = "auth"
	GraphUser     = "user"
	GraphProvider = "provider"
)

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,password_bytes"`
}

type Registration struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6,password_bytes"`
	Role          string `json:"role" validate:"required,oneof=user provider"`
	Phone         string `json:"phone,omitempty"`
	State         string `json:"state,omitempty"`
	BusinessName  string `json:"business_name,omitempty" validate:"omitempty,max=120"`
	AcceptTerms   bool   `json:"accept_terms" validate:"eq=true"`
	AcceptPrivacy bool   `json:"accept_privacy" validate:"eq=true"`
}

type ThemeUpdate struct {
	Theme string `json:"theme" validate:"required,oneof=light dark system"`
}

// Session is what a client receives after signing in.
type Session struct {
	Token     string    `json:"token"`
	User      *User     `json:"user"`
	Theme     string    `json:"theme"`
	Graph     string    `json:"graph"`
	ExpiresAt time.Time `json:"expires_at"`
}
