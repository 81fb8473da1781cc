package model

import "time"

// Service is a provider's offering in the catalog.
type Service struct {
	ID            string    `json:"id"`
	ProviderID    string    `json:"provider_id" validate:"required"`
	Title         string    `json:"title" validate:"required,min=2,max=120"`
	Description   string    `json:"description" validate:"max=2000"`
	Category      string    `json:"category" validate:"required,min=2,max=60"`
	Price         Money     `json:"price" validate:"gt=0"`
	State         string    `json:"state" validate:"required"`
	City          string    `json:"city" validate:"required"`
	Address       string    `json:"address,omitempty" validate:"max=200"`
	Rating        float64   `json:"rating"`
	CompletedJobs int       `json:"completed_jobs"`
	CreatedAt     time.Time `json:"created_at"`
}

type ServiceUpdate struct {
	Title       string  `json:"title,omitempty" validate:"omitempty,min=2,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    string  `json:"category,omitempty" validate:"omitempty,min=2,max=60"`
	Price       *Money  `json:"price,omitempty" validate:"omitempty,gt=0"`
	State       string  `json:"state,omitempty"`
	City        string  `json:"city,omitempty"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=200"`
}

// ServiceFilter narrows a catalog search. Empty fields match everything.
type ServiceFilter struct {
	ProviderID string
	Category   string
	State      string
	City       string
	Query      string
}
