package model

import "time"

type Review struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id" validate:"required"`
	UserID     string    `json:"user_id" validate:"required"`
	ProviderID string    `json:"provider_id"`
	ServiceID  string    `json:"service_id"`
	Rating     int       `json:"rating" validate:"required,min=1,max=5"`
	Comment    string    `json:"comment" validate:"max=1000"`
	CreatedAt  time.Time `json:"created_at"`
}

// AverageRating is the arithmetic mean of the ratings, or 0 when there are
// none.
func AverageRating(reviews []*Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(reviews))
}
