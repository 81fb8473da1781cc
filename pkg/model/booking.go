package model

import "time"

const (
	StatusPending     = "Pending"
	StatusAccepted    = "Accepted"
	StatusDeclined    = "Declined"
	StatusCompleted   = "Completed"
	StatusRescheduled = "Rescheduled"
	StatusCancelled   = "Cancelled"
)

// BookingStatuses lists every status in lifecycle order.
var BookingStatuses = []string{
	StatusPending,
	StatusAccepted,
	StatusRescheduled,
	StatusCompleted,
	StatusDeclined,
	StatusCancelled,
}

var bookingTransitions = map[string][]string{
	StatusPending:     {StatusAccepted, StatusDeclined, StatusRescheduled, StatusCancelled},
	StatusAccepted:    {StatusCompleted, StatusRescheduled, StatusCancelled},
	StatusRescheduled: {StatusAccepted, StatusDeclined, StatusCompleted, StatusRescheduled, StatusCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status change is allowed.
func IsTerminal(status string) bool {
	_, ok := bookingTransitions[status]
	return !ok
}

type Booking struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id" validate:"required"`
	ProviderID string    `json:"provider_id"`
	ServiceID  string    `json:"service_id" validate:"required"`
	Date       string    `json:"date" validate:"required,booking_date"`
	Time       string    `json:"time" validate:"required,booking_time"`
	Address    string    `json:"address" validate:"required,min=3,max=200"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty" validate:"max=500"`
	Reviewed   bool      `json:"reviewed"`
	Amount     Money     `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type BookingStatusUpdate struct {
	Status string `json:"status" validate:"required,booking_status"`
}

type BookingReschedule struct {
	Date string `json:"date" validate:"required,booking_date"`
	Time string `json:"time" validate:"required,booking_time"`
}

// BookingQuery filters and orders a booking listing. Sort is "", "date_asc"
// or "date_desc"; empty keeps insertion order.
type BookingQuery struct {
	Status string
	Sort   string
}

const (
	SortDateAsc  = "date_asc"
	SortDateDesc = "date_desc"
)
