package model

type ProviderOverview struct {
	ProviderID       string          `json:"provider_id"`
	TotalBookings    int             `json:"total_bookings"`
	BookingsByStatus map[string]int  `json:"bookings_by_status"`
	ServiceCount     int             `json:"service_count"`
	AverageRating    float64         `json:"average_rating"`
	ReviewCount      int             `json:"review_count"`
	Earnings         EarningsSummary `json:"earnings"`
	Upcoming         []*Booking      `json:"upcoming"`
}

type UserOverview struct {
	UserID           string         `json:"user_id"`
	TotalBookings    int            `json:"total_bookings"`
	BookingsByStatus map[string]int `json:"bookings_by_status"`
	AwaitingReview   int            `json:"awaiting_review"`
	TotalSpent       Money          `json:"total_spent"`
	Upcoming         []*Booking     `json:"upcoming"`
}
