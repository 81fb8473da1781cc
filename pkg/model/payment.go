package model

import "time"

// Payment is recorded once, when a booking is completed.
// Amount == Commission + ProviderEarnings always holds.
type Payment struct {
	ID               string    `json:"id"`
	BookingID        string    `json:"booking_id"`
	ProviderID       string    `json:"provider_id"`
	UserID           string    `json:"user_id"`
	Amount           Money     `json:"amount"`
	Commission       Money     `json:"commission"`
	ProviderEarnings Money     `json:"provider_earnings"`
	CommissionRate   float64   `json:"commission_rate"`
	CreatedAt        time.Time `json:"created_at"`
}

type EarningsSummary struct {
	ProviderID       string `json:"provider_id"`
	Payments         int    `json:"payments"`
	GrossAmount      Money  `json:"gross_amount"`
	TotalCommission  Money  `json:"total_commission"`
	ProviderEarnings Money  `json:"provider_earnings"`
}

// SplitCommission divides amount into the platform commission, rounded to
// the nearest minor unit, and the provider's share of the remainder.
func SplitCommission(amount Money, rate float64) (commission, earnings Money) {
	commission = amount.Percent(rate)
	return commission, amount - commission
}
