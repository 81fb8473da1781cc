package store

import (
	"marketplace/pkg/model"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "password123"

const seedCommissionRate = 0.10

var demoPasswordHash = sync.OnceValue(func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		panic("hash demo password: " + err.Error())
	}
	return string(hash)
})

func seedTime(day, hour int) time.Time {
	return time.Date(2024, time.November, day, hour, 0, 0, 0, time.UTC)
}

// DefaultSeed returns the demo marketplace: three customers, three providers
// with two services each, and bookings covering every lifecycle stage.
func DefaultSeed() *Dataset {
	hash := demoPasswordHash()

	users := []*model.User{
		{ID: "user-1", Name: "Adaeze Okafor", Email: "adaeze@example.com", Role: model.RoleUser, Phone: "+2348031234567", State: "Lagos", CreatedAt: seedTime(1, 9)},
		{ID: "user-2", Name: "Tunde Bakare", Email: "tunde@example.com", Role: model.RoleUser, Phone: "+2348059876543", State: "Oyo", CreatedAt: seedTime(2, 10)},
		{ID: "user-3", Name: "Chiamaka Eze", Email: "chiamaka@example.com", Role: model.RoleUser, State: "FCT", CreatedAt: seedTime(3, 11)},
		{ID: "provider-1", Name: "Emeka Nwosu", Email: "emeka@sparkle.ng", Role: model.RoleProvider, BusinessName: "Sparkle Cleaning Co.", Phone: "+2348021112233", State: "Lagos", CreatedAt: seedTime(1, 8)},
		{ID: "provider-2", Name: "Funmi Adeyemi", Email: "funmi@glow.ng", Role: model.RoleProvider, BusinessName: "Glow Beauty Studio", Phone: "+2348094445566", State: "Lagos", CreatedAt: seedTime(1, 12)},
		{ID: "provider-3", Name: "Ibrahim Musa", Email: "ibrahim@fixit.ng", Role: model.RoleProvider, BusinessName: "FixIt Plumbing", Phone: "+2348067778899", State: "FCT", CreatedAt: seedTime(2, 8)},
	}
	for _, u := range users {
		u.PasswordHash = hash
	}

	services := []*model.Service{
		{ID: "service-1", ProviderID: "provider-1", Title: "Deep House Cleaning", Description: "Top to bottom cleaning of apartments and duplexes.", Category: "cleaning", Price: model.NewMoney(25000), State: "Lagos", City: "Lekki", Rating: 5, CompletedJobs: 1, CreatedAt: seedTime(4, 9)},
		{ID: "service-2", ProviderID: "provider-1", Title: "Office Cleaning", Description: "After-hours cleaning for small offices.", Category: "cleaning", Price: model.NewMoney(40000), State: "Lagos", City: "Ikeja", Rating: 5, CreatedAt: seedTime(4, 10)},
		{ID: "service-3", ProviderID: "provider-2", Title: "Bridal Makeup", Description: "Wedding day makeup with a trial session.", Category: "beauty", Price: model.NewMoney(60000), State: "Lagos", City: "Victoria Island", CompletedJobs: 1, CreatedAt: seedTime(5, 9)},
		{ID: "service-4", ProviderID: "provider-2", Title: "Home Manicure & Pedicure", Description: "Nail care at your doorstep.", Category: "beauty", Price: model.NewMoney(12000), State: "Lagos", City: "Surulere", CreatedAt: seedTime(5, 10)},
		{ID: "service-5", ProviderID: "provider-3", Title: "Emergency Plumbing Repair", Description: "Leaks, bursts and blockages fixed same day.", Category: "plumbing", Price: model.NewMoney(18000), State: "FCT", City: "Abuja", CreatedAt: seedTime(6, 9)},
		{ID: "service-6", ProviderID: "provider-3", Title: "Water Heater Installation", Description: "Supply and installation of water heaters.", Category: "plumbing", Price: model.NewMoney(35000), State: "FCT", City: "Gwagwalada", CreatedAt: seedTime(6, 10)},
	}

	bookings := []*model.Booking{
		{ID: "booking-1", UserID: "user-1", ProviderID: "provider-1", ServiceID: "service-1", Date: "2024-12-20", Time: "10:00", Address: "12 Admiralty Way, Lekki", Status: model.StatusCompleted, Reviewed: true, Amount: model.NewMoney(25000), CreatedAt: seedTime(10, 9), UpdatedAt: seedTime(20, 15)},
		{ID: "booking-2", UserID: "user-2", ProviderID: "provider-2", ServiceID: "service-3", Date: "2024-12-22", Time: "09:00", Address: "5 Ajose Adeogun St, Victoria Island", Status: model.StatusCompleted, Amount: model.NewMoney(60000), CreatedAt: seedTime(11, 9), UpdatedAt: seedTime(22, 14)},
		{ID: "booking-3", UserID: "user-1", ProviderID: "provider-2", ServiceID: "service-4", Date: "2025-01-05", Time: "14:00", Address: "12 Admiralty Way, Lekki", Status: model.StatusAccepted, Notes: "Please bring gel polish.", Amount: model.NewMoney(12000), CreatedAt: seedTime(12, 9), UpdatedAt: seedTime(13, 9)},
		{ID: "booking-4", UserID: "user-3", ProviderID: "provider-3", ServiceID: "service-5", Date: "2025-01-08", Time: "11:30", Address: "Plot 7 Aminu Kano Crescent, Wuse 2", Status: model.StatusPending, Amount: model.NewMoney(18000), CreatedAt: seedTime(14, 9), UpdatedAt: seedTime(14, 9)},
		{ID: "booking-5", UserID: "user-2", ProviderID: "provider-1", ServiceID: "service-2", Date: "2025-01-10", Time: "08:00", Address: "3 Allen Avenue, Ikeja", Status: model.StatusRescheduled, Amount: model.NewMoney(40000), CreatedAt: seedTime(15, 9), UpdatedAt: seedTime(16, 9)},
		{ID: "booking-6", UserID: "user-3", ProviderID: "provider-3", ServiceID: "service-6", Date: "2024-12-15", Time: "13:00", Address: "Plot 7 Aminu Kano Crescent, Wuse 2", Status: model.StatusDeclined, Amount: model.NewMoney(35000), CreatedAt: seedTime(16, 9), UpdatedAt: seedTime(17, 9)},
	}

	reviews := []*model.Review{
		{ID: "review-1", BookingID: "booking-1", UserID: "user-1", ProviderID: "provider-1", ServiceID: "service-1", Rating: 5, Comment: "Spotless work and very punctual.", CreatedAt: seedTime(21, 10)},
	}

	return &Dataset{
		Users:    users,
		Services: services,
		Bookings: bookings,
		Reviews:  reviews,
		Payments: []*model.Payment{
			seedPayment("payment-1", bookings[0]),
			seedPayment("payment-2", bookings[1]),
		},
	}
}

func seedPayment(id string, b *model.Booking) *model.Payment {
	commission, earnings := model.SplitCommission(b.Amount, seedCommissionRate)
	return &model.Payment{
		ID:               id,
		BookingID:        b.ID,
		ProviderID:       b.ProviderID,
		UserID:           b.UserID,
		Amount:           b.Amount,
		Commission:       commission,
		ProviderEarnings: earnings,
		CommissionRate:   seedCommissionRate,
		CreatedAt:        b.UpdatedAt,
	}
}

// EmptySeed returns a dataset with no records.
func EmptySeed() *Dataset {
	return &Dataset{}
}
