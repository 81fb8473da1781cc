package service

import (
	"cmp"
	"context"
	"slices"
	"time"

	paymentservice "marketplace/internal/payments/service"
	"marketplace/internal/store"
	"marketplace/pkg/config"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/model"
	"marketplace/pkg/validation"
)

// upcomingLimit caps the bookings listed on an overview.
const upcomingLimit = 5

type DashboardService interface {
	ProviderOverview(ctx context.Context, providerID string) (*model.ProviderOverview, error)
	UserOverview(ctx context.Context, userID string) (*model.UserOverview, error)
}

type dashboardService struct {
	repo store.Transactor
	cfg  *config.Config
	now  func() time.Time
}

func NewDashboardService(repo store.Transactor, cfg *config.Config) DashboardService {
	return &dashboardService{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

func (s *dashboardService) ProviderOverview(ctx context.Context, providerID string) (*model.ProviderOverview, error) {
	if providerID == "" {
		return nil, apperrors.InvalidInput("Provider ID cannot be empty")
	}

	var overview *model.ProviderOverview
	err := s.repo.ExecuteTransaction(ctx, func(tx *store.Tx) error {
		provider, err := tx.FindUserByID(providerID)
		if err != nil {
			return err
		}
		if !provider.IsProvider() {
			return apperrors.NotFoundWithID("Provider", providerID)
		}

		bookings := tx.FindBookings(func(b *model.Booking) bool { return b.ProviderID == providerID })
		reviews := tx.FindReviews(func(r *model.Review) bool { return r.ProviderID == providerID })
		payments := tx.FindPayments(func(p *model.Payment) bool { return p.ProviderID == providerID })
		services := tx.FindServices(func(svc *model.Service) bool { return svc.ProviderID == providerID })

		overview = &model.ProviderOverview{
			ProviderID:       providerID,
			TotalBookings:    len(bookings),
			BookingsByStatus: countByStatus(bookings),
			ServiceCount:     len(services),
			AverageRating:    model.AverageRating(reviews),
			ReviewCount:      len(reviews),
			Earnings:         *paymentservice.Summarize(providerID, payments),
			Upcoming:         upcoming(bookings, s.now()),
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to build provider overview", "provider_id", providerID, "error", err)
		return nil, store.AppError(err, "Provider", providerID, "build overview")
	}

	return overview, nil
}

func (s *dashboardService) UserOverview(ctx context.Context, userID string) (*model.UserOverview, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	var overview *model.UserOverview
	err := s.repo.ExecuteTransaction(ctx, func(tx *store.Tx) error {
		if _, err := tx.FindUserByID(userID); err != nil {
			return err
		}

		bookings := tx.FindBookings(func(b *model.Booking) bool { return b.UserID == userID })
		payments := tx.FindPayments(func(p *model.Payment) bool { return p.UserID == userID })

		overview = &model.UserOverview{
			UserID:           userID,
			TotalBookings:    len(bookings),
			BookingsByStatus: countByStatus(bookings),
			Upcoming:         upcoming(bookings, s.now()),
		}
		for _, b := range bookings {
			if b.Status == model.StatusCompleted && !b.Reviewed {
				overview.AwaitingReview++
			}
		}
		for _, p := range payments {
			overview.TotalSpent += p.Amount
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to build user overview", "user_id", userID, "error", err)
		return nil, store.AppError(err, "User", userID, "build overview")
	}

	return overview, nil
}

func countByStatus(bookings []*model.Booking) map[string]int {
	counts := make(map[string]int, len(model.BookingStatuses))
	for _, status := range model.BookingStatuses {
		counts[status] = 0
	}
	for _, b := range bookings {
		counts[b.Status]++
	}
	return counts
}

// upcoming returns open bookings scheduled on or after now's date, soonest
// first.
func upcoming(bookings []*model.Booking, now time.Time) []*model.Booking {
	today := now.UTC().Format(validation.DateLayout)

	open := make([]*model.Booking, 0)
	for _, b := range bookings {
		switch b.Status {
		case model.StatusPending, model.StatusAccepted, model.StatusRescheduled:
			if b.Date >= today {
				open = append(open, b)
			}
		}
	}

	slices.SortStableFunc(open, func(a, b *model.Booking) int {
		return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.Time, b.Time))
	})
	if len(open) > upcomingLimit {
		open = open[:upcomingLimit]
	}
	return open
}
