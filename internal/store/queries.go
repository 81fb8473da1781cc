package store

import (
	"context"
	"marketplace/pkg/model"
)

func (s *Store) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	var user *model.User
	err := s.view(ctx, "find_user_by_id", func(tx *Tx) error {
		var err error
		user, err = tx.FindUserByID(id)
		return err
	})
	return user, err
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user *model.User
	err := s.view(ctx, "find_user_by_email", func(tx *Tx) error {
		var err error
		user, err = tx.FindUserByEmail(email)
		return err
	})
	return user, err
}

func (s *Store) FindUsersByRole(ctx context.Context, role string) ([]*model.User, error) {
	var users []*model.User
	err := s.view(ctx, "find_users_by_role", func(tx *Tx) error {
		users = tx.FindUsers(func(u *model.User) bool { return u.Role == role })
		return nil
	})
	return users, err
}

func (s *Store) FindAllServices(ctx context.Context) ([]*model.Service, error) {
	var services []*model.Service
	err := s.view(ctx, "find_all_services", func(tx *Tx) error {
		services = tx.FindServices(nil)
		return nil
	})
	return services, err
}

func (s *Store) FindServiceByID(ctx context.Context, id string) (*model.Service, error) {
	var service *model.Service
	err := s.view(ctx, "find_service_by_id", func(tx *Tx) error {
		var err error
		service, err = tx.FindServiceByID(id)
		return err
	})
	return service, err
}

func (s *Store) FindServicesByProvider(ctx context.Context, providerID string) ([]*model.Service, error) {
	return s.SearchServices(ctx, model.ServiceFilter{ProviderID: providerID})
}

func (s *Store) SearchServices(ctx context.Context, f model.ServiceFilter) ([]*model.Service, error) {
	var services []*model.Service
	err := s.view(ctx, "search_services", func(tx *Tx) error {
		services = tx.FindServices(func(svc *model.Service) bool { return MatchService(svc, f) })
		return nil
	})
	return services, err
}

func (s *Store) FindBookingByID(ctx context.Context, id string) (*model.Booking, error) {
	var booking *model.Booking
	err := s.view(ctx, "find_booking_by_id", func(tx *Tx) error {
		var err error
		booking, err = tx.FindBookingByID(id)
		return err
	})
	return booking, err
}

func (s *Store) FindBookingsByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	var bookings []*model.Booking
	err := s.view(ctx, "find_bookings_by_user", func(tx *Tx) error {
		bookings = tx.FindBookings(func(b *model.Booking) bool { return b.UserID == userID })
		return nil
	})
	return bookings, err
}

func (s *Store) FindBookingsByProvider(ctx context.Context, providerID string) ([]*model.Booking, error) {
	var bookings []*model.Booking
	err := s.view(ctx, "find_bookings_by_provider", func(tx *Tx) error {
		bookings = tx.FindBookings(func(b *model.Booking) bool { return b.ProviderID == providerID })
		return nil
	})
	return bookings, err
}

func (s *Store) FindReviewsByProvider(ctx context.Context, providerID string) ([]*model.Review, error) {
	var reviews []*model.Review
	err := s.view(ctx, "find_reviews_by_provider", func(tx *Tx) error {
		reviews = tx.FindReviews(func(r *model.Review) bool { return r.ProviderID == providerID })
		return nil
	})
	return reviews, err
}

func (s *Store) FindReviewByBooking(ctx context.Context, bookingID string) (*model.Review, error) {
	var review *model.Review
	err := s.view(ctx, "find_review_by_booking", func(tx *Tx) error {
		var err error
		review, err = tx.FindReviewByBooking(bookingID)
		return err
	})
	return review, err
}

func (s *Store) FindPaymentsByProvider(ctx context.Context, providerID string) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := s.view(ctx, "find_payments_by_provider", func(tx *Tx) error {
		payments = tx.FindPayments(func(p *model.Payment) bool { return p.ProviderID == providerID })
		return nil
	})
	return payments, err
}

func (s *Store) FindPaymentsByUser(ctx context.Context, userID string) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := s.view(ctx, "find_payments_by_user", func(tx *Tx) error {
		payments = tx.FindPayments(func(p *model.Payment) bool { return p.UserID == userID })
		return nil
	})
	return payments, err
}

func (s *Store) FindPaymentByBooking(ctx context.Context, bookingID string) (*model.Payment, error) {
	var payment *model.Payment
	err := s.view(ctx, "find_payment_by_booking", func(tx *Tx) error {
		var err error
		payment, err = tx.FindPaymentByBooking(bookingID)
		return err
	})
	return payment, err
}
