package store

import (
	"context"
	"marketplace/pkg/model"
)

// TransactionFunc runs with exclusive access to every collection. Returning
// an error rolls back all writes made through tx.
type TransactionFunc func(tx *Tx) error

type Transactor interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

type UserRepository interface {
	Transactor
	FindUserByID(ctx context.Context, id string) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUsersByRole(ctx context.Context, role string) ([]*model.User, error)
}

type ServiceRepository interface {
	Transactor
	FindAllServices(ctx context.Context) ([]*model.Service, error)
	FindServiceByID(ctx context.Context, id string) (*model.Service, error)
	FindServicesByProvider(ctx context.Context, providerID string) ([]*model.Service, error)
	SearchServices(ctx context.Context, filter model.ServiceFilter) ([]*model.Service, error)
}

type BookingRepository interface {
	Transactor
	FindBookingByID(ctx context.Context, id string) (*model.Booking, error)
	FindBookingsByUser(ctx context.Context, userID string) ([]*model.Booking, error)
	FindBookingsByProvider(ctx context.Context, providerID string) ([]*model.Booking, error)
}

type ReviewRepository interface {
	Transactor
	FindReviewsByProvider(ctx context.Context, providerID string) ([]*model.Review, error)
	FindReviewByBooking(ctx context.Context, bookingID string) (*model.Review, error)
}

type PaymentRepository interface {
	Transactor
	FindPaymentsByProvider(ctx context.Context, providerID string) ([]*model.Payment, error)
	FindPaymentsByUser(ctx context.Context, userID string) ([]*model.Payment, error)
	FindPaymentByBooking(ctx context.Context, bookingID string) (*model.Payment, error)
}

var (
	_ UserRepository    = (*Store)(nil)
	_ ServiceRepository = (*Store)(nil)
	_ BookingRepository = (*Store)(nil)
	_ ReviewRepository  = (*Store)(nil)
	_ PaymentRepository = (*Store)(nil)
)
