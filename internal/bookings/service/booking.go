package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	bookingserrors "marketplace/internal/bookings/errors"
	"marketplace/internal/bookings/validator"
	"marketplace/internal/events"
	"marketplace/internal/store"
	"marketplace/pkg/config"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/model"
	"marketplace/pkg/sanitizer"
	"marketplace/pkg/validation"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListForUser(ctx context.Context, userID string, query model.BookingQuery) ([]*model.Booking, error)
	ListForProvider(ctx context.Context, providerID string, query model.BookingQuery) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error)
	Reschedule(ctx context.Context, id string, r *model.BookingReschedule) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
}

// Commissioner splits a completed booking's amount between the platform
// and the provider.
type Commissioner interface {
	Commission(amount model.Money) (commission, earnings model.Money)
}

type bookingService struct {
	repo       store.BookingRepository
	validator  *validator.BookingValidator
	events     *events.Emitter
	commission Commissioner
	cfg        *config.Config
}

func NewBookingService(
	repo store.BookingRepository,
	validator *validator.BookingValidator,
	emitter *events.Emitter,
	commission Commissioner,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:       repo,
		validator:  validator,
		events:     emitter,
		commission: commission,
		cfg:        cfg,
	}
}

// Create books a service for a customer. The provider and amount come from
// the service; the store assigns the id and the Pending status.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(tx *store.Tx) error {
		user, err := tx.FindUserByID(booking.UserID)
		if err != nil {
			return store.AppError(err, "User", booking.UserID, "load user")
		}
		if user.Role != model.RoleUser {
			return apperrors.Validation(bookingserrors.ErrNotCustomer.Error(), map[string]any{"user_id": booking.UserID})
		}

		svc, err := tx.FindServiceByID(booking.ServiceID)
		if err != nil {
			return store.AppError(err, "Service", booking.ServiceID, "load service")
		}
		if booking.ProviderID == "" {
			booking.ProviderID = svc.ProviderID
		}
		if booking.ProviderID != svc.ProviderID {
			return apperrors.Validation(bookingserrors.ErrProviderMismatch.Error(), map[string]any{
				"service_id":  booking.ServiceID,
				"provider_id": booking.ProviderID,
			})
		}
		booking.Amount = svc.Price

		return tx.CreateBooking(booking)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "user_id", booking.UserID, "service_id", booking.ServiceID, "error", err)
		return store.AppError(err, "Booking", booking.ID, "create booking")
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"user_id", booking.UserID,
		"provider_id", booking.ProviderID,
		"service_id", booking.ServiceID,
		"date", booking.Date,
		"time", booking.Time,
	)
	s.events.Emit(ctx, events.BookingCreated, booking.ID, booking)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindBookingByID(ctx, id)
	if err != nil {
		return nil, store.AppError(err, "Booking", id, "retrieve booking")
	}
	return booking, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID string, query model.BookingQuery) ([]*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}
	if err := s.validateQuery(query); err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindBookingsByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings for user", "user_id", userID, "error", err)
		return nil, store.AppError(err, "User", userID, "retrieve bookings")
	}
	return applyQuery(bookings, query), nil
}

func (s *bookingService) ListForProvider(ctx context.Context, providerID string, query model.BookingQuery) ([]*model.Booking, error) {
	if providerID == "" {
		return nil, apperrors.InvalidInput("Provider ID cannot be empty")
	}
	if err := s.validateQuery(query); err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindBookingsByProvider(ctx, providerID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings for provider", "provider_id", providerID, "error", err)
		return nil, store.AppError(err, "Provider", providerID, "retrieve bookings")
	}
	return applyQuery(bookings, query), nil
}

// UpdateStatus moves a booking along its lifecycle. Completing a booking
// records its payment and counts the job against the service in the same
// transaction.
func (s *bookingService) UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if err := s.validator.ValidateStatusUpdate(&model.BookingStatusUpdate{Status: status}); err != nil {
		s.cfg.Log.Warn("Booking status validation failed", "id", id, "status", status, "error", err)
		return nil, validation.AppError("Invalid booking status", err)
	}

	var (
		booking  *model.Booking
		previous string
		payment  *model.Payment
	)
	err := s.repo.ExecuteTransaction(ctx, func(tx *store.Tx) error {
		var err error
		booking, err = tx.FindBookingByID(id)
		if err != nil {
			return err
		}
		previous = booking.Status
		if !model.CanTransition(previous, status) {
			return transitionConflict(previous, status)
		}

		booking.Status = status
		if err := tx.UpdateBooking(booking); err != nil {
			return err
		}

		if status == model.StatusCompleted {
			payment, err = s.recordCompletion(tx, booking)
			return err
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update booking status", "id", id, "status", status, "error", err)
		return nil, store.AppError(err, "Booking", id, "update booking status")
	}

	s.cfg.Log.Info("Booking status updated",
		"id", id,
		"from", previous,
		"to", status,
	)
	s.events.Emit(ctx, events.BookingStatusChanged, booking.ID, &events.BookingStatusChange{
		Booking:        booking,
		PreviousStatus: previous,
	})
	if payment != nil {
		s.cfg.Log.Info("Payment recorded",
			"id", payment.ID,
			"booking_id", booking.ID,
			"amount", payment.Amount.String(),
			"commission", payment.Commission.String(),
		)
		s.events.Emit(ctx, events.PaymentRecorded, booking.ID, payment)
	}
	return booking, nil
}

func (s *bookingService) recordCompletion(tx *store.Tx, booking *model.Booking) (*model.Payment, error) {
	if _, err := tx.FindPaymentByBooking(booking.ID); err == nil {
		return nil, apperrors.Conflict(bookingserrors.ErrAlreadyPaid.Error())
	}

	// The service may have been withdrawn since the booking was made; the
	// payment is still owed.
	if svc, err := tx.FindServiceByID(booking.ServiceID); err == nil {
		svc.CompletedJobs++
		if err := tx.UpdateService(svc); err != nil {
			return nil, err
		}
	}

	commission, earnings := s.commission.Commission(booking.Amount)
	payment := &model.Payment{
		BookingID:        booking.ID,
		ProviderID:       booking.ProviderID,
		UserID:           booking.UserID,
		Amount:           booking.Amount,
		Commission:       commission,
		ProviderEarnings: earnings,
		CommissionRate:   s.cfg.CommissionRate,
	}
	if err := tx.CreatePayment(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Reschedule moves a booking to a new date and time. Only the schedule and
// status change; ids and amount are kept.
func (s *bookingService) Reschedule(ctx context.Context, id string, r *model.BookingReschedule) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if err := s.validator.ValidateReschedule(r); err != nil {
		s.cfg.Log.Warn("Booking reschedule validation failed", "id", id, "error", err)
		return nil, validation.AppError("Invalid reschedule request", err)
	}

	var (
		booking                    *model.Booking
		previousDate, previousTime string
	)
	err := s.repo.ExecuteTransaction(ctx, func(tx *store.Tx) error {
		var err error
		booking, err = tx.FindBookingByID(id)
		if err != nil {
			return err
		}
		if !model.CanTransition(booking.Status, model.StatusRescheduled) {
			return transitionConflict(booking.Status, model.StatusRescheduled)
		}

		previousDate, previousTime = booking.Date, booking.Time
		booking.Date = r.Date
		booking.Time = r.Time
		booking.Status = model.StatusRescheduled
		return tx.UpdateBooking(booking)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to reschedule booking", "id", id, "error", err)
		return nil, store.AppError(err, "Booking", id, "reschedule booking")
	}

	s.cfg.Log.Info("Booking rescheduled",
		"id", id,
		"from", previousDate+" "+previousTime,
		"to", booking.Date+" "+booking.Time,
	)
	s.events.Emit(ctx, events.BookingRescheduled, booking.ID, &events.BookingReschedule{
		Booking:      booking,
		PreviousDate: previousDate,
		PreviousTime: previousTime,
	})
	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	return s.UpdateStatus(ctx, id, model.StatusCancelled)
}

// --- Helpers ---

func (s *bookingService) sanitize(b *model.Booking) {
	b.ID = ""
	b.UserID = sanitizer.TrimAndNormalize(b.UserID)
	b.ProviderID = sanitizer.TrimAndNormalize(b.ProviderID)
	b.ServiceID = sanitizer.TrimAndNormalize(b.ServiceID)
	b.Date = sanitizer.TrimAndNormalize(b.Date)
	b.Time = sanitizer.TrimAndNormalize(b.Time)
	b.Address = sanitizer.TrimAndNormalize(b.Address)
	b.Notes = sanitizer.NormalizeText(b.Notes)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return validation.AppError("Booking validation failed", err)
	}
	return nil
}

func (s *bookingService) validateQuery(q model.BookingQuery) error {
	if err := s.validator.ValidateQuery(q); err != nil {
		return validation.AppError("Invalid booking query", err)
	}
	return nil
}

func transitionConflict(from, to string) error {
	return apperrors.Conflict(fmt.Sprintf("Cannot change booking status from %s to %s", from, to)).
		WithDetails(map[string]any{
			"from":   from,
			"to":     to,
			"reason": bookingserrors.ErrInvalidTransition.Error(),
		})
}

// applyQuery filters by status and orders by appointment. With no sort the
// store's insertion order is kept.
func applyQuery(bookings []*model.Booking, q model.BookingQuery) []*model.Booking {
	if q.Status != "" {
		bookings = slices.DeleteFunc(bookings, func(b *model.Booking) bool { return b.Status != q.Status })
	}

	switch q.Sort {
	case model.SortDateAsc:
		slices.SortStableFunc(bookings, compareSchedule)
	case model.SortDateDesc:
		slices.SortStableFunc(bookings, func(a, b *model.Booking) int { return compareSchedule(b, a) })
	}
	return bookings
}

func compareSchedule(a, b *model.Booking) int {
	return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.Time, b.Time))
}
