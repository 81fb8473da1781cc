package service

import (
	"context"

	"marketplace/internal/events"
	reviewserrors "marketplace/internal/reviews/errors"
	"marketplace/internal/reviews/validator"
	"marketplace/internal/store"
	"marketplace/pkg/config"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/model"
	"marketplace/pkg/sanitizer"
	"marketplace/pkg/validation"
)

type ReviewService interface {
	Add(ctx context.Context, review *model.Review) error
	ListForProvider(ctx context.Context, providerID string) ([]*model.Review, error)
	ProviderRating(ctx context.Context, providerID string) (float64, error)
}

type reviewService struct {
	repo      store.ReviewRepository
	validator *validator.ReviewValidator
	events    *events.Emitter
	cfg       *config.Config
}

func NewReviewService(
	repo store.ReviewRepository,
	validator *validator.ReviewValidator,
	emitter *events.Emitter,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		repo:      repo,
		validator: validator,
		events:    emitter,
		cfg:       cfg,
	}
}

// Add records a review of a completed booking. The booking is marked
// reviewed and the provider's service ratings are refreshed in the same
// transaction.
func (s *reviewService) Add(ctx context.Context, review *model.Review) error {
	review.BookingID = sanitizer.TrimAndNormalize(review.BookingID)
	review.UserID = sanitizer.TrimAndNormalize(review.UserID)
	review.Comment = sanitizer.NormalizeText(review.Comment)
	if err := s.validator.Validate(review); err != nil {
		s.cfg.Log.Warn("Review validation failed", "booking_id", review.BookingID, "error", err)
		return validation.AppError("Review validation failed", err)
	}

	var rating float64
	err := s.repo.ExecuteTransaction(ctx, func(tx *store.Tx) error {
		booking, err := tx.FindBookingByID(review.BookingID)
		if err != nil {
			return store.AppError(err, "Booking", review.BookingID, "load booking")
		}
		if booking.UserID != review.UserID {
			return apperrors.Forbidden(reviewserrors.ErrNotBookingOwner.Error())
		}
		if booking.Status != model.StatusCompleted {
			return apperrors.Conflict(reviewserrors.ErrNotCompleted.Error()).
				WithDetails(map[string]any{"status": booking.Status})
		}
		if booking.Reviewed {
			return apperrors.Conflict(reviewserrors.ErrAlreadyReviewed.Error())
		}
		if _, err := tx.FindReviewByBooking(booking.ID); err == nil {
			return apperrors.Conflict(reviewserrors.ErrAlreadyReviewed.Error())
		}

		review.ProviderID = booking.ProviderID
		review.ServiceID = booking.ServiceID
		if err := tx.CreateReview(review); err != nil {
			return err
		}

		booking.Reviewed = true
		if err := tx.UpdateBooking(booking); err != nil {
			return err
		}

		rating, err = refreshProviderRating(tx, booking.ProviderID)
		return err
	})
	if err != nil {
		s.cfg.Log.Error("Failed to add review", "booking_id", review.BookingID, "error", err)
		return store.AppError(err, "Review", review.ID, "add review")
	}

	s.cfg.Log.Info("Review added successfully",
		"id", review.ID,
		"booking_id", review.BookingID,
		"provider_id", review.ProviderID,
		"rating", review.Rating,
		"provider_rating", rating,
	)
	s.events.Emit(ctx, events.ReviewCreated, review.BookingID, review)
	return nil
}

// refreshProviderRating stores the provider's average rating on each of
// their services.
func refreshProviderRating(tx *store.Tx, providerID string) (float64, error) {
	rating := model.AverageRating(tx.FindReviews(func(r *model.Review) bool {
		return r.ProviderID == providerID
	}))

	services := tx.FindServices(func(svc *model.Service) bool { return svc.ProviderID == providerID })
	for _, svc := range services {
		svc.Rating = rating
		if err := tx.UpdateService(svc); err != nil {
			return 0, err
		}
	}
	return rating, nil
}

func (s *reviewService) ListForProvider(ctx context.Context, providerID string) ([]*model.Review, error) {
	if providerID == "" {
		return nil, apperrors.InvalidInput("Provider ID cannot be empty")
	}

	reviews, err := s.repo.FindReviewsByProvider(ctx, providerID)
	if err != nil {
		s.cfg.Log.Error("Failed to list reviews", "provider_id", providerID, "error", err)
		return nil, store.AppError(err, "Provider", providerID, "retrieve reviews")
	}
	return reviews, nil
}

// ProviderRating is the mean of all the provider's review ratings, 0 when
// they have none.
func (s *reviewService) ProviderRating(ctx context.Context, providerID string) (float64, error) {
	reviews, err := s.ListForProvider(ctx, providerID)
	if err != nil {
		return 0, err
	}
	return model.AverageRating(reviews), nil
}
