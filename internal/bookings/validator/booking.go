package validator

import (
	"fmt"
	"slices"

	"marketplace/pkg/logger"
	"marketplace/pkg/model"
	"marketplace/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to build booking validator", "error", err)
	}

	log.Debug("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	return validation.Struct(v.validate, booking)
}

func (v *BookingValidator) ValidateStatusUpdate(update *model.BookingStatusUpdate) error {
	return validation.Struct(v.validate, update)
}

func (v *BookingValidator) ValidateReschedule(r *model.BookingReschedule) error {
	return validation.Struct(v.validate, r)
}

// ValidateQuery checks the optional filters of a booking listing.
func (v *BookingValidator) ValidateQuery(q model.BookingQuery) error {
	if q.Status != "" && !slices.Contains(model.BookingStatuses, q.Status) {
		return validation.Field("status", fmt.Sprintf("status must be one of: %v", model.BookingStatuses))
	}
	switch q.Sort {
	case "", model.SortDateAsc, model.SortDateDesc:
		return nil
	default:
		return validation.Field("sort", fmt.Sprintf("sort must be %s or %s", model.SortDateAsc, model.SortDateDesc))
	}
}
