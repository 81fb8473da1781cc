package validator

import (
	"fmt"

	catalogerrors "marketplace/internal/catalog/errors"
	"marketplace/internal/location"
	"marketplace/pkg/logger"
	"marketplace/pkg/model"
	"marketplace/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type ServiceValidator struct {
	validate  *validator.Validate
	locations *location.Directory
	logger    *logger.Logger
}

func NewServiceValidator(locations *location.Directory, log *logger.Logger) *ServiceValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to build service validator", "error", err)
	}

	return &ServiceValidator{
		validate:  v,
		locations: locations,
		logger:    log,
	}
}

func (v *ServiceValidator) Validate(svc *model.Service) error {
	if err := validation.Struct(v.validate, svc); err != nil {
		return err
	}
	return v.validateLocation(svc.State, svc.City)
}

func (v *ServiceValidator) ValidateUpdate(update *model.ServiceUpdate) error {
	return validation.Struct(v.validate, update)
}

func (v *ServiceValidator) validateLocation(state, city string) error {
	if _, ok := v.locations.CanonicalState(state); !ok {
		return validation.Field("state", fmt.Sprintf("unknown state: %s", state))
	}
	if !v.locations.Contains(state, city) {
		return validation.Field("city", fmt.Sprintf("%s: %s, %s", catalogerrors.ErrUnknownLocation, city, state))
	}
	return nil
}

// Canonicalize rewrites state and city in the directory's spelling. It
// must only be called after Validate succeeded.
func (v *ServiceValidator) Canonicalize(svc *model.Service) {
	if state, ok := v.locations.CanonicalState(svc.State); ok {
		svc.State = state
	}
	if city, ok := v.locations.CanonicalCity(svc.State, svc.City); ok {
		svc.City = city
	}
}
