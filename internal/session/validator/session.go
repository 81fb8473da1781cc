package validator

import (
	"fmt"

	"marketplace/internal/location"
	"marketplace/pkg/logger"
	"marketplace/pkg/model"
	"marketplace/pkg/sanitizer"
	"marketplace/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type SessionValidator struct {
	validate  *validator.Validate
	locations *location.Directory
}

func NewSessionValidator(locations *location.Directory, log *logger.Logger) *SessionValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to build session validator", "error", err)
	}
	return &SessionValidator{validate: v, locations: locations}
}

func (v *SessionValidator) ValidateCredentials(c *model.Credentials) error {
	return validation.Struct(v.validate, c)
}

func (v *SessionValidator) ValidateRegistration(r *model.Registration) error {
	if err := validation.Struct(v.validate, r); err != nil {
		return err
	}
	return v.validateContact(r.Phone, r.State)
}

func (v *SessionValidator) ValidateProfile(u *model.UserUpdate) error {
	if err := validation.Struct(v.validate, u); err != nil {
		return err
	}
	return v.validateContact(u.Phone, u.State)
}

func (v *SessionValidator) ValidateTheme(t *model.ThemeUpdate) error {
	return validation.Struct(v.validate, t)
}

func (v *SessionValidator) validateContact(phone, state string) error {
	if phone != "" && sanitizer.NormalizePhone(phone) == "" {
		return validation.Field("phone", fmt.Sprintf("invalid phone number: %s", phone))
	}
	if state != "" {
		if _, ok := v.locations.CanonicalState(state); !ok {
			return validation.Field("state", fmt.Sprintf("unknown state: %s", state))
		}
	}
	return nil
}

// Canonicalize rewrites phone in E.164 and state in the directory's
// spelling. It must only be called after validation succeeded.
func (v *SessionValidator) Canonicalize(phone, state *string) {
	if *phone != "" {
		*phone = sanitizer.NormalizePhone(*phone)
	}
	if s, ok := v.locations.CanonicalState(*state); ok {
		*state = s
	}
}
