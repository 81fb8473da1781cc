package validator

import (
	"marketplace/pkg/logger"
	"marketplace/pkg/model"
	"marketplace/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type ReviewValidator struct {
	validate *validator.Validate
}

func NewReviewValidator(log *logger.Logger) *ReviewValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to build review validator", "error", err)
	}
	return &ReviewValidator{validate: v}
}

func (v *ReviewValidator) Validate(review *model.Review) error {
	return validation.Struct(v.validate, review)
}
