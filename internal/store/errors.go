package store

import (
	"context"
	"errors"
	"fmt"

	apperrors "marketplace/pkg/errors"
)

var (
	ErrNotFound = errors.New("record not found")

	ErrDuplicateID = errors.New("record id already exists")

	ErrUnavailable = errors.New("data store unavailable")
)

// AppError maps a store failure onto the service error model. resource and
// id name the record reported in a not-found error; action describes the
// operation for internal errors. AppErrors raised inside a transaction pass
// through unchanged.
func AppError(err error, resource, id, action string) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, ErrNotFound):
		return apperrors.NotFoundWithID(resource, id)
	case errors.Is(err, ErrUnavailable):
		return apperrors.Unavailable("Data store", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Timeout(action + " timed out")
	case errors.Is(err, context.Canceled):
		return apperrors.Unavailable("Request", err)
	case errors.Is(err, ErrDuplicateID):
		return apperrors.Conflict(fmt.Sprintf("%s %s already exists", resource, id))
	default:
		return apperrors.Internal("Failed to "+action, err)
	}
}
