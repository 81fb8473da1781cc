package errors

import "errors"

var (
	ErrInvalidTransition = errors.New("booking status transition not allowed")

	ErrNotCustomer = errors.New("bookings can only be made by customer accounts")

	ErrProviderMismatch = errors.New("service is not offered by the given provider")

	ErrAlreadyPaid = errors.New("payment already recorded for booking")
)
