package errors

import "errors"

var (
	ErrNotCompleted = errors.New("only completed bookings can be reviewed")

	ErrAlreadyReviewed = errors.New("booking has already been reviewed")

	ErrNotBookingOwner = errors.New("only the customer who made the booking can review it")
)
