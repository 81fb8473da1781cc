package errors

import "errors"

var (
	ErrNotProvider = errors.New("services can only be offered by provider accounts")

	ErrUnknownLocation = errors.New("city is not in the given state")
)
