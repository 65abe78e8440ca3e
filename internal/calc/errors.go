package calc

import "errors"

var (
	// ErrInvalidInput marks an out-of-range or missing numeric parameter.
	// Recoverable by correcting the form input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSizeUnavailable means no standard conductor satisfies the voltage
	// drop constraint; the caller should increase the allowed drop or reduce
	// distance/current.
	ErrSizeUnavailable = errors.New("no standard wire size available")
)
