package service

import "errors"

// Sentinel kinds for service preconditions.
var (
	// ErrProfileRequired is returned when an operation needs a saved
	// profile and the user has none.
	ErrProfileRequired = errors.New("profile required")

	// ErrInsufficientData is returned when no market population can be
	// assembled for the profile, even at the widest relaxation tier.
	ErrInsufficientData = errors.New("insufficient market data")
)
