package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrServe      = errors.New("http serve failed")
	ErrBadRequest = errors.New("bad request")
)

func errMissingField(name string) error {
	return fmt.Errorf("missing %s: %w", name, ErrBadRequest)
}

func errInvalidField(name string) error {
	return fmt.Errorf("invalid %s: %w", name, ErrBadRequest)
}
