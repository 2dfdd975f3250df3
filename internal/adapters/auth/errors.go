package auth

import "errors"

// Sentinel kinds for token verification errors.
var (
	ErrUnauthorized = errors.New("invalid token")
	ErrUnknownKey   = errors.New("unknown signing key")
)
