package auth

import (
	"context"
	"strings"
)

// StaticVerifier accepts any non-empty bearer token and treats it as
// the user id. Local development only; never configure an empty
// issuer in production.
type StaticVerifier struct{}

// NewStaticVerifier creates a development-mode verifier.
func NewStaticVerifier() *StaticVerifier {
	return &StaticVerifier{}
}

// Verify returns an identity derived from the raw token.
func (v *StaticVerifier) Verify(_ context.Context, token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrUnauthorized
	}
	return Identity{UserID: token}, nil
}
