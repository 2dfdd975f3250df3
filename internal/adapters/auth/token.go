package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Verify validates the bearer token and returns the caller identity.
func (v *Verifier) Verify(ctx context.Context, token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrUnauthorized
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(v.issuer),
	}
	if v.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.audience))
	}
	parser := jwt.NewParser(parserOpts...)

	claims := jwt.MapClaims{}
	tok, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if strings.TrimSpace(kid) == "" {
			return nil, fmt.Errorf("missing kid header")
		}
		return v.key(ctx, kid)
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if tok == nil || !tok.Valid {
		return Identity{}, ErrUnauthorized
	}

	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return Identity{}, fmt.Errorf("%w: missing sub claim", ErrUnauthorized)
	}
	email, _ := claims["email"].(string)

	return Identity{UserID: sub, Email: email}, nil
}
