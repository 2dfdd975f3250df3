// Package auth verifies bearer tokens from the external token issuer.
// Signing keys are held in an explicit process-wide cache: populated
// on first use, refreshed on a key-id miss.
package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Default verifier configuration constants.
const (
	defaultHTTPTimeout        = 10 * time.Second
	defaultMinRefreshInterval = time.Minute
	jwksPath                  = "/.well-known/jwks.json"
)

// Identity is the verified caller: a stable user identifier plus the
// email claim when present.
type Identity struct {
	UserID string
	Email  string
}

// Verifier validates RS256 tokens against the issuer's JWKS.
type Verifier struct {
	httpClient *http.Client
	issuer     string
	audience   string
	jwksURL    string
	minRefresh time.Duration

	mu          sync.RWMutex
	keys        map[string]*rsa.PublicKey
	lastRefresh time.Time
}

// Option applies a configuration option to the Verifier.
type Option func(*Verifier)

// WithHTTPClient overrides the HTTP client used for JWKS fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(v *Verifier) {
		if c != nil {
			v.httpClient = c
		}
	}
}

// WithAudience requires the aud claim to contain audience.
func WithAudience(audience string) Option {
	return func(v *Verifier) {
		v.audience = audience
	}
}

// WithJWKSURL overrides the derived JWKS endpoint.
func WithJWKSURL(url string) Option {
	return func(v *Verifier) {
		if url != "" {
			v.jwksURL = url
		}
	}
}

// WithMinRefreshInterval bounds how often a key-id miss may trigger a
// JWKS refetch.
func WithMinRefreshInterval(d time.Duration) Option {
	return func(v *Verifier) {
		if d > 0 {
			v.minRefresh = d
		}
	}
}

// NewVerifier creates a Verifier for the given issuer.
func NewVerifier(issuer string, opts ...Option) (*Verifier, error) {
	issuer = strings.TrimRight(strings.TrimSpace(issuer), "/")
	if issuer == "" {
		return nil, errors.New("token issuer url is required")
	}
	v := &Verifier{
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		issuer:     issuer,
		jwksURL:    issuer + jwksPath,
		minRefresh: defaultMinRefreshInterval,
		keys:       make(map[string]*rsa.PublicKey),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// key returns the cached key for kid, refreshing the cache at most
// once per minRefresh window on a miss.
func (v *Verifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	pub, ok := v.keys[kid]
	v.mu.RUnlock()
	if ok {
		return pub, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if pub, ok := v.keys[kid]; ok {
		return pub, nil
	}
	if time.Since(v.lastRefresh) < v.minRefresh && len(v.keys) > 0 {
		return nil, fmt.Errorf("%w: kid %q", ErrUnknownKey, kid)
	}

	keys, err := v.fetchJWKS(ctx)
	if err != nil {
		return nil, err
	}
	v.keys = keys
	v.lastRefresh = time.Now()

	pub, ok = v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("%w: kid %q", ErrUnknownKey, kid)
	}
	return pub, nil
}

type jwksDocument struct {
	Keys []struct {
		Kty string `json:"kty"`
		Kid string `json:"kid"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func (v *Verifier) fetchJWKS(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build jwks request: %w", err)
	}
	res, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch jwks: %s", res.Status)
	}

	var doc jwksDocument
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		pub, err := rsaKeyFromJWK(k.N, k.E)
		if err != nil {
			return nil, fmt.Errorf("parse jwk %q: %w", k.Kid, err)
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return nil, errors.New("jwks contains no usable RSA keys")
	}
	return keys, nil
}

func rsaKeyFromJWK(n, e string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nb),
		E: int(new(big.Int).SetBytes(eb).Int64()),
	}, nil
}
