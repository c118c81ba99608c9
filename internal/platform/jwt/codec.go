// Package jwtmw issues and decodes session tokens and provides the Gin middleware that guards authenticated routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the session token lifetime used when none is configured.
const DefaultTTL = 30 * 24 * time.Hour

// ErrEmptySecret is returned by NewCodec when no signing secret is configured.
var ErrEmptySecret = errors.New("jwt secret must not be empty")

// Codec signs claim sets into HS256 tokens and decodes them back.
// The secret is read once at construction and never mutated.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec creates a Codec. A non-positive ttl falls back to DefaultTTL.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs claims into a token. iat and exp are always set by the codec
// and override any caller-supplied values.
func (c *Codec) Issue(claims map[string]any) (string, error) {
	now := c.now()

	mc := make(jwt.MapClaims, len(claims)+2)
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(c.ttl).Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode returns the claims of tokenStr without checking its signature or expiry.
// It reports false when the string is not a JWT or carries no claims.
//
// The social login flow depends on this: tokens relayed from an identity
// provider are trusted as-is and are not verified against the provider.
func (c *Codec) Decode(tokenStr string) (map[string]any, bool) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
	if err != nil {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || len(claims) == 0 {
		return nil, false
	}
	return claims, true
}

// Verify parses tokenStr, checking the HMAC signature and expiry.
func (c *Codec) Verify(tokenStr string) (map[string]any, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
