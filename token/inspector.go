// Package token inspects the opaque bearer tokens issued by the remote API.
//
// The session layer does not own token validation; the server does. The
// inspector only peeks at standard JWT claims so that a token that is already
// past its expiry can be discarded during rehydration instead of triggering a
// guaranteed 401 on the first API call. Tokens that do not parse as JWTs are
// treated as fully opaque and never rejected locally.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned by [Inspector.Claims] for tokens that are not JWTs.
var ErrNotJWT = errors.New("token is not a jwt")

// Claims is the subset of standard claims the session layer cares about.
type Claims struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}

// Inspector peeks at bearer tokens. When an HMAC key is configured the
// signature is verified; otherwise claims are read unverified, which is
// sufficient for the local expiry hint.
type Inspector struct {
	hmacKey []byte
	leeway  time.Duration
	now     func() time.Time
}

// NewInspector creates an inspector. hmacKey may be nil; leeway softens the
// expiry comparison against clock skew.
func NewInspector(hmacKey []byte, leeway time.Duration) *Inspector {
	return &Inspector{
		hmacKey: append([]byte(nil), hmacKey...),
		leeway:  leeway,
		now:     time.Now,
	}
}

// SetClock replaces the time source. Intended for tests.
func (i *Inspector) SetClock(now func() time.Time) {
	i.now = now
}

// Claims extracts the known claims from tok. Returns [ErrNotJWT] when the
// token does not parse, or a verification error when an HMAC key is set and
// the signature is invalid.
func (i *Inspector) Claims(tok string) (*Claims, error) {
	mapClaims := jwt.MapClaims{}

	if len(i.hmacKey) > 0 {
		_, err := jwt.ParseWithClaims(tok, mapClaims, func(*jwt.Token) (any, error) {
			return i.hmacKey, nil
		}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}), jwt.WithoutClaimsValidation())
		if err != nil {
			return nil, err
		}
	} else {
		parser := jwt.NewParser()
		if _, _, err := parser.ParseUnverified(tok, mapClaims); err != nil {
			return nil, ErrNotJWT
		}
	}

	out := &Claims{}
	if sub, err := mapClaims.GetSubject(); err == nil {
		out.UserID = sub
	}
	if role, ok := mapClaims["role"].(string); ok {
		out.Role = role
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}

	return out, nil
}

// Expired reports whether tok is a JWT whose expiry has passed. Opaque
// (non-JWT) tokens and JWTs without an exp claim report false: the server
// remains the authority for those.
func (i *Inspector) Expired(tok string) bool {
	claims, err := i.Claims(tok)
	if err != nil || claims.ExpiresAt.IsZero() {
		return false
	}
	return i.now().After(claims.ExpiresAt.Add(i.leeway))
}
