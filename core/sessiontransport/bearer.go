package sessiontransport

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// BearerClaims are the registered claims carried by a backend bearer token.
type BearerClaims struct {
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Expired reports whether the token has an expiry at or before now.
func (c BearerClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// InspectBearer decodes the claims of a JWT bearer token without verifying
// its signature. The backend owns the signing key; the result is only used
// for display and must never drive an authorization decision.
func InspectBearer(token string) (BearerClaims, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return BearerClaims{}, errors.Join(ErrNotJWT, err)
	}

	out := BearerClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
