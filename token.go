package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var _ TokenInspector = JWTInspector{}

type noopInspector struct{}

func (noopInspector) Expired(string, time.Time) bool { return false }

// JWTInspector reports a persisted token as expired when it parses as a JWT
// whose exp claim has passed. The signature is NOT verified; the token stays
// opaque as far as trust goes, this is only a fast-fail so silent re-auth
// can skip a network roundtrip that is guaranteed to be rejected. Tokens
// that do not parse as JWTs pass through untouched.
type JWTInspector struct {
	// Leeway extends the token lifetime to absorb clock skew between the
	// client and the Auth API.
	Leeway time.Duration
}

// Expired implements TokenInspector.
func (i JWTInspector) Expired(raw string, at time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return at.After(exp.Add(i.Leeway))
}
