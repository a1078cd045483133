package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// SessionExpiry reads the exp claim of a JWT-shaped credential without
// verifying it. Verification belongs to the backend; this is informational
// only, used for log lines and the session view. Returns the zero time when
// the credential is not a parseable JWT or carries no expiry.
func SessionExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
